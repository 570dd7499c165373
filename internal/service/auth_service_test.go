package service

import (
	"testing"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/config"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authFixture(t *testing.T) AuthService {
	t.Helper()
	hashCocina, err := bcrypt.GenerateFromPassword([]byte("1111"), bcrypt.MinCost)
	require.NoError(t, err)
	hashBarra, err := bcrypt.GenerateFromPassword([]byte("2222"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(&config.Config{
		JWTSecret:     "test-secret",
		KDSTokenHours: 1,
		PinCocinaHash: string(hashCocina),
		PinBarraHash:  string(hashBarra),
	})
}

func TestValidarPinPorEstacion(t *testing.T) {
	svc := authFixture(t)

	resp, err := svc.ValidarPin("1111")
	require.NoError(t, err)
	assert.Equal(t, model.DestinoCocina, resp.Destino)
	assert.Equal(t, "/kds/cocina", resp.Redirect)
	assert.NotEmpty(t, resp.Token)

	resp, err = svc.ValidarPin("2222")
	require.NoError(t, err)
	assert.Equal(t, model.DestinoBarra, resp.Destino)
}

func TestValidarPinIncorrecto(t *testing.T) {
	svc := authFixture(t)

	_, err := svc.ValidarPin("9999")
	assert.ErrorIs(t, err, ErrPinInvalido)
}

func TestTokenDevuelveSuEstacion(t *testing.T) {
	svc := authFixture(t)

	resp, err := svc.ValidarPin("2222")
	require.NoError(t, err)

	destino, err := svc.ValidarToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.DestinoBarra, destino)
}

func TestTokenDeOtroSecretoRechazado(t *testing.T) {
	svc := authFixture(t)
	otro := NewAuthService(&config.Config{
		JWTSecret:     "otro-secreto",
		KDSTokenHours: 1,
	})

	resp, err := svc.ValidarPin("1111")
	require.NoError(t, err)

	_, err = otro.ValidarToken(resp.Token)
	assert.Error(t, err)
}
