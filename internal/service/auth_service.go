package service

import (
	"errors"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/config"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrPinInvalido = errors.New("pin incorrecto")

// AuthService exchanges a station PIN for a short-lived station-scoped token
// used by the browser KDS screens.
type AuthService interface {
	ValidarPin(pin string) (*dto.ValidarPinResponse, error)
	ValidarToken(tokenStr string) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) ValidarPin(pin string) (*dto.ValidarPinResponse, error) {
	destino := ""
	switch {
	case s.cfg.PinCocinaHash != "" && bcrypt.CompareHashAndPassword([]byte(s.cfg.PinCocinaHash), []byte(pin)) == nil:
		destino = model.DestinoCocina
	case s.cfg.PinBarraHash != "" && bcrypt.CompareHashAndPassword([]byte(s.cfg.PinBarraHash), []byte(pin)) == nil:
		destino = model.DestinoBarra
	default:
		return nil, ErrPinInvalido
	}

	token, err := s.generarToken(destino)
	if err != nil {
		return nil, err
	}
	return &dto.ValidarPinResponse{
		Status:   "ok",
		Destino:  destino,
		Token:    token,
		Redirect: "/kds/" + destino,
	}, nil
}

// ValidarToken returns the station the token was issued for.
func (s *authService) ValidarToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("token invalido o expirado")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("claims invalidos")
	}
	destino, ok := claims["destino"].(string)
	if !ok || (destino != model.DestinoCocina && destino != model.DestinoBarra) {
		return "", errors.New("token mal formado")
	}
	return destino, nil
}

func (s *authService) generarToken(destino string) (string, error) {
	claims := jwt.MapClaims{
		"destino": destino,
		"exp":     time.Now().Add(time.Duration(s.cfg.KDSTokenHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
