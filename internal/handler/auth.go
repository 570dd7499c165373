package handler

import (
	"errors"
	"net/http"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// ValidarPin godoc
// @Summary      Canjear PIN de estacion por token
// @Description  El PIN de cocina o barra devuelve un token acotado a esa estacion para las pantallas del navegador.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.ValidarPinRequest true "PIN"
// @Success      200 {object} dto.ValidarPinResponse
// @Failure      401 {object} apierror.APIError
// @Router       /auth/pin [post]
func (h *AuthHandler) ValidarPin(c *gin.Context) {
	var req dto.ValidarPinRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ValidarPin(req.Pin)
	if err != nil {
		if errors.Is(err, service.ErrPinInvalido) {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
