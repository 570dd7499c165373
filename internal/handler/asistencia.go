package handler

import (
	"errors"
	"net/http"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"

	"github.com/gin-gonic/gin"
)

type AsistenciaHandler struct {
	svc service.AsistenciaService
}

func NewAsistenciaHandler(svc service.AsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{svc: svc}
}

// Registrar godoc
// @Summary      Marcar asistencia desde el celular
// @Description  Alterna entrada/salida segun el ultimo evento. El primer registro vincula el dispositivo al empleado.
// @Tags         asistencia
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.RegistrarAsistenciaRequest true "Empleado y dispositivo"
// @Success      200 {object} dto.RegistroResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /api/asistencia/registrar [post]
func (h *AsistenciaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarAsistenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPorDispositivo(c.Request.Context(), req)
	if err != nil {
		h.responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarHuella godoc
// @Summary      Marcar asistencia desde el lector de huellas
// @Tags         asistencia
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.AsistenciaBiometricaRequest true "ID de huella"
// @Success      200 {object} dto.RegistroResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/asistencia/huella [post]
func (h *AsistenciaHandler) RegistrarHuella(c *gin.Context) {
	var req dto.AsistenciaBiometricaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPorHuella(c.Request.Context(), req.FingerID)
	if err != nil {
		h.responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VincularHuella godoc
// @Summary      Vincular una huella a un empleado
// @Tags         asistencia
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.VincularHuellaRequest true "Empleado y huella"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Router       /api/asistencia/huella/vincular [post]
func (h *AsistenciaHandler) VincularHuella(c *gin.Context) {
	var req dto.VincularHuellaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.VincularHuella(c.Request.Context(), req.IDEmpleado, req.FingerID); err != nil {
		h.responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DesvincularHuellas godoc
// @Summary      Desvincular todas las huellas
// @Description  Se usa tras borrar la memoria del sensor, para rehacer los vinculos desde cero.
// @Tags         asistencia
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {object} map[string]string
// @Router       /api/asistencia/huella/desvincular-todas [post]
func (h *AsistenciaHandler) DesvincularHuellas(c *gin.Context) {
	if err := h.svc.DesvincularHuellas(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// EventosDeHoy godoc
// @Summary      Eventos de asistencia del dia
// @Tags         asistencia
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {array} model.EventoAsistencia
// @Router       /api/asistencia/hoy [get]
func (h *AsistenciaHandler) EventosDeHoy(c *gin.Context) {
	eventos, err := h.svc.EventosDeHoy(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, eventos)
}

// LimpiarHistorial godoc
// @Summary      Vaciar el historial de asistencia
// @Description  Operacion administrativa irreversible, usada al cerrar un periodo ya liquidado.
// @Tags         asistencia
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {object} map[string]string
// @Router       /api/asistencia/historial [delete]
func (h *AsistenciaHandler) LimpiarHistorial(c *gin.Context) {
	if err := h.svc.LimpiarHistorial(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AsistenciaHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmpleadoNoEncontrado), errors.Is(err, service.ErrHuellaNoVinculada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrDispositivoNoAutorizado):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	default:
		c.Error(err)
	}
}
