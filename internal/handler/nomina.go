package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/worker"

	"github.com/gin-gonic/gin"
)

type NominaHandler struct {
	svc        service.NominaService
	dispatcher *worker.Dispatcher
}

func NewNominaHandler(svc service.NominaService, dispatcher *worker.Dispatcher) *NominaHandler {
	return &NominaHandler{svc: svc, dispatcher: dispatcher}
}

// Calcular godoc
// @Summary      Calcular la nomina de un rango
// @Description  Liquida cada empleado con eventos en el rango: minutos regulares, extra despues de las 22:00 al doble, y desglose por dia.
// @Tags         nomina
// @Produce      json
// @Security     ApiKeyAuth
// @Param        desde query string true "Fecha inicial YYYY-MM-DD"
// @Param        hasta query string true "Fecha final YYYY-MM-DD"
// @Success      200 {object} dto.NominaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/nomina [get]
func (h *NominaHandler) Calcular(c *gin.Context) {
	var req dto.NominaRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	desde, hasta, ok := h.parseRango(c, req.Desde, req.Hasta)
	if !ok {
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), desde, hasta)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exportar godoc
// @Summary      Exportar la nomina de un empleado a PDF
// @Description  Encola la generacion del reporte; el worker lo escribe a disco y lo envia por correo si hay destinatario.
// @Tags         nomina
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.ExportarNominaRequest true "Empleado y rango"
// @Success      202 {object} map[string]string
// @Router       /api/nomina/exportar [post]
func (h *NominaHandler) Exportar(c *gin.Context) {
	var req dto.ExportarNominaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.dispatcher.EnqueueNominaPDF(c.Request.Context(), worker.NominaPDFJobPayload{
		IDEmpleado: req.IDEmpleado,
		Desde:      req.Desde,
		Hasta:      req.Hasta,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "encolado"})
}

// CalcularEmpleado godoc
// @Summary      Nomina de un solo empleado
// @Tags         nomina
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id    path  string true "ID del empleado"
// @Param        desde query string true "Fecha inicial YYYY-MM-DD"
// @Param        hasta query string true "Fecha final YYYY-MM-DD"
// @Success      200 {object} dto.NominaEmpleado
// @Failure      404 {object} apierror.APIError
// @Router       /api/nomina/{id} [get]
func (h *NominaHandler) CalcularEmpleado(c *gin.Context) {
	var req dto.NominaRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	desde, hasta, ok := h.parseRango(c, req.Desde, req.Hasta)
	if !ok {
		return
	}
	resp, err := h.svc.CalcularEmpleado(c.Request.Context(), c.Param("id"), desde, hasta)
	if err != nil {
		if errors.Is(err, service.ErrEmpleadoSinEventos) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NominaHandler) parseRango(c *gin.Context, desdeStr, hastaStr string) (time.Time, time.Time, bool) {
	desde, err := time.ParseInLocation("2006-01-02", desdeStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde invalido"))
		return time.Time{}, time.Time{}, false
	}
	hasta, err := time.ParseInLocation("2006-01-02", hastaStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("hasta invalido"))
		return time.Time{}, time.Time{}, false
	}
	if hasta.Before(desde) {
		c.JSON(http.StatusBadRequest, apierror.New("el rango esta invertido"))
		return time.Time{}, time.Time{}, false
	}
	return desde, hasta, true
}
