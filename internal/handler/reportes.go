package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/worker"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	svc         service.ReporteService
	dispatcher  *worker.Dispatcher
	reportEmail string
}

func NewReportesHandler(svc service.ReporteService, dispatcher *worker.Dispatcher, reportEmail string) *ReportesHandler {
	return &ReportesHandler{svc: svc, dispatcher: dispatcher, reportEmail: reportEmail}
}

// ReporteDia godoc
// @Summary      Resumen de ventas de un dia
// @Description  Total e items mas vendidos sobre ordenes cerradas, siempre a precios congelados.
// @Tags         reportes
// @Produce      json
// @Security     ApiKeyAuth
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200 {object} dto.ReporteDiaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/reportes/dia [get]
func (h *ReportesHandler) ReporteDia(c *gin.Context) {
	dia := time.Now()
	if f := c.Query("fecha"); f != "" {
		parsed, err := time.ParseInLocation("2006-01-02", f, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida"))
			return
		}
		dia = parsed
	}
	resp, err := h.svc.ReporteDia(c.Request.Context(), dia)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EnviarReporteDia godoc
// @Summary      Mandar el resumen del dia por correo
// @Description  Arma el resumen de ventas del dia y lo encola para el correo configurado en REPORT_EMAIL.
// @Tags         reportes
// @Produce      json
// @Security     ApiKeyAuth
// @Success      202 {object} map[string]string
// @Failure      409 {object} apierror.APIError
// @Router       /api/reportes/enviar-dia [post]
func (h *ReportesHandler) EnviarReporteDia(c *gin.Context) {
	if h.reportEmail == "" {
		c.JSON(http.StatusConflict, apierror.New("REPORT_EMAIL no configurado"))
		return
	}

	dia := time.Now()
	resp, err := h.svc.ReporteDia(c.Request.Context(), dia)
	if err != nil {
		c.Error(err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ventas del %s\n\nTotal: $%s\n\nMas vendidos:\n", resp.Fecha, resp.Total.StringFixed(2))
	for _, it := range resp.TopItems {
		fmt.Fprintf(&b, "  %s x%d\n", it.Nombre, it.CantidadTotal)
	}

	err = h.dispatcher.EnqueueEmail(c.Request.Context(), worker.EmailJobPayload{
		ToEmail: h.reportEmail,
		Subject: "El Puestito - ventas del " + resp.Fecha,
		Body:    b.String(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "encolado"})
}

// DatosGraficos godoc
// @Summary      Datos para los graficos del panel
// @Tags         reportes
// @Produce      json
// @Security     ApiKeyAuth
// @Param        dias query int false "Dias hacia atras (default 7)"
// @Success      200 {object} dto.ChartDataResponse
// @Router       /api/reportes/graficos [get]
func (h *ReportesHandler) DatosGraficos(c *gin.Context) {
	dias, _ := strconv.Atoi(c.DefaultQuery("dias", "7"))
	resp, err := h.svc.DatosGraficos(c.Request.Context(), dias)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
