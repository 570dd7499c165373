package handler

import (
	"net/http"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/middleware"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/notifier"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"

	"github.com/gin-gonic/gin"
)

type EstacionesHandler struct {
	svc   service.EstacionService
	notif *notifier.Notifier
}

func NewEstacionesHandler(svc service.EstacionService, notif *notifier.Notifier) *EstacionesHandler {
	return &EstacionesHandler{svc: svc, notif: notif}
}

// Pendientes godoc
// @Summary      Tickets pendientes de la estacion
// @Description  Lineas pendientes de la estacion del token, una entrada por mesa, la mas vieja primero.
// @Tags         estaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.TicketEstacion
// @Router       /kds/api/pendientes [get]
func (h *EstacionesHandler) Pendientes(c *gin.Context) {
	destino := middleware.GetDestino(c)
	tickets, err := h.svc.ListarPendientes(c.Request.Context(), destino)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// MarcarListo godoc
// @Summary      Marcar los items de una mesa como listos
// @Description  Pasa a listo cada linea pendiente de la estacion para esa mesa. Repetir la llamada no hace nada.
// @Tags         estaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MesaKeyRequest true "Mesa a marcar"
// @Success      200 {object} map[string]interface{}
// @Router       /kds/api/marcar-listo [post]
func (h *EstacionesHandler) MarcarListo(c *gin.Context) {
	var req dto.MesaKeyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	destino := middleware.GetDestino(c)
	actualizadas, err := h.svc.MarcarListo(c.Request.Context(), req.MesaKey, destino)
	if err != nil {
		c.Error(err)
		return
	}
	if actualizadas > 0 {
		h.notif.Publicar(c.Request.Context(), notifier.CanalKDSUpdate, nil)
		h.notif.Publicar(c.Request.Context(), notifier.CanalMesasActualizadas, nil)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "lineas_actualizadas": actualizadas})
}

// EnviarMensaje godoc
// @Summary      Enviar un aviso a una estacion
// @Description  Reenvia un mensaje libre del cajero a las pantallas de cocina o barra.
// @Tags         estaciones
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.MensajeKDSRequest true "Mensaje"
// @Success      200 {object} map[string]string
// @Router       /api/kds/mensaje [post]
func (h *EstacionesHandler) EnviarMensaje(c *gin.Context) {
	var req dto.MensajeKDSRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Destino != model.DestinoCocina && req.Destino != model.DestinoBarra {
		c.JSON(http.StatusBadRequest, apierror.New("destino desconocido"))
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalKDSMensaje, req)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
