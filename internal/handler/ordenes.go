package handler

import (
	"errors"
	"net/http"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/notifier"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdenesHandler struct {
	svc   service.OrdenService
	menu  service.MenuService
	notif *notifier.Notifier
}

func NewOrdenesHandler(svc service.OrdenService, menu service.MenuService, notif *notifier.Notifier) *OrdenesHandler {
	return &OrdenesHandler{svc: svc, menu: menu, notif: notif}
}

// Crear godoc
// @Summary      Enviar una orden completa
// @Description  Persiste la orden y etiqueta cada linea con su estacion. Reenviar el mismo order_id es idempotente.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.NuevaOrdenRequest true "Orden completa"
// @Success      201  {object} map[string]interface{}
// @Failure      400  {object} apierror.APIError
// @Router       /api/ordenes [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.NuevaOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// All-or-nothing: one unavailable item rejects the whole submission, so
	// the waiter corrects the ticket before anything reaches a station.
	disponibles, err := h.menu.IDsDisponibles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	for _, item := range req.Items {
		if !disponibles[item.ItemID] {
			c.JSON(http.StatusConflict, apierror.New("item no disponible: "+item.Nombre))
			return
		}
	}

	idOrden, duplicada, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if duplicada {
		c.JSON(http.StatusOK, gin.H{"status": "ok_duplicado"})
		return
	}

	h.notif.Publicar(c.Request.Context(), notifier.CanalMesasActualizadas, nil)
	h.notif.Publicar(c.Request.Context(), notifier.CanalKDSUpdate, nil)
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "id_orden": idOrden})
}

// Tablero godoc
// @Summary      Tablero de mesas activas
// @Description  Devuelve cada orden activa con sus lineas, indexada por mesa_key.
// @Tags         ordenes
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {object} map[string]dto.MesaActiva
// @Router       /api/ordenes/activas [get]
func (h *OrdenesHandler) Tablero(c *gin.Context) {
	tablero, err := h.svc.TableroActivo(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tablero)
}

// Separar godoc
// @Summary      Separar cuenta
// @Description  Mueve lineas a una subcuenta nueva "<mesa>-<n>" en una sola transaccion.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.SepararOrdenRequest true "Lineas a mover"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Router       /api/ordenes/separar [post]
func (h *OrdenesHandler) Separar(c *gin.Context) {
	var req dto.SepararOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	nuevaKey, err := h.svc.Separar(c.Request.Context(), req)
	if err != nil {
		h.responderError(c, err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMesasActualizadas, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "nueva_mesa_key": nuevaKey})
}

// EliminarItems godoc
// @Summary      Eliminar lineas pendientes
// @Description  Quita cantidades de lineas aun no preparadas; una linea lista no se puede borrar.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.EliminarItemsRequest true "Lineas a quitar"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /api/ordenes/eliminar-items [post]
func (h *OrdenesHandler) EliminarItems(c *gin.Context) {
	var req dto.EliminarItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EliminarLineas(c.Request.Context(), req); err != nil {
		h.responderError(c, err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMesasActualizadas, nil)
	h.notif.Publicar(c.Request.Context(), notifier.CanalKDSUpdate, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Cancelar godoc
// @Summary      Cancelar mesa vacia
// @Description  Cierra como cancelada una orden activa sin lineas.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.MesaKeyRequest true "Mesa a cancelar"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /api/ordenes/cancelar [post]
func (h *OrdenesHandler) Cancelar(c *gin.Context) {
	var req dto.MesaKeyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), req.MesaKey); err != nil {
		h.responderError(c, err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMesasActualizadas, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Cobrar godoc
// @Summary      Cobrar una mesa
// @Description  Cierra la orden y devuelve el snapshot para el ticket. Si la mesa ya fue cobrada responde 200 sin orden.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.MesaKeyRequest true "Mesa a cobrar"
// @Success      200 {object} dto.OrdenSnapshot
// @Router       /api/ordenes/cobrar [post]
func (h *OrdenesHandler) Cobrar(c *gin.Context) {
	var req dto.MesaKeyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	snap, err := h.svc.Cobrar(c.Request.Context(), req.MesaKey)
	if err != nil {
		c.Error(err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMesasActualizadas, nil)
	if snap == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "orden": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "orden": snap})
}

// ActualizarNota godoc
// @Summary      Actualizar la nota de una linea
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.ActualizarNotaRequest true "Nota nueva"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Router       /api/ordenes/nota [put]
func (h *OrdenesHandler) ActualizarNota(c *gin.Context) {
	var req dto.ActualizarNotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarNota(c.Request.Context(), req); err != nil {
		h.responderError(c, err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalKDSUpdate, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *OrdenesHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrdenNoEncontrada), errors.Is(err, service.ErrLineaNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrLineaNoPendiente), errors.Is(err, service.ErrOrdenConLineas):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.Error(err)
	}
}
