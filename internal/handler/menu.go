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

type MenuHandler struct {
	svc   service.MenuService
	notif *notifier.Notifier
}

func NewMenuHandler(svc service.MenuService, notif *notifier.Notifier) *MenuHandler {
	return &MenuHandler{svc: svc, notif: notif}
}

// Obtener godoc
// @Summary      Menu completo
// @Description  Categorias con sus items, disponible o no; el filtrado lo hace el cliente.
// @Tags         menu
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {object} dto.MenuResponse
// @Router       /api/menu [get]
func (h *MenuHandler) Obtener(c *gin.Context) {
	menu, err := h.svc.ObtenerMenu(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// CrearCategoria godoc
// @Summary      Crear una categoria
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.CrearCategoriaRequest true "Categoria nueva"
// @Success      201 {object} dto.CategoriaMenuResponse
// @Failure      409 {object} apierror.APIError
// @Router       /api/menu/categorias [post]
func (h *MenuHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCategoriaDuplicada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMenuActualizado, nil)
	c.JSON(http.StatusCreated, cat)
}

// CrearItem godoc
// @Summary      Crear un item de menu
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.CrearItemMenuRequest true "Item nuevo"
// @Success      201 {object} dto.ItemMenuResponse
// @Router       /api/menu/items [post]
func (h *MenuHandler) CrearItem(c *gin.Context) {
	var req dto.CrearItemMenuRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.CrearItem(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMenuActualizado, nil)
	c.JSON(http.StatusCreated, item)
}

// ActualizarItem godoc
// @Summary      Actualizar un item de menu
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path string                        true "ID del item"
// @Param        body body dto.ActualizarItemMenuRequest true "Campos a cambiar"
// @Success      200 {object} dto.ItemMenuResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/menu/items/{id} [put]
func (h *MenuHandler) ActualizarItem(c *gin.Context) {
	var req dto.ActualizarItemMenuRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.ActualizarItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrItemNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMenuActualizado, nil)
	c.JSON(http.StatusOK, item)
}

// Disponibilidad godoc
// @Summary      Cambiar disponibilidad de un item
// @Description  Interruptor rapido para platos agotados; no toca precio ni ordenes ya tomadas.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path string                    true "ID del item"
// @Param        body body dto.DisponibilidadRequest true "Nuevo estado"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Router       /api/menu/items/{id}/disponibilidad [put]
func (h *MenuHandler) Disponibilidad(c *gin.Context) {
	var req dto.DisponibilidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetDisponibilidad(c.Request.Context(), c.Param("id"), *req.Disponible); err != nil {
		if errors.Is(err, service.ErrItemNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	h.notif.Publicar(c.Request.Context(), notifier.CanalMenuActualizado, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
