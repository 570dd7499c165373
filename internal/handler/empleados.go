package handler

import (
	"errors"
	"net/http"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"

	"github.com/gin-gonic/gin"
)

type EmpleadosHandler struct {
	svc service.EmpleadoService
}

func NewEmpleadosHandler(svc service.EmpleadoService) *EmpleadosHandler {
	return &EmpleadosHandler{svc: svc}
}

// Crear godoc
// @Summary      Alta de empleado
// @Tags         empleados
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body body dto.CrearEmpleadoRequest true "Empleado nuevo"
// @Success      201 {object} dto.EmpleadoResponse
// @Router       /api/empleados [post]
func (h *EmpleadosHandler) Crear(c *gin.Context) {
	var req dto.CrearEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	emp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// List godoc
// @Summary      Listar empleados
// @Tags         empleados
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {array} dto.EmpleadoResponse
// @Router       /api/empleados [get]
func (h *EmpleadosHandler) List(c *gin.Context) {
	emps, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, emps)
}

// Actualizar godoc
// @Summary      Modificar un empleado
// @Description  Permite cambiar nombre, rol o el propio id; el historial de asistencia sigue al id nuevo.
// @Tags         empleados
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path string                        true "ID actual"
// @Param        body body dto.ActualizarEmpleadoRequest true "Campos a cambiar"
// @Success      200 {object} dto.EmpleadoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/empleados/{id} [put]
func (h *EmpleadosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	emp, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrEmpleadoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// Eliminar godoc
// @Summary      Baja de empleado
// @Description  Falla con 409 si el empleado tiene historial de asistencia: el archivo de nomina debe seguir consultable.
// @Tags         empleados
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id path string true "ID del empleado"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /api/empleados/{id} [delete]
func (h *EmpleadosHandler) Eliminar(c *gin.Context) {
	err := h.svc.Eliminar(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, service.ErrEmpleadoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, repository.ErrTieneHistorial):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.Error(err)
	}
}
