package service

import (
	"context"
	"errors"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"gorm.io/gorm"
)

type EmpleadoService interface {
	Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	List(ctx context.Context) ([]dto.EmpleadoResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error)
	Eliminar(ctx context.Context, id string) error
}

type empleadoService struct {
	repo repository.EmpleadoRepository
}

func NewEmpleadoService(repo repository.EmpleadoRepository) EmpleadoService {
	return &empleadoService{repo: repo}
}

func (s *empleadoService) Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	emp := &model.Empleado{
		IDEmpleado: req.ID,
		Nombre:     req.Nombre,
		Rol:        req.Rol,
	}
	if err := s.repo.Crear(ctx, emp); err != nil {
		return nil, err
	}
	resp := empleadoToResponse(emp)
	return &resp, nil
}

func (s *empleadoService) List(ctx context.Context) ([]dto.EmpleadoResponse, error) {
	emps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmpleadoResponse, 0, len(emps))
	for i := range emps {
		out = append(out, empleadoToResponse(&emps[i]))
	}
	return out, nil
}

func (s *empleadoService) Actualizar(ctx context.Context, id string, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpleadoNoEncontrado
		}
		return nil, err
	}
	if req.NuevoID != nil {
		emp.IDEmpleado = *req.NuevoID
	}
	if req.Nombre != nil {
		emp.Nombre = *req.Nombre
	}
	if req.Rol != nil {
		emp.Rol = *req.Rol
	}
	if err := s.repo.Actualizar(ctx, id, emp); err != nil {
		return nil, err
	}
	resp := empleadoToResponse(emp)
	return &resp, nil
}

// Eliminar refuses when attendance history references the employee: the
// payroll archive must stay queryable.
func (s *empleadoService) Eliminar(ctx context.Context, id string) error {
	err := s.repo.Eliminar(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEmpleadoNoEncontrado
	}
	return err
}

func empleadoToResponse(e *model.Empleado) dto.EmpleadoResponse {
	return dto.EmpleadoResponse{
		ID:            e.IDEmpleado,
		Nombre:        e.Nombre,
		Rol:           e.Rol,
		DeviceID:      e.DeviceID,
		FingerprintID: e.FingerprintID,
	}
}
