package service

import (
	"context"
	"errors"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Two taps within this window count as one: the mobile UI double-fires on
// slow connections.
const ventanaAntiRebote = 3 * time.Second

var (
	ErrEmpleadoNoEncontrado    = errors.New("el empleado no existe")
	ErrDispositivoNoAutorizado = errors.New("el dispositivo no corresponde al empleado")
	ErrHuellaNoVinculada       = errors.New("la huella no esta vinculada a ningun empleado")
)

type AsistenciaService interface {
	RegistrarPorDispositivo(ctx context.Context, req dto.RegistrarAsistenciaRequest) (*dto.RegistroResponse, error)
	RegistrarPorHuella(ctx context.Context, fingerID int) (*dto.RegistroResponse, error)
	VincularHuella(ctx context.Context, idEmpleado string, fingerID int) error
	DesvincularHuellas(ctx context.Context) error
	EventosDeHoy(ctx context.Context) ([]model.EventoAsistencia, error)
	LimpiarHistorial(ctx context.Context) error
}

type asistenciaService struct {
	empleados  repository.EmpleadoRepository
	asistencia repository.AsistenciaRepository
}

func NewAsistenciaService(empleados repository.EmpleadoRepository, asistencia repository.AsistenciaRepository) AsistenciaService {
	return &asistenciaService{empleados: empleados, asistencia: asistencia}
}

// RegistrarPorDispositivo marks attendance from the mobile app. The first
// call from an unlinked employee binds the device; afterwards any other
// device is rejected so nobody punches for a coworker.
func (s *asistenciaService) RegistrarPorDispositivo(ctx context.Context, req dto.RegistrarAsistenciaRequest) (*dto.RegistroResponse, error) {
	emp, err := s.empleados.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpleadoNoEncontrado
		}
		return nil, err
	}

	switch {
	case emp.DeviceID == nil:
		if err := s.empleados.VincularDevice(ctx, emp.IDEmpleado, req.DeviceID); err != nil {
			return nil, err
		}
		log.Info().Str("empleado", emp.IDEmpleado).Msg("dispositivo vinculado en el primer registro")
	case *emp.DeviceID != req.DeviceID:
		return nil, ErrDispositivoNoAutorizado
	}

	return s.marcar(ctx, emp)
}

func (s *asistenciaService) RegistrarPorHuella(ctx context.Context, fingerID int) (*dto.RegistroResponse, error) {
	emp, err := s.empleados.FindByFingerprint(ctx, fingerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHuellaNoVinculada
		}
		return nil, err
	}
	return s.marcar(ctx, emp)
}

// marcar toggles entrada/salida from the employee's last punch.
func (s *asistenciaService) marcar(ctx context.Context, emp *model.Empleado) (*dto.RegistroResponse, error) {
	ultimo, err := s.asistencia.LastEvento(ctx, emp.IDEmpleado)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	if ultimo != nil && ahora.Sub(ultimo.Timestamp) < ventanaAntiRebote {
		return &dto.RegistroResponse{
			Status:  "ignorado",
			Message: "registro repetido, espere unos segundos",
			Nombre:  emp.Nombre,
			Tipo:    ultimo.Tipo,
		}, nil
	}

	tipo := model.EventoEntrada
	if ultimo != nil && ultimo.Tipo == model.EventoEntrada {
		tipo = model.EventoSalida
	}

	ev := &model.EventoAsistencia{
		IDEmpleado: emp.IDEmpleado,
		Timestamp:  ahora,
		Tipo:       tipo,
	}
	if err := s.asistencia.AddEvento(ctx, ev); err != nil {
		return nil, err
	}

	return &dto.RegistroResponse{
		Status: "ok",
		Nombre: emp.Nombre,
		Tipo:   tipo,
	}, nil
}

func (s *asistenciaService) VincularHuella(ctx context.Context, idEmpleado string, fingerID int) error {
	if _, err := s.empleados.FindByID(ctx, idEmpleado); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmpleadoNoEncontrado
		}
		return err
	}
	return s.empleados.VincularHuella(ctx, idEmpleado, fingerID)
}

func (s *asistenciaService) DesvincularHuellas(ctx context.Context) error {
	return s.empleados.DesvincularHuellas(ctx)
}

func (s *asistenciaService) EventosDeHoy(ctx context.Context) ([]model.EventoAsistencia, error) {
	ahora := time.Now()
	inicio := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	return s.asistencia.EventosDeHoy(ctx, inicio)
}

func (s *asistenciaService) LimpiarHistorial(ctx context.Context) error {
	return s.asistencia.LimpiarHistorial(ctx)
}
