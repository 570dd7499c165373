package service

import (
	"context"
	"testing"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory EmpleadoRepository stub ────────────────────────────────────────

type stubEmpleadoRepo struct {
	empleados map[string]*model.Empleado
}

func newStubEmpleadoRepo(emps ...*model.Empleado) *stubEmpleadoRepo {
	r := &stubEmpleadoRepo{empleados: make(map[string]*model.Empleado)}
	for _, e := range emps {
		r.empleados[e.IDEmpleado] = e
	}
	return r
}

func (r *stubEmpleadoRepo) Crear(_ context.Context, e *model.Empleado) error {
	r.empleados[e.IDEmpleado] = e
	return nil
}

func (r *stubEmpleadoRepo) List(context.Context) ([]model.Empleado, error) {
	var out []model.Empleado
	for _, e := range r.empleados {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmpleadoRepo) FindByID(_ context.Context, id string) (*model.Empleado, error) {
	e, ok := r.empleados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *e
	return &cloned, nil
}

func (r *stubEmpleadoRepo) FindByDevice(_ context.Context, deviceID string) (*model.Empleado, error) {
	for _, e := range r.empleados {
		if e.DeviceID != nil && *e.DeviceID == deviceID {
			cloned := *e
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmpleadoRepo) FindByFingerprint(_ context.Context, fingerID int) (*model.Empleado, error) {
	for _, e := range r.empleados {
		if e.FingerprintID != nil && *e.FingerprintID == fingerID {
			cloned := *e
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmpleadoRepo) Actualizar(_ context.Context, idOriginal string, e *model.Empleado) error {
	if _, ok := r.empleados[idOriginal]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.empleados, idOriginal)
	r.empleados[e.IDEmpleado] = e
	return nil
}

func (r *stubEmpleadoRepo) Eliminar(_ context.Context, id string) error {
	if _, ok := r.empleados[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.empleados, id)
	return nil
}

func (r *stubEmpleadoRepo) VincularDevice(_ context.Context, id, deviceID string) error {
	r.empleados[id].DeviceID = &deviceID
	return nil
}

func (r *stubEmpleadoRepo) VincularHuella(_ context.Context, id string, fingerID int) error {
	r.empleados[id].FingerprintID = &fingerID
	return nil
}

func (r *stubEmpleadoRepo) DesvincularHuellas(context.Context) error {
	for _, e := range r.empleados {
		e.FingerprintID = nil
	}
	return nil
}

var _ repository.EmpleadoRepository = (*stubEmpleadoRepo)(nil)

// ── RegistrarPorDispositivo ──────────────────────────────────────────────────

func TestRegistrarPrimerLlamadoVinculaDispositivo(t *testing.T) {
	empleados := newStubEmpleadoRepo(&model.Empleado{IDEmpleado: "E1", Nombre: "Ana", Rol: "moza"})
	asistencia := &stubAsistenciaRepo{}
	svc := NewAsistenciaService(empleados, asistencia)

	resp, err := svc.RegistrarPorDispositivo(context.Background(), dto.RegistrarAsistenciaRequest{
		EmployeeID: "E1",
		DeviceID:   "tel-ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, model.EventoEntrada, resp.Tipo)

	require.NotNil(t, empleados.empleados["E1"].DeviceID)
	assert.Equal(t, "tel-ana", *empleados.empleados["E1"].DeviceID)
}

func TestRegistrarDispositivoAjenoRechazado(t *testing.T) {
	dev := "tel-ana"
	empleados := newStubEmpleadoRepo(&model.Empleado{IDEmpleado: "E1", Nombre: "Ana", DeviceID: &dev})
	svc := NewAsistenciaService(empleados, &stubAsistenciaRepo{})

	_, err := svc.RegistrarPorDispositivo(context.Background(), dto.RegistrarAsistenciaRequest{
		EmployeeID: "E1",
		DeviceID:   "tel-beto",
	})
	assert.ErrorIs(t, err, ErrDispositivoNoAutorizado)
}

func TestRegistrarEmpleadoInexistente(t *testing.T) {
	svc := NewAsistenciaService(newStubEmpleadoRepo(), &stubAsistenciaRepo{})

	_, err := svc.RegistrarPorDispositivo(context.Background(), dto.RegistrarAsistenciaRequest{
		EmployeeID: "E9",
		DeviceID:   "tel",
	})
	assert.ErrorIs(t, err, ErrEmpleadoNoEncontrado)
}

func TestRegistrarAlternaEntradaSalida(t *testing.T) {
	dev := "tel-ana"
	empleados := newStubEmpleadoRepo(&model.Empleado{IDEmpleado: "E1", Nombre: "Ana", DeviceID: &dev})
	asistencia := &stubAsistenciaRepo{}
	asistencia.eventos = []model.EventoAsistencia{
		{IDEmpleado: "E1", Timestamp: time.Now().Add(-4 * time.Hour), Tipo: model.EventoEntrada},
	}
	svc := NewAsistenciaService(empleados, asistencia)

	resp, err := svc.RegistrarPorDispositivo(context.Background(), dto.RegistrarAsistenciaRequest{
		EmployeeID: "E1",
		DeviceID:   dev,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EventoSalida, resp.Tipo, "tras una entrada toca salida")
}

func TestRegistrarAntiRebote(t *testing.T) {
	dev := "tel-ana"
	empleados := newStubEmpleadoRepo(&model.Empleado{IDEmpleado: "E1", Nombre: "Ana", DeviceID: &dev})
	asistencia := &stubAsistenciaRepo{}
	asistencia.eventos = []model.EventoAsistencia{
		{IDEmpleado: "E1", Timestamp: time.Now(), Tipo: model.EventoEntrada},
	}
	svc := NewAsistenciaService(empleados, asistencia)

	resp, err := svc.RegistrarPorDispositivo(context.Background(), dto.RegistrarAsistenciaRequest{
		EmployeeID: "E1",
		DeviceID:   dev,
	})
	require.NoError(t, err)
	assert.Equal(t, "ignorado", resp.Status)
	assert.Equal(t, model.EventoEntrada, resp.Tipo, "devuelve el tipo del ultimo registro")
	assert.Len(t, asistencia.eventos, 1, "el doble toque no crea un segundo evento")
}

// ── Huella ───────────────────────────────────────────────────────────────────

func TestRegistrarPorHuella(t *testing.T) {
	finger := 7
	empleados := newStubEmpleadoRepo(&model.Empleado{IDEmpleado: "E1", Nombre: "Ana", FingerprintID: &finger})
	asistencia := &stubAsistenciaRepo{}
	svc := NewAsistenciaService(empleados, asistencia)

	resp, err := svc.RegistrarPorHuella(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Ana", resp.Nombre)

	_, err = svc.RegistrarPorHuella(context.Background(), 99)
	assert.ErrorIs(t, err, ErrHuellaNoVinculada)
}

func TestVincularYDesvincularHuellas(t *testing.T) {
	empleados := newStubEmpleadoRepo(&model.Empleado{IDEmpleado: "E1", Nombre: "Ana"})
	svc := NewAsistenciaService(empleados, &stubAsistenciaRepo{})
	ctx := context.Background()

	require.NoError(t, svc.VincularHuella(ctx, "E1", 3))
	require.NotNil(t, empleados.empleados["E1"].FingerprintID)

	assert.ErrorIs(t, svc.VincularHuella(ctx, "E9", 4), ErrEmpleadoNoEncontrado)

	require.NoError(t, svc.DesvincularHuellas(ctx))
	assert.Nil(t, empleados.empleados["E1"].FingerprintID)
}
