package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory AsistenciaRepository stub ──────────────────────────────────────

type stubAsistenciaRepo struct {
	eventos []model.EventoAsistencia
	nextID  int64
}

func (r *stubAsistenciaRepo) AddEvento(_ context.Context, ev *model.EventoAsistencia) error {
	r.nextID++
	ev.IDEvento = r.nextID
	r.eventos = append(r.eventos, *ev)
	return nil
}

func (r *stubAsistenciaRepo) AddEventosBatch(ctx context.Context, evs []model.EventoAsistencia) error {
	for i := range evs {
		if err := r.AddEvento(ctx, &evs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubAsistenciaRepo) LastEvento(_ context.Context, idEmpleado string) (*model.EventoAsistencia, error) {
	var last *model.EventoAsistencia
	for i := range r.eventos {
		ev := r.eventos[i]
		if ev.IDEmpleado != idEmpleado {
			continue
		}
		if last == nil || ev.Timestamp.After(last.Timestamp) {
			cloned := ev
			last = &cloned
		}
	}
	return last, nil
}

func (r *stubAsistenciaRepo) HistorialRango(_ context.Context, desde, hasta time.Time) ([]model.EventoAsistencia, error) {
	var out []model.EventoAsistencia
	for _, ev := range r.eventos {
		if !ev.Timestamp.Before(desde) && !ev.Timestamp.After(hasta) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IDEmpleado != out[j].IDEmpleado {
			return out[i].IDEmpleado < out[j].IDEmpleado
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *stubAsistenciaRepo) EventosDeHoy(ctx context.Context, inicioDia time.Time) ([]model.EventoAsistencia, error) {
	return r.HistorialRango(ctx, inicioDia, inicioDia.AddDate(0, 0, 1))
}

func (r *stubAsistenciaRepo) LimpiarHistorial(context.Context) error {
	r.eventos = nil
	return nil
}

var _ repository.AsistenciaRepository = (*stubAsistenciaRepo)(nil)

// ── partirTurno ──────────────────────────────────────────────────────────────

func enDia(dia time.Time, hora, minuto int) time.Time {
	return time.Date(dia.Year(), dia.Month(), dia.Day(), hora, minuto, 0, 0, time.Local)
}

func TestPartirTurno(t *testing.T) {
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	cases := []struct {
		nombre            string
		entrada, salida   time.Time
		regulares, extras float64
	}{
		{"entrada temprana se ancla al mediodia", enDia(dia, 11, 0), enDia(dia, 13, 0), 60, 0},
		{"turno diurno comun", enDia(dia, 14, 0), enDia(dia, 18, 30), 270, 0},
		{"cruza el limite de extras", enDia(dia, 21, 0), enDia(dia, 23, 0), 60, 60},
		{"totalmente despues de las 22", enDia(dia, 22, 30), enDia(dia, 23, 30), 0, 60},
		{"termina exactamente a las 22", enDia(dia, 20, 0), enDia(dia, 22, 0), 120, 0},
		{"turno entero antes del mediodia", enDia(dia, 9, 0), enDia(dia, 11, 0), 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			reg, extra := partirTurno(tc.entrada, tc.salida)
			assert.Equal(t, tc.regulares, reg)
			assert.Equal(t, tc.extras, extra)
		})
	}
}

// ── liquidarEmpleado ─────────────────────────────────────────────────────────

func evento(id string, ts time.Time, tipo string) model.EventoAsistencia {
	return model.EventoAsistencia{IDEmpleado: id, Timestamp: ts, Tipo: tipo}
}

func TestLiquidarEmpleadoTurnoConExtras(t *testing.T) {
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	tarifa := decimal.NewFromInt(10) // por minuto

	n := liquidarEmpleado("E1", "Ana", "moza", []model.EventoAsistencia{
		evento("E1", enDia(dia, 21, 0), model.EventoEntrada),
		evento("E1", enDia(dia, 23, 0), model.EventoSalida),
	}, tarifa)

	assert.Equal(t, 60.0, n.MinutosRegulares)
	assert.Equal(t, 60.0, n.MinutosExtra)
	assert.True(t, n.PagoRegular.Equal(decimal.NewFromInt(600)), "regular %s", n.PagoRegular)
	assert.True(t, n.PagoExtra.Equal(decimal.NewFromInt(1200)), "la hora extra paga doble: %s", n.PagoExtra)
	assert.True(t, n.PagoTotal.Equal(decimal.NewFromInt(1800)))

	d := n.Dias[dia.Format("2006-01-02")]
	require.NotNil(t, d)
	require.NotNil(t, d.PrimeraEntrada)
	require.NotNil(t, d.UltimaSalida)
	assert.Equal(t, enDia(dia, 21, 0), *d.PrimeraEntrada)
	assert.Equal(t, enDia(dia, 23, 0), *d.UltimaSalida)
}

func TestLiquidarEmpleadoEntradaSinSalida(t *testing.T) {
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	n := liquidarEmpleado("E1", "Ana", "moza", []model.EventoAsistencia{
		evento("E1", enDia(dia, 14, 0), model.EventoEntrada),
	}, decimal.NewFromInt(10))

	assert.True(t, n.PagoTotal.IsZero())
	d := n.Dias[dia.Format("2006-01-02")]
	require.NotNil(t, d)
	assert.NotNil(t, d.PrimeraEntrada, "la entrada queda registrada aunque no pague")
	assert.Nil(t, d.UltimaSalida)
}

func TestLiquidarEmpleadoSalidaHuerfana(t *testing.T) {
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	n := liquidarEmpleado("E1", "Ana", "moza", []model.EventoAsistencia{
		evento("E1", enDia(dia, 18, 0), model.EventoSalida),
	}, decimal.NewFromInt(10))

	assert.True(t, n.PagoTotal.IsZero())
	d := n.Dias[dia.Format("2006-01-02")]
	require.NotNil(t, d)
	assert.Nil(t, d.PrimeraEntrada)
	assert.NotNil(t, d.UltimaSalida, "la salida queda registrada aunque no empareje")
}

func TestLiquidarEmpleadoEntradaDeOtroDiaSeDescarta(t *testing.T) {
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	manana := dia.AddDate(0, 0, 1)

	n := liquidarEmpleado("E1", "Ana", "moza", []model.EventoAsistencia{
		evento("E1", enDia(dia, 20, 0), model.EventoEntrada), // nunca marco salida
		evento("E1", enDia(manana, 14, 0), model.EventoEntrada),
		evento("E1", enDia(manana, 18, 0), model.EventoSalida),
	}, decimal.NewFromInt(10))

	assert.Equal(t, 240.0, n.MinutosRegulares, "solo paga el turno del segundo dia")
	assert.Equal(t, 0.0, n.MinutosExtra)
	assert.True(t, n.PagoTotal.Equal(decimal.NewFromInt(2400)))
	assert.Len(t, n.Dias, 2)
}

func TestLiquidarEmpleadoSalidaEmparejaUltimaEntrada(t *testing.T) {
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	// Doble marca de entrada: la salida empareja con la ultima.
	n := liquidarEmpleado("E1", "Ana", "moza", []model.EventoAsistencia{
		evento("E1", enDia(dia, 14, 0), model.EventoEntrada),
		evento("E1", enDia(dia, 15, 0), model.EventoEntrada),
		evento("E1", enDia(dia, 17, 0), model.EventoSalida),
	}, decimal.NewFromInt(10))

	assert.Equal(t, 120.0, n.MinutosRegulares)
}

// ── Calcular / CalcularEmpleado ──────────────────────────────────────────────

func setupNomina(t *testing.T) (*stubAsistenciaRepo, NominaService) {
	t.Helper()
	repo := &stubAsistenciaRepo{}
	tarifas := map[string]decimal.Decimal{
		"moza":   decimal.NewFromInt(10),
		"cocina": decimal.NewFromInt(12),
	}
	return repo, NewNominaService(repo, tarifas)
}

func TestCalcularAgrupaPorEmpleado(t *testing.T) {
	repo, svc := setupNomina(t)
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	ana := &model.Empleado{Nombre: "Ana", Rol: "moza"}
	beto := &model.Empleado{Nombre: "Beto", Rol: "cocina"}
	repo.eventos = []model.EventoAsistencia{
		{IDEmpleado: "E1", Timestamp: enDia(dia, 14, 0), Tipo: model.EventoEntrada, Empleado: ana},
		{IDEmpleado: "E1", Timestamp: enDia(dia, 18, 0), Tipo: model.EventoSalida, Empleado: ana},
		{IDEmpleado: "E2", Timestamp: enDia(dia, 13, 0), Tipo: model.EventoEntrada, Empleado: beto},
		{IDEmpleado: "E2", Timestamp: enDia(dia, 15, 0), Tipo: model.EventoSalida, Empleado: beto},
	}

	resp, err := svc.Calcular(context.Background(), dia, dia)
	require.NoError(t, err)
	require.Len(t, resp.Empleados, 2)

	assert.True(t, resp.Empleados["E1"].PagoTotal.Equal(decimal.NewFromInt(2400)))
	assert.True(t, resp.Empleados["E2"].PagoTotal.Equal(decimal.NewFromInt(1440)))
	assert.Equal(t, "Ana", resp.Empleados["E1"].Nombre)
}

func TestCalcularRolSinTarifaRegistraHorarios(t *testing.T) {
	repo, svc := setupNomina(t)
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	emp := &model.Empleado{Nombre: "Caro", Rol: "gerente"}
	repo.eventos = []model.EventoAsistencia{
		{IDEmpleado: "E3", Timestamp: enDia(dia, 14, 0), Tipo: model.EventoEntrada, Empleado: emp},
		{IDEmpleado: "E3", Timestamp: enDia(dia, 18, 0), Tipo: model.EventoSalida, Empleado: emp},
	}

	resp, err := svc.Calcular(context.Background(), dia, dia)
	require.NoError(t, err)

	n := resp.Empleados["E3"]
	require.NotNil(t, n)
	assert.Equal(t, 240.0, n.MinutosRegulares, "los minutos se contabilizan igual")
	assert.True(t, n.PagoTotal.IsZero(), "sin tarifa no hay pago")
}

func TestCalcularHastaIncluyeFinDeDia(t *testing.T) {
	repo, svc := setupNomina(t)
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	emp := &model.Empleado{Nombre: "Ana", Rol: "moza"}
	repo.eventos = []model.EventoAsistencia{
		{IDEmpleado: "E1", Timestamp: enDia(dia, 21, 0), Tipo: model.EventoEntrada, Empleado: emp},
		{IDEmpleado: "E1", Timestamp: enDia(dia, 23, 30), Tipo: model.EventoSalida, Empleado: emp},
	}

	resp, err := svc.Calcular(context.Background(), dia, dia)
	require.NoError(t, err)
	require.Contains(t, resp.Empleados, "E1")
	assert.Equal(t, 90.0, resp.Empleados["E1"].MinutosExtra, "la salida nocturna del mismo dia entra en el rango")
}

func TestCalcularEmpleadoSinEventos(t *testing.T) {
	_, svc := setupNomina(t)
	dia := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	_, err := svc.CalcularEmpleado(context.Background(), "E9", dia, dia)
	assert.ErrorIs(t, err, ErrEmpleadoSinEventos)
}
