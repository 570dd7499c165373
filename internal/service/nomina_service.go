package service

import (
	"context"
	"errors"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/dto"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	horaInicioJornada = 12 // payable time starts at noon regardless of clock-in
	horaLimiteExtra   = 22 // minutes from 22:00 onward pay double
	formatoDia        = "2006-01-02"
)

var dos = decimal.NewFromInt(2)

// ErrEmpleadoSinEventos marks a payroll query for an employee with no punches
// in the requested range.
var ErrEmpleadoSinEventos = errors.New("el empleado no tiene eventos en el rango")

type NominaService interface {
	Calcular(ctx context.Context, desde, hasta time.Time) (*dto.NominaResponse, error)
	CalcularEmpleado(ctx context.Context, idEmpleado string, desde, hasta time.Time) (*dto.NominaEmpleado, error)
}

type nominaService struct {
	repo    repository.AsistenciaRepository
	tarifas map[string]decimal.Decimal // per-minute rate by role
}

func NewNominaService(repo repository.AsistenciaRepository, tarifas map[string]decimal.Decimal) NominaService {
	return &nominaService{repo: repo, tarifas: tarifas}
}

// Calcular runs the time-accounting engine over every employee with punches
// in [desde, hasta]. Hasta is inclusive to end of day.
func (s *nominaService) Calcular(ctx context.Context, desde, hasta time.Time) (*dto.NominaResponse, error) {
	finDia := time.Date(hasta.Year(), hasta.Month(), hasta.Day(), 23, 59, 59, 0, hasta.Location())
	eventos, err := s.repo.HistorialRango(ctx, desde, finDia)
	if err != nil {
		return nil, err
	}

	resp := &dto.NominaResponse{
		Desde:     desde.Format(formatoDia),
		Hasta:     hasta.Format(formatoDia),
		Empleados: make(map[string]*dto.NominaEmpleado),
	}

	porEmpleado := make(map[string][]model.EventoAsistencia)
	orden := make([]string, 0)
	for _, ev := range eventos {
		if _, ok := porEmpleado[ev.IDEmpleado]; !ok {
			orden = append(orden, ev.IDEmpleado)
		}
		porEmpleado[ev.IDEmpleado] = append(porEmpleado[ev.IDEmpleado], ev)
	}

	for _, id := range orden {
		evs := porEmpleado[id]
		nombre, rol := id, ""
		if evs[0].Empleado != nil {
			nombre = evs[0].Empleado.Nombre
			rol = evs[0].Empleado.Rol
		}
		tarifa, tieneTarifa := s.tarifas[rol]
		if !tieneTarifa {
			log.Warn().Str("empleado", id).Str("rol", rol).
				Msg("rol sin tarifa configurada, la nomina registra horarios sin pago")
		}
		resp.Empleados[id] = liquidarEmpleado(id, nombre, rol, evs, tarifa)
	}
	return resp, nil
}

func (s *nominaService) CalcularEmpleado(ctx context.Context, idEmpleado string, desde, hasta time.Time) (*dto.NominaEmpleado, error) {
	resp, err := s.Calcular(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	n, ok := resp.Empleados[idEmpleado]
	if !ok {
		return nil, ErrEmpleadoSinEventos
	}
	return n, nil
}

// liquidarEmpleado is the pure pairing engine: it walks one employee's punches
// in timestamp order, pairs each salida with the last same-day entrada, and
// splits the payable window at the noon anchor and the 22:00 overtime
// boundary. Unmatched punches earn nothing but still stamp the daily
// first-entry / last-exit columns.
func liquidarEmpleado(id, nombre, rol string, eventos []model.EventoAsistencia, tarifa decimal.Decimal) *dto.NominaEmpleado {
	n := &dto.NominaEmpleado{
		IDEmpleado:  id,
		Nombre:      nombre,
		Rol:         rol,
		PagoRegular: decimal.Zero,
		PagoExtra:   decimal.Zero,
		PagoTotal:   decimal.Zero,
		Dias:        make(map[string]*dto.NominaDia),
	}

	dia := func(t time.Time) *dto.NominaDia {
		key := t.Format(formatoDia)
		d, ok := n.Dias[key]
		if !ok {
			d = &dto.NominaDia{Fecha: key, Pago: decimal.Zero}
			n.Dias[key] = d
		}
		return d
	}

	var abierta *time.Time
	for i := range eventos {
		ev := eventos[i]
		ts := ev.Timestamp

		switch ev.Tipo {
		case model.EventoEntrada:
			d := dia(ts)
			if d.PrimeraEntrada == nil {
				t := ts
				d.PrimeraEntrada = &t
			}
			if abierta != nil && abierta.Format(formatoDia) != ts.Format(formatoDia) {
				// Stale cross-day clock-in: never closed, earns nothing.
				log.Warn().Str("empleado", id).Time("entrada", *abierta).
					Msg("entrada sin salida de un dia anterior, descartada")
			}
			t := ts
			abierta = &t

		case model.EventoSalida:
			d := dia(ts)
			t := ts
			d.UltimaSalida = &t
			if abierta == nil {
				log.Warn().Str("empleado", id).Time("salida", ts).
					Msg("salida sin entrada abierta, descartada")
				continue
			}
			if abierta.Format(formatoDia) != ts.Format(formatoDia) {
				abierta = nil
				continue
			}

			reg, extra := partirTurno(*abierta, ts)
			dEntrada := dia(*abierta)
			dEntrada.MinutosRegulares += reg
			dEntrada.MinutosExtra += extra
			n.MinutosRegulares += reg
			n.MinutosExtra += extra

			pagoReg := tarifa.Mul(decimal.NewFromFloat(reg))
			pagoExt := tarifa.Mul(dos).Mul(decimal.NewFromFloat(extra))
			dEntrada.Pago = dEntrada.Pago.Add(pagoReg).Add(pagoExt)
			n.PagoRegular = n.PagoRegular.Add(pagoReg)
			n.PagoExtra = n.PagoExtra.Add(pagoExt)
			abierta = nil
		}
	}
	n.PagoTotal = n.PagoRegular.Add(n.PagoExtra)
	return n
}

// partirTurno clips one shift to its payable window and splits the result
// into regular and overtime minutes.
func partirTurno(entrada, salida time.Time) (regulares, extra float64) {
	anclaDia := time.Date(entrada.Year(), entrada.Month(), entrada.Day(),
		horaInicioJornada, 0, 0, 0, entrada.Location())
	limiteExtra := time.Date(entrada.Year(), entrada.Month(), entrada.Day(),
		horaLimiteExtra, 0, 0, 0, entrada.Location())

	inicio := entrada
	if inicio.Before(anclaDia) {
		inicio = anclaDia
	}
	if !salida.After(inicio) {
		return 0, 0
	}

	if !salida.After(limiteExtra) {
		return salida.Sub(inicio).Minutes(), 0
	}
	if !inicio.Before(limiteExtra) {
		return 0, salida.Sub(inicio).Minutes()
	}
	return limiteExtra.Sub(inicio).Minutes(), salida.Sub(limiteExtra).Minutes()
}
