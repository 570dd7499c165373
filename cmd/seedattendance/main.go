package main

// Development seeder: fills eventos_asistencia with plausible shifts so the
// payroll screens have data to show. Usage: seedattendance -dias 30

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/config"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/infra"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	dias := flag.Int("dias", 30, "dias hacia atras a generar")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()
	empleadoRepo := repository.NewEmpleadoRepository(db)
	asistenciaRepo := repository.NewAsistenciaRepository(db)

	empleados, err := empleadoRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list employees")
	}
	if len(empleados) == 0 {
		log.Fatal().Msg("no hay empleados cargados, importe primero los datos")
	}

	hoy := time.Now()
	var eventos []model.EventoAsistencia
	for _, emp := range empleados {
		for d := *dias; d > 0; d-- {
			if rand.Float64() < 0.2 {
				continue // day off
			}
			dia := hoy.AddDate(0, 0, -d)

			// Shifts start between 11:00 and 14:00 and last 6 to 10 hours,
			// so some cross the 22:00 overtime boundary.
			entrada := time.Date(dia.Year(), dia.Month(), dia.Day(),
				11+rand.Intn(4), rand.Intn(60), 0, 0, time.Local)
			salida := entrada.Add(time.Duration(6+rand.Intn(5)) * time.Hour).
				Add(time.Duration(rand.Intn(60)) * time.Minute)

			eventos = append(eventos,
				model.EventoAsistencia{IDEmpleado: emp.IDEmpleado, Timestamp: entrada, Tipo: model.EventoEntrada},
				model.EventoAsistencia{IDEmpleado: emp.IDEmpleado, Timestamp: salida, Tipo: model.EventoSalida},
			)
		}
	}

	if err := asistenciaRepo.AddEventosBatch(ctx, eventos); err != nil {
		log.Fatal().Err(err).Msg("failed to insert events")
	}
	log.Info().Int("eventos", len(eventos)).Int("empleados", len(empleados)).Msg("asistencia generada")
}
