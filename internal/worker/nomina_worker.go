package worker

// nomina_worker.go
// Renders one employee's payroll report to PDF and, when a destination
// address is configured, chains an email job with the file attached.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/infra"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"

	"github.com/rs/zerolog/log"
)

// NominaPDFJobPayload is the job envelope sent to QueueNominaPDF.
type NominaPDFJobPayload struct {
	IDEmpleado string `json:"id_empleado"`
	Desde      string `json:"desde"`
	Hasta      string `json:"hasta"`
	Email      string `json:"email,omitempty"`
}

type NominaWorker struct {
	nomina         service.NominaService
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewNominaWorker(nomina service.NominaService, dispatcher *Dispatcher, pdfStoragePath string) *NominaWorker {
	return &NominaWorker{nomina: nomina, dispatcher: dispatcher, pdfStoragePath: pdfStoragePath}
}

func (w *NominaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload NominaPDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("nomina_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	desde, err := time.ParseInLocation("2006-01-02", payload.Desde, time.Local)
	if err != nil {
		log.Error().Str("desde", payload.Desde).Msg("nomina_worker: invalid date")
		return nil
	}
	hasta, err := time.ParseInLocation("2006-01-02", payload.Hasta, time.Local)
	if err != nil {
		log.Error().Str("hasta", payload.Hasta).Msg("nomina_worker: invalid date")
		return nil
	}

	n, err := w.nomina.CalcularEmpleado(ctx, payload.IDEmpleado, desde, hasta)
	if err != nil {
		return fmt.Errorf("nomina_worker: calculando %s: %w", payload.IDEmpleado, err)
	}

	path, err := infra.GenerateNominaPDF(n, payload.Desde, payload.Hasta, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("nomina_worker: generando pdf: %w", err)
	}
	log.Info().Str("empleado", payload.IDEmpleado).Str("pdf", path).Msg("nomina_worker: reporte generado")

	if payload.Email == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("Nomina de %s (%s a %s)", n.Nombre, payload.Desde, payload.Hasta),
		Body:    "Se adjunta el reporte de nomina.",
		PDFPath: path,
	})
}
