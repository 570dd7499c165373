package worker

// email_worker.go
// Sends queued mail (payroll reports, end-of-day summaries) via SMTP.

import (
	"context"
	"encoding/json"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: correo enviado")
	return nil
}
