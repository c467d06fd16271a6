package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/medclinic-admin/internal/email"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
)

const (
	maxRetries = 3
	retryDelay = 500 * time.Millisecond
)

// Service sends appointment confirmations by e-mail. A nil mailer turns
// every send into a skip.
type Service struct {
	mailer email.Service
	log    *logger.Logger
	now    func() time.Time
	delay  time.Duration
}

func NewService(mailer email.Service, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{mailer: mailer, log: log.With("notification"), now: time.Now, delay: retryDelay}
}

// AppointmentBooked confirms a to the patient's e-mail address. Delivery is
// retried a few times; the returned notification records the outcome.
func (s *Service) AppointmentBooked(ctx context.Context, a *model.Appointment) model.Notification {
	n := model.Notification{
		AppointmentID: a.ID,
		Recipient:     a.Patient.Email,
		Subject:       fmt.Sprintf("Appointment %s confirmed", a.AppointmentNumber),
		Content:       confirmationBody(a),
	}
	if s.mailer == nil || n.Recipient == "" {
		n.Status = model.NotificationStatusSkipped
		return n
	}

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = s.mailer.SendCustom(ctx, n.Recipient, n.Subject, n.Content); err == nil {
			n.Status = model.NotificationStatusSent
			n.SentAt = s.now()
			s.log.Info("appointment confirmation sent", "appointment_id", a.ID)
			return n
		}
		if attempt == maxRetries || ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(s.delay * time.Duration(attempt)):
		}
	}

	n.Status = model.NotificationStatusFailed
	n.LastError = err.Error()
	s.log.Error(err, "appointment confirmation failed", "appointment_id", a.ID)
	return n
}

func confirmationBody(a *model.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s %s,\n\n", a.Patient.FirstName, a.Patient.LastName)
	fmt.Fprintf(&b, "Your %s appointment %s is booked for %s at %s.\n", a.Speciality, a.AppointmentNumber, a.Date, a.Time)
	if a.Reason != "" {
		fmt.Fprintf(&b, "Reason for visit: %s\n", a.Reason)
	}
	b.WriteString("\nMedClinic")
	return b.String()
}
