package model

import (
	"time"
)

type NotificationStatus string

const (
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
	NotificationStatusSkipped NotificationStatus = "skipped"
)

// Notification is an outgoing message about an appointment.
type Notification struct {
	AppointmentID string
	Recipient     string
	Subject       string
	Content       string
	Status        NotificationStatus
	LastError     string
	SentAt        time.Time
}
