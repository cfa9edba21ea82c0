package notify

import (
	"context"

	"github.com/google/uuid"
)

type EventType string

const (
	EventNewApplicant       EventType = "new_applicant"
	EventJobClosed          EventType = "job_closed"
	EventJobAutoClosed      EventType = "job_auto_closed"
	EventApplicationUpdated EventType = "application_updated"
	EventInterviewScheduled EventType = "interview_scheduled"
	EventOfferAccepted      EventType = "offer_accepted"
	EventOfferDeclined      EventType = "offer_declined"
)

// Event is a best-effort push notification. Delivery failures are the
// notifier's problem; they never fail the operation that raised the event.
type Event struct {
	Type          EventType  `json:"type"`
	RecipientID   uuid.UUID  `json:"recipient_id"`
	JobID         *uuid.UUID `json:"job_id,omitempty"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	Message       string     `json:"message,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, evt Event) error
}
