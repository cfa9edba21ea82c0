package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	Reason string `json:"reason"`
}

type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	WorkerID  uuid.UUID `json:"worker_id"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type DeclineRequest struct {
	Reason string `json:"reason"`
}

type ScheduleInterviewRequest struct {
	ScheduledAt  time.Time `json:"scheduled_at"`
	Instructions string    `json:"instructions"`
}

type InterviewResponse struct {
	ID           uuid.UUID `json:"id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Instructions string    `json:"instructions"`
	Status       string    `json:"status"`
}

type InterviewResponseRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason"`
}

type HireConfirmRequest struct {
	Confirm bool   `json:"confirm"`
	Reason  string `json:"reason"`
}
