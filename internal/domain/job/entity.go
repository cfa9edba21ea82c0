package job

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Job is a posted work opportunity. MaxApplicants = 0 marks a direct-offer-only
// job that never accepts open applications.
type Job struct {
	ID          uuid.UUID
	RecruiterID uuid.UUID
	Title       string
	Description string
	Type        Type
	SkillID     uuid.UUID
	Region      string

	SalaryMin *int64
	SalaryMax *int64
	PayCycle  *string
	Budget    *int64

	MaxApplicants   int
	ApplicantsCount int
	Status          Status
	IsOffer         bool

	CreatedAt time.Time
}

// AtCapacity reports whether the job can take no further applicants.
// A zero MaxApplicants is always at capacity.
func (j Job) AtCapacity() bool {
	return j.ApplicantsCount >= j.MaxApplicants
}

type ApplicationStatus string

const (
	ApplicationApplied           ApplicationStatus = "applied"
	ApplicationSeen              ApplicationStatus = "seen"
	ApplicationInterview         ApplicationStatus = "interview"
	ApplicationHired             ApplicationStatus = "hired"
	ApplicationInterviewAccepted ApplicationStatus = "interview_accepted"
	ApplicationInterviewDeclined ApplicationStatus = "interview_declined"
	ApplicationHireConfirmed     ApplicationStatus = "hire_confirmed"
	ApplicationHireDeclined      ApplicationStatus = "hire_declined"
)

// Application is a worker's request to be considered for a job. At most one
// exists per (job, worker) pair.
type Application struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	WorkerID      uuid.UUID
	Reason        string
	Status        ApplicationStatus
	InterviewID   *uuid.UUID
	DeclineReason *string
	CreatedAt     time.Time
}

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
)

// Offer is a recruiter's direct, single-worker proposal. Exactly one offer
// exists per offer-type job.
type Offer struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	WorkerID      uuid.UUID
	RecruiterID   uuid.UUID
	Status        OfferStatus
	DeclineReason *string
	CreatedAt     time.Time
}

type Interview struct {
	ID           uuid.UUID
	ScheduledAt  time.Time
	Instructions string
	Status       string
}
