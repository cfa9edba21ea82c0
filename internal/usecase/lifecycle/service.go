// Package lifecycle drives job, application, and offer status transitions and
// owns the applicant-capacity invariant: applicantsCount never exceeds
// maxApplicants, and a job is closed exactly when the count reaches the cap.
package lifecycle

import (
	"context"
	"errors"
	"log"
	"time"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"
	"talenthub/internal/notify"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrOfferNotFound       = errors.New("offer not found")
	ErrAlreadyApplied      = errors.New("already applied")
	ErrJobClosed           = errors.New("job closed")
	ErrCapacityReached     = errors.New("capacity reached")
	ErrInvalidState        = errors.New("invalid state")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

type Service struct {
	db         database.DB
	jobs       repository.JobRepository
	apps       repository.ApplicationRepository
	offers     repository.OfferRepository
	interviews repository.InterviewRepository
	skills     repository.SkillRepository
	notifier   notify.Notifier
	logger     *log.Logger

	now func() time.Time
}

func NewService(
	db database.DB,
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	offers repository.OfferRepository,
	interviews repository.InterviewRepository,
	skills repository.SkillRepository,
	notifier notify.Notifier,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		db:         db,
		jobs:       jobs,
		apps:       apps,
		offers:     offers,
		interviews: interviews,
		skills:     skills,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// Apply records a worker's application against an open job. The whole
// read-check-increment sequence runs inside one transaction with the job row
// locked, so two concurrent applicants cannot both observe pre-increment
// state. A cancelled context rolls everything back.
func (s *Service) Apply(ctx context.Context, jobID, workerID uuid.UUID, reason string) (job.Application, error) {
	if jobID == uuid.Nil || workerID == uuid.Nil {
		return job.Application{}, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return job.Application{}, ErrStoreUnavailable
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	exists, err := s.apps.ExistsByJobAndWorker(ctx, tx, jobID, workerID)
	if err != nil {
		return job.Application{}, ErrStoreUnavailable
	}
	if exists {
		return job.Application{}, ErrAlreadyApplied
	}

	j, err := s.jobs.GetForUpdate(ctx, tx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Application{}, ErrJobNotFound
		}
		return job.Application{}, ErrStoreUnavailable
	}

	if j.Status == job.StatusClosed {
		s.send(notify.Event{
			Type:        notify.EventJobClosed,
			RecipientID: j.RecruiterID,
			JobID:       &j.ID,
			Message:     "A worker tried to apply but the job is already closed",
		})
		return job.Application{}, ErrJobClosed
	}

	if j.AtCapacity() {
		// The job is still marked active even though it can take no one:
		// close it now so later callers reject fast.
		if err := s.jobs.SetCounters(ctx, tx, j.ID, j.ApplicantsCount, job.StatusClosed); err != nil {
			return job.Application{}, ErrStoreUnavailable
		}
		if err := tx.Commit(ctx); err != nil {
			return job.Application{}, ErrStoreUnavailable
		}
		s.send(notify.Event{
			Type:        notify.EventJobAutoClosed,
			RecipientID: j.RecruiterID,
			JobID:       &j.ID,
			Message:     "Your job reached its applicant limit and was closed",
		})
		return job.Application{}, ErrCapacityReached
	}

	a := job.Application{
		ID:        uuid.New(),
		JobID:     j.ID,
		WorkerID:  workerID,
		Reason:    reason,
		Status:    job.ApplicationApplied,
		CreatedAt: s.now().UTC(),
	}
	if err := s.apps.Create(ctx, tx, a); err != nil {
		// The existence check above is not race-proof: a concurrent apply
		// by the same worker can slip in before the job row lock is taken,
		// and the unique constraint reports it here.
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return job.Application{}, ErrAlreadyApplied
		}
		return job.Application{}, ErrStoreUnavailable
	}

	newCount := j.ApplicantsCount + 1
	status := j.Status
	justClosed := false
	if newCount == j.MaxApplicants {
		status = job.StatusClosed
		justClosed = true
	}
	if err := s.jobs.SetCounters(ctx, tx, j.ID, newCount, status); err != nil {
		return job.Application{}, ErrStoreUnavailable
	}

	if err := tx.Commit(ctx); err != nil {
		return job.Application{}, ErrStoreUnavailable
	}

	s.send(notify.Event{
		Type:          notify.EventNewApplicant,
		RecipientID:   j.RecruiterID,
		JobID:         &j.ID,
		ApplicationID: &a.ID,
		Message:       "You have a new applicant",
	})
	if justClosed {
		s.send(notify.Event{
			Type:        notify.EventJobAutoClosed,
			RecipientID: j.RecruiterID,
			JobID:       &j.ID,
			Message:     "Your job reached its applicant limit and was closed",
		})
	}
	s.bumpSkillPopularity(j.SkillID)

	return a, nil
}

// bumpSkillPopularity feeds the top-skills counter after a committed apply.
// Best-effort like notifications: a failed bump never fails the apply.
func (s *Service) bumpSkillPopularity(skillID uuid.UUID) {
	if s.skills == nil || skillID == uuid.Nil {
		return
	}
	if err := s.skills.IncrementPopularity(context.Background(), skillID); err != nil {
		s.logger.Printf("lifecycle | skill popularity bump failed | skill=%s err=%v", skillID, err)
	}
}

// Withdraw removes an application and releases its applicant slot. A missing
// application is not an error; the count never drops below zero; a closed job
// reopens once the count falls back under the cap.
func (s *Service) Withdraw(ctx context.Context, applicationID, jobID uuid.UUID) error {
	if applicationID == uuid.Nil || jobID == uuid.Nil {
		return ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return ErrStoreUnavailable
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := s.apps.Delete(ctx, tx, applicationID); err != nil {
		return ErrStoreUnavailable
	}

	j, err := s.jobs.GetForUpdate(ctx, tx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrStoreUnavailable
	}

	newCount := j.ApplicantsCount - 1
	if newCount < 0 {
		newCount = 0
	}

	status := j.Status
	if j.Status == job.StatusClosed && newCount < j.MaxApplicants {
		status = job.StatusActive
	}

	if err := s.jobs.SetCounters(ctx, tx, j.ID, newCount, status); err != nil {
		return ErrStoreUnavailable
	}

	return commitOrUnavailable(ctx, tx)
}

// AcceptOffer marks a pending offer accepted. Acting on a resolved offer is
// rejected; the pending guard runs server-side so a raced double-accept loses.
func (s *Service) AcceptOffer(ctx context.Context, offerID uuid.UUID) error {
	return s.resolveOffer(ctx, offerID, job.OfferAccepted, nil)
}

// DeclineOffer marks a pending offer declined and records the worker's reason.
func (s *Service) DeclineOffer(ctx context.Context, offerID uuid.UUID, reason string) error {
	var r *string
	if reason != "" {
		r = &reason
	}
	return s.resolveOffer(ctx, offerID, job.OfferDeclined, r)
}

func (s *Service) resolveOffer(ctx context.Context, offerID uuid.UUID, to job.OfferStatus, declineReason *string) error {
	if offerID == uuid.Nil {
		return ErrInvalidInput
	}

	ok, err := s.offers.Resolve(ctx, s.db, offerID, to, declineReason)
	if err != nil {
		return ErrStoreUnavailable
	}
	if !ok {
		if _, err := s.offers.Get(ctx, s.db, offerID); err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return ErrOfferNotFound
			}
			return ErrStoreUnavailable
		}
		return ErrInvalidState
	}

	o, err := s.offers.Get(ctx, s.db, offerID)
	if err != nil {
		// Resolution committed; the follow-up read only feeds the
		// notification, so a failure here is not surfaced.
		s.logger.Printf("lifecycle | offer notify read failed | offer=%s err=%v", offerID, err)
		return nil
	}

	evtType := notify.EventOfferAccepted
	msg := "Your offer was accepted"
	if to == job.OfferDeclined {
		evtType = notify.EventOfferDeclined
		msg = "Your offer was declined"
	}
	s.send(notify.Event{
		Type:        evtType,
		RecipientID: o.RecruiterID,
		JobID:       &o.JobID,
		Message:     msg,
	})
	return nil
}

// MarkSeen moves a fresh application to seen.
func (s *Service) MarkSeen(ctx context.Context, applicationID uuid.UUID) error {
	return s.transition(ctx, applicationID, job.ApplicationSeen, nil,
		job.ApplicationApplied)
}

// ScheduleInterview creates an interview record and attaches it to the
// application in one transaction.
func (s *Service) ScheduleInterview(ctx context.Context, applicationID uuid.UUID, at time.Time, instructions string) (job.Interview, error) {
	if applicationID == uuid.Nil {
		return job.Interview{}, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return job.Interview{}, ErrStoreUnavailable
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	iv := job.Interview{
		ID:           uuid.New(),
		ScheduledAt:  at.UTC(),
		Instructions: instructions,
		Status:       "scheduled",
	}
	if err := s.interviews.Create(ctx, tx, iv); err != nil {
		return job.Interview{}, ErrStoreUnavailable
	}

	ok, err := s.apps.LinkInterview(ctx, tx, applicationID, iv.ID,
		job.ApplicationApplied, job.ApplicationSeen)
	if err != nil {
		return job.Interview{}, ErrStoreUnavailable
	}
	if !ok {
		if rerr := s.classifyTransitionFailure(ctx, tx, applicationID); rerr != nil {
			return job.Interview{}, rerr
		}
		return job.Interview{}, ErrInvalidState
	}

	if err := commitOrUnavailable(ctx, tx); err != nil {
		return job.Interview{}, err
	}

	if a, err := s.apps.Get(ctx, s.db, applicationID); err == nil {
		s.send(notify.Event{
			Type:          notify.EventInterviewScheduled,
			RecipientID:   a.WorkerID,
			JobID:         &a.JobID,
			ApplicationID: &a.ID,
			Message:       "You have been invited to an interview",
		})
	}
	return iv, nil
}

// RespondInterview records the worker's answer to an interview invitation.
func (s *Service) RespondInterview(ctx context.Context, applicationID uuid.UUID, accept bool, reason string) error {
	to := job.ApplicationInterviewAccepted
	var r *string
	if !accept {
		to = job.ApplicationInterviewDeclined
		if reason != "" {
			r = &reason
		}
	}
	return s.transition(ctx, applicationID, to, r, job.ApplicationInterview)
}

// Hire marks an applicant as hired, pending the worker's confirmation.
func (s *Service) Hire(ctx context.Context, applicationID uuid.UUID) error {
	return s.transition(ctx, applicationID, job.ApplicationHired, nil,
		job.ApplicationApplied, job.ApplicationSeen, job.ApplicationInterview, job.ApplicationInterviewAccepted)
}

// ConfirmHire records the worker's answer to a hire decision.
func (s *Service) ConfirmHire(ctx context.Context, applicationID uuid.UUID, confirm bool, reason string) error {
	to := job.ApplicationHireConfirmed
	var r *string
	if !confirm {
		to = job.ApplicationHireDeclined
		if reason != "" {
			r = &reason
		}
	}
	return s.transition(ctx, applicationID, to, r, job.ApplicationHired)
}

func (s *Service) transition(ctx context.Context, applicationID uuid.UUID, to job.ApplicationStatus, reason *string, from ...job.ApplicationStatus) error {
	if applicationID == uuid.Nil {
		return ErrInvalidInput
	}

	ok, err := s.apps.Transition(ctx, s.db, applicationID, to, reason, from...)
	if err != nil {
		return ErrStoreUnavailable
	}
	if !ok {
		if rerr := s.classifyTransitionFailure(ctx, s.db, applicationID); rerr != nil {
			return rerr
		}
		return ErrInvalidState
	}

	if a, err := s.apps.Get(ctx, s.db, applicationID); err == nil {
		s.send(notify.Event{
			Type:          notify.EventApplicationUpdated,
			RecipientID:   a.WorkerID,
			JobID:         &a.JobID,
			ApplicationID: &a.ID,
			Message:       "Your application status changed to " + string(to),
		})
	}
	return nil
}

// classifyTransitionFailure distinguishes a missing application from one in
// the wrong status after a guarded update touched zero rows. nil means the
// record exists and the caller should report ErrInvalidState.
func (s *Service) classifyTransitionFailure(ctx context.Context, q database.Querier, applicationID uuid.UUID) error {
	if _, err := s.apps.Get(ctx, q, applicationID); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrApplicationNotFound
		}
		return ErrStoreUnavailable
	}
	return nil
}

// send delivers a notification best-effort. Sender failures are logged and
// dropped; they must never fail the operation that raised the event.
func (s *Service) send(evt notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(context.Background(), evt); err != nil {
		s.logger.Printf("lifecycle | notify failed | type=%s recipient=%s err=%v", evt.Type, evt.RecipientID, err)
	}
}

func commitOrUnavailable(ctx context.Context, tx database.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}
