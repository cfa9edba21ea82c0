package repository

import (
	"context"
	"database/sql"
	"errors"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
)

// OfferedJob pairs a pending offer with the job it proposes, for feed assembly.
type OfferedJob struct {
	Offer job.Offer
	Job   job.Job
}

type OfferRepository interface {
	Get(ctx context.Context, q database.Querier, id uuid.UUID) (job.Offer, error)
	// Resolve moves a pending offer to accepted or declined. The status guard
	// runs server-side so a raced double-resolve affects zero rows.
	Resolve(ctx context.Context, q database.Querier, id uuid.UUID, status job.OfferStatus, declineReason *string) (bool, error)
	ListPendingWithJobs(ctx context.Context, q database.Querier, workerID uuid.UUID) ([]OfferedJob, error)
}

type PostgresOfferRepository struct{}

func NewPostgresOfferRepository() *PostgresOfferRepository {
	return &PostgresOfferRepository{}
}

func (r *PostgresOfferRepository) Get(ctx context.Context, q database.Querier, id uuid.UUID) (job.Offer, error) {
	row := q.QueryRow(ctx,
		`SELECT id, job_id, worker_id, recruiter_id, status, decline_reason, created_at
		 FROM offers WHERE id = $1`,
		id,
	)

	var o job.Offer
	var status string
	err := row.Scan(&o.ID, &o.JobID, &o.WorkerID, &o.RecruiterID, &status, &o.DeclineReason, &o.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Offer{}, ErrOfferNotFound
		}
		return job.Offer{}, err
	}
	o.Status = job.OfferStatus(status)
	return o, nil
}

func (r *PostgresOfferRepository) Resolve(ctx context.Context, q database.Querier, id uuid.UUID, status job.OfferStatus, declineReason *string) (bool, error) {
	n, err := q.Exec(ctx,
		`UPDATE offers SET status = $2, decline_reason = $3 WHERE id = $1 AND status = $4`,
		id, string(status), declineReason, string(job.OfferPending),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresOfferRepository) ListPendingWithJobs(ctx context.Context, q database.Querier, workerID uuid.UUID) ([]OfferedJob, error) {
	rows, err := q.Query(ctx,
		`SELECT o.id, o.job_id, o.worker_id, o.recruiter_id, o.status, o.decline_reason, o.created_at,
			`+prefixedJobColumns("j")+`
		 FROM offers o
		 JOIN jobs j ON j.id = o.job_id
		 WHERE o.worker_id = $1 AND o.status = $2
		 ORDER BY o.created_at DESC`,
		workerID, string(job.OfferPending),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OfferedJob, 0)
	for rows.Next() {
		var o job.Offer
		var j job.Job
		var offerStatus, jobType, jobStatus string
		if err := rows.Scan(
			&o.ID, &o.JobID, &o.WorkerID, &o.RecruiterID, &offerStatus, &o.DeclineReason, &o.CreatedAt,
			&j.ID, &j.RecruiterID, &j.Title, &j.Description, &jobType,
			&j.SkillID, &j.Region, &j.SalaryMin, &j.SalaryMax, &j.PayCycle, &j.Budget,
			&j.MaxApplicants, &j.ApplicantsCount, &jobStatus, &j.IsOffer, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Status = job.OfferStatus(offerStatus)
		j.Type = job.Type(jobType)
		j.Status = job.Status(jobStatus)
		out = append(out, OfferedJob{Offer: o, Job: j})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
