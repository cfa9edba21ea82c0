package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation in the Postgres error code table.
const pgUniqueViolation = "23505"

var (
	ErrApplicationNotFound = errors.New("application not found")
	// ErrDuplicateApplication reports an insert that collided with the
	// unique (job_id, worker_id) pair.
	ErrDuplicateApplication = errors.New("duplicate application")
)

type ApplicationRepository interface {
	Get(ctx context.Context, q database.Querier, id uuid.UUID) (job.Application, error)
	ExistsByJobAndWorker(ctx context.Context, q database.Querier, jobID, workerID uuid.UUID) (bool, error)
	Create(ctx context.Context, q database.Querier, a job.Application) error
	// Delete reports whether a row was removed; a missing row is not an error.
	Delete(ctx context.Context, q database.Querier, id uuid.UUID) (bool, error)
	// Transition moves the application to a new status only when its current
	// status is one of from. It reports whether a row changed.
	Transition(ctx context.Context, q database.Querier, id uuid.UUID, to job.ApplicationStatus, reason *string, from ...job.ApplicationStatus) (bool, error)
	// LinkInterview attaches an interview and moves the application to the
	// interview status, guarded by from like Transition.
	LinkInterview(ctx context.Context, q database.Querier, id, interviewID uuid.UUID, from ...job.ApplicationStatus) (bool, error)
}

type PostgresApplicationRepository struct{}

func NewPostgresApplicationRepository() *PostgresApplicationRepository {
	return &PostgresApplicationRepository{}
}

func (r *PostgresApplicationRepository) Get(ctx context.Context, q database.Querier, id uuid.UUID) (job.Application, error) {
	row := q.QueryRow(ctx,
		`SELECT id, job_id, worker_id, reason, status, interview_id, decline_reason, created_at
		 FROM applications WHERE id = $1`,
		id,
	)

	var a job.Application
	var status string
	err := row.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Reason, &status, &a.InterviewID, &a.DeclineReason, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Application{}, ErrApplicationNotFound
		}
		return job.Application{}, err
	}
	a.Status = job.ApplicationStatus(status)
	return a, nil
}

func (r *PostgresApplicationRepository) ExistsByJobAndWorker(ctx context.Context, q database.Querier, jobID, workerID uuid.UUID) (bool, error) {
	var exists bool
	row := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND worker_id = $2)`,
		jobID, workerID,
	)
	if err := row.Scan(&exists); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

// Create inserts the application row. Two in-flight applies by the same
// worker can both pass the existence check before either takes the job row
// lock; the unique constraint catches the loser here and is reported as
// ErrDuplicateApplication rather than a plain store failure.
func (r *PostgresApplicationRepository) Create(ctx context.Context, q database.Querier, a job.Application) error {
	_, err := q.Exec(ctx,
		`INSERT INTO applications (id, job_id, worker_id, reason, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.WorkerID, a.Reason, string(a.Status), a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) (bool, error) {
	n, err := q.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresApplicationRepository) Transition(ctx context.Context, q database.Querier, id uuid.UUID, to job.ApplicationStatus, reason *string, from ...job.ApplicationStatus) (bool, error) {
	n, err := q.Exec(ctx,
		`UPDATE applications SET status = $2, decline_reason = COALESCE($3, decline_reason)
		 WHERE id = $1 AND status = ANY(string_to_array($4, ','))`,
		id, string(to), reason, statusList(from),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresApplicationRepository) LinkInterview(ctx context.Context, q database.Querier, id, interviewID uuid.UUID, from ...job.ApplicationStatus) (bool, error) {
	n, err := q.Exec(ctx,
		`UPDATE applications SET status = $2, interview_id = $3
		 WHERE id = $1 AND status = ANY(string_to_array($4, ','))`,
		id, string(job.ApplicationInterview), interviewID, statusList(from),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func statusList(from []job.ApplicationStatus) string {
	parts := make([]string, 0, len(from))
	for _, s := range from {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}
