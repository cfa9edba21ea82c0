package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

// JobRepository owns the mutable applicantsCount/status pair on a job row.
// Methods take a Querier so the counter engine can bind them to the
// transaction that keeps the capacity invariant linearizable.
type JobRepository interface {
	Get(ctx context.Context, q database.Querier, jobID uuid.UUID) (job.Job, error)
	// GetForUpdate locks the job row for the remainder of the transaction.
	GetForUpdate(ctx context.Context, q database.Querier, jobID uuid.UUID) (job.Job, error)
	SetCounters(ctx context.Context, q database.Querier, jobID uuid.UUID, applicantsCount int, status job.Status) error
}

type PostgresJobRepository struct{}

func NewPostgresJobRepository() *PostgresJobRepository {
	return &PostgresJobRepository{}
}

const jobColumns = `id, recruiter_id, title, description, job_type,
	COALESCE(skill_id, '00000000-0000-0000-0000-000000000000'::uuid),
	region, salary_min, salary_max, pay_cycle, budget,
	max_applicants, applicants_count, status, is_offer, created_at`

func prefixedJobColumns(alias string) string {
	cols := []string{
		"id", "recruiter_id", "title", "description", "job_type",
		"COALESCE(%s.skill_id, '00000000-0000-0000-0000-000000000000'::uuid)",
		"region", "salary_min", "salary_max", "pay_cycle", "budget",
		"max_applicants", "applicants_count", "status", "is_offer", "created_at",
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if strings.Contains(c, "%s") {
			out = append(out, fmt.Sprintf(c, alias))
			continue
		}
		out = append(out, alias+"."+c)
	}
	return strings.Join(out, ", ")
}

func (r *PostgresJobRepository) Get(ctx context.Context, q database.Querier, jobID uuid.UUID) (job.Job, error) {
	row := q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetForUpdate(ctx context.Context, q database.Querier, jobID uuid.UUID) (job.Job, error) {
	row := q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, jobID)
	return scanJob(row)
}

func (r *PostgresJobRepository) SetCounters(ctx context.Context, q database.Querier, jobID uuid.UUID, applicantsCount int, status job.Status) error {
	n, err := q.Exec(ctx,
		`UPDATE jobs SET applicants_count = $2, status = $3 WHERE id = $1`,
		jobID, applicantsCount, string(status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var jobType, status string
	err := row.Scan(
		&j.ID, &j.RecruiterID, &j.Title, &j.Description, &jobType,
		&j.SkillID, &j.Region, &j.SalaryMin, &j.SalaryMax, &j.PayCycle, &j.Budget,
		&j.MaxApplicants, &j.ApplicantsCount, &status, &j.IsOffer, &j.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Status = job.Status(status)
	return j, nil
}
