package repository

import (
	"context"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"

	"github.com/google/uuid"
)

// JobQueryRepository serves the jobs-for-worker recommendation tiers and the
// plan-tier feed list. Offer-type jobs never surface in open recommendations.
type JobQueryRepository interface {
	FindOpenBySkillIndustry(ctx context.Context, skillID uuid.UUID, industry string, limit int) ([]job.Job, error)
	FindOpenByRegion(ctx context.Context, region string, limit int) ([]job.Job, error)
	FindOpenPool(ctx context.Context, limit int) ([]job.Job, error)
	// ListPlanTier returns open jobs ordered by age: oldest first for free
	// accounts, newest first for pro accounts.
	ListPlanTier(ctx context.Context, limit int, newestFirst bool) ([]job.Job, error)
}

type PostgresJobQueryRepository struct {
	db database.DB
}

func NewPostgresJobQueryRepository(db database.DB) *PostgresJobQueryRepository {
	return &PostgresJobQueryRepository{db: db}
}

func (r *PostgresJobQueryRepository) FindOpenBySkillIndustry(ctx context.Context, skillID uuid.UUID, industry string, limit int) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = $1 AND is_offer = FALSE
		   AND (skill_id = $2 OR skill_id IN (SELECT id FROM skills WHERE industry = $3))
		 ORDER BY created_at DESC
		 LIMIT $4`,
		string(job.StatusActive), skillID, industry, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobQueryRepository) FindOpenByRegion(ctx context.Context, region string, limit int) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = $1 AND is_offer = FALSE AND region = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		string(job.StatusActive), region, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobQueryRepository) FindOpenPool(ctx context.Context, limit int) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = $1 AND is_offer = FALSE
		 ORDER BY created_at DESC
		 LIMIT $2`,
		string(job.StatusActive), limit,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobQueryRepository) ListPlanTier(ctx context.Context, limit int, newestFirst bool) ([]job.Job, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = $1 AND is_offer = FALSE
		 ORDER BY created_at `+order+`
		 LIMIT $2`,
		string(job.StatusActive), limit,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		var jobType, status string
		if err := rows.Scan(
			&j.ID, &j.RecruiterID, &j.Title, &j.Description, &jobType,
			&j.SkillID, &j.Region, &j.SalaryMin, &j.SalaryMax, &j.PayCycle, &j.Budget,
			&j.MaxApplicants, &j.ApplicantsCount, &status, &j.IsOffer, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		j.Type = job.Type(jobType)
		j.Status = job.Status(status)
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
