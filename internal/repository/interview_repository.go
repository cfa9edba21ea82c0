package repository

import (
	"context"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"
)

type InterviewRepository interface {
	Create(ctx context.Context, q database.Querier, iv job.Interview) error
}

type PostgresInterviewRepository struct{}

func NewPostgresInterviewRepository() *PostgresInterviewRepository {
	return &PostgresInterviewRepository{}
}

func (r *PostgresInterviewRepository) Create(ctx context.Context, q database.Querier, iv job.Interview) error {
	_, err := q.Exec(ctx,
		`INSERT INTO interviews (id, scheduled_at, instructions, status)
		 VALUES ($1, $2, $3, $4)`,
		iv.ID, iv.ScheduledAt, iv.Instructions, iv.Status,
	)
	return err
}
