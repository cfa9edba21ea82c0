package repository

import (
	"context"
	"database/sql"
	"errors"

	"talenthub/internal/database"
	"talenthub/internal/domain/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// WorkerQueryRepository serves the recommendation tiers. All queries are
// read-only; tier ordering puts subscription-boosted profiles first.
type WorkerQueryRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (worker.Worker, error)
	FindByIndustry(ctx context.Context, industry string, limit int) ([]worker.Worker, error)
	FindByRegion(ctx context.Context, region string, limit int) ([]worker.Worker, error)
	FindAnyPool(ctx context.Context, limit int) ([]worker.Worker, error)
}

type PostgresWorkerQueryRepository struct {
	db database.DB
}

func NewPostgresWorkerQueryRepository(db database.DB) *PostgresWorkerQueryRepository {
	return &PostgresWorkerQueryRepository{db: db}
}

const workerColumns = `id, user_id,
	COALESCE(skill_id, '00000000-0000-0000-0000-000000000000'::uuid),
	region, industry, is_pro, is_verified, rating, bio, avatar, created_at`

func (r *PostgresWorkerQueryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (worker.Worker, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE user_id = $1`,
		userID,
	)

	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.UserID, &w.SkillID, &w.Region, &w.Industry,
		&w.IsPro, &w.IsVerified, &w.Rating, &w.Bio, &w.Avatar, &w.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, ErrWorkerNotFound
		}
		return worker.Worker{}, err
	}
	return w, nil
}

func (r *PostgresWorkerQueryRepository) FindByIndustry(ctx context.Context, industry string, limit int) ([]worker.Worker, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+workerColumns+`
		 FROM workers
		 WHERE industry = $1
		 ORDER BY is_pro DESC, rating DESC, created_at DESC
		 LIMIT $2`,
		industry, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectWorkers(rows)
}

func (r *PostgresWorkerQueryRepository) FindByRegion(ctx context.Context, region string, limit int) ([]worker.Worker, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+workerColumns+`
		 FROM workers
		 WHERE region = $1
		 ORDER BY is_pro DESC, rating DESC, created_at DESC
		 LIMIT $2`,
		region, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectWorkers(rows)
}

func (r *PostgresWorkerQueryRepository) FindAnyPool(ctx context.Context, limit int) ([]worker.Worker, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+workerColumns+`
		 FROM workers
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectWorkers(rows)
}

func collectWorkers(rows database.Rows) ([]worker.Worker, error) {
	defer rows.Close()

	out := make([]worker.Worker, 0)
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.SkillID, &w.Region, &w.Industry,
			&w.IsPro, &w.IsVerified, &w.Rating, &w.Bio, &w.Avatar, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
