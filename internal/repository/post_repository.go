package repository

import (
	"context"

	"talenthub/internal/database"
	"talenthub/internal/domain/worker"

	"github.com/google/uuid"
)

type PostRepository interface {
	// FindByWorkerIDs returns posts authored by the given workers, newest
	// first. Workers outside the list contribute nothing.
	FindByWorkerIDs(ctx context.Context, workerIDs []uuid.UUID) ([]worker.Post, error)
}

type PostgresPostRepository struct {
	db database.DB
}

func NewPostgresPostRepository(db database.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) FindByWorkerIDs(ctx context.Context, workerIDs []uuid.UUID) ([]worker.Post, error) {
	if len(workerIDs) == 0 {
		return []worker.Post{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, worker_id, caption, media_url, created_at
		 FROM posts
		 WHERE worker_id = ANY($1)
		 ORDER BY created_at DESC`,
		workerIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]worker.Post, 0)
	for rows.Next() {
		var p worker.Post
		if err := rows.Scan(&p.ID, &p.WorkerID, &p.Caption, &p.MediaURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
