package repository

import (
	"context"
	"database/sql"
	"errors"

	"talenthub/internal/database"
	"talenthub/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSkillNotFound = errors.New("skill not found")
)

type SkillRepository interface {
	// TopSkills returns skills with a positive popularity counter, most
	// popular first, capped at limit.
	TopSkills(ctx context.Context, limit int) ([]skill.Skill, error)
	// DisplayName resolves the localized name for a skill, falling back to
	// the canonical name when no translation exists for lang.
	DisplayName(ctx context.Context, skillID uuid.UUID, lang string) (string, error)
	IncrementPopularity(ctx context.Context, skillID uuid.UUID) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) TopSkills(ctx context.Context, limit int) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, industry, popularity
		 FROM skills
		 WHERE popularity > 0
		 ORDER BY popularity DESC, name ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Industry, &s.Popularity); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) DisplayName(ctx context.Context, skillID uuid.UUID, lang string) (string, error) {
	var name string
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(t.name, s.name)
		 FROM skills s
		 LEFT JOIN skill_translations t ON t.skill_id = s.id AND t.lang = $2
		 WHERE s.id = $1`,
		skillID, lang,
	)
	if err := row.Scan(&name); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSkillNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *PostgresSkillRepository) IncrementPopularity(ctx context.Context, skillID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE skills SET popularity = popularity + 1 WHERE id = $1`,
		skillID,
	)
	return err
}
