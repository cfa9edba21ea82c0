// Package localization resolves skill display names per language code. It is
// a pure read dependency; a missing translation falls back to the canonical
// skill name.
package localization

import (
	"context"
	"strings"

	"talenthub/internal/repository"

	"github.com/google/uuid"
)

const DefaultLang = "en"

type Resolver interface {
	SkillName(ctx context.Context, skillID uuid.UUID, lang string) (string, error)
}

type RepoResolver struct {
	skills repository.SkillRepository
}

func NewRepoResolver(skills repository.SkillRepository) *RepoResolver {
	return &RepoResolver{skills: skills}
}

func (r *RepoResolver) SkillName(ctx context.Context, skillID uuid.UUID, lang string) (string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLang
	}
	return r.skills.DisplayName(ctx, skillID, lang)
}
