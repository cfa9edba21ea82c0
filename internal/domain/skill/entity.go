package skill

import (
	"github.com/google/uuid"
)

type Skill struct {
	ID         uuid.UUID
	Name       string
	Industry   string
	Popularity int
}

// Translation holds a localized display name for a skill.
type Translation struct {
	SkillID uuid.UUID
	Lang    string
	Name    string
}
