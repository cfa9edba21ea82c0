package recommend

import (
	"github.com/google/uuid"
)

// Viewer carries the profile attributes ranking is computed against.
type Viewer struct {
	Region   string
	Industry string
	SkillID  uuid.UUID
}

// Candidate is the scoring view of a ranked record, worker or job alike.
type Candidate struct {
	ID       uuid.UUID
	SkillID  uuid.UUID
	Region   string
	Pro      bool
	Verified bool
	Rating   float64
}

// Score is a weighted additive rank: categorical bonuses dominate, the rating
// term only breaks ties between otherwise equal candidates.
func Score(c Candidate, v Viewer) float64 {
	var s float64
	if c.Pro {
		s += 3
	}
	if c.Verified {
		s += 2
	}
	if c.SkillID != uuid.Nil && c.SkillID == v.SkillID {
		s += 1
	}
	if c.Region != "" && c.Region == v.Region {
		s += 1
	}
	s += c.Rating / 10
	return s
}
