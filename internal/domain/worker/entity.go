package worker

import (
	"time"

	"github.com/google/uuid"
)

// Worker is a candidate profile. The recommendation engine reads it as ranking
// input; nothing in this module mutates it.
type Worker struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SkillID    uuid.UUID
	Region     string
	Industry   string
	IsPro      bool
	IsVerified bool
	Rating     float64
	Bio        string
	Avatar     string
	CreatedAt  time.Time
}

// Post is a work sample published by a worker.
type Post struct {
	ID        uuid.UUID
	WorkerID  uuid.UUID
	Caption   string
	MediaURL  string
	CreatedAt time.Time
}
