package dto

import (
	"time"

	"github.com/google/uuid"
)

type RankedWorkerResponse struct {
	WorkerID  uuid.UUID `json:"worker_id"`
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name,omitempty"`
	Region    string    `json:"region"`
	IsPro     bool      `json:"is_pro"`
	Rating    float64   `json:"rating"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Score     float64   `json:"score"`
}

type RankedJobResponse struct {
	JobID     uuid.UUID `json:"job_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Region    string    `json:"region"`
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name,omitempty"`
	Score     float64   `json:"score"`
}

type TopSkillResponse struct {
	SkillID    uuid.UUID `json:"skill_id"`
	Name       string    `json:"name"`
	Industry   string    `json:"industry"`
	Popularity int       `json:"popularity"`
}

type PostResponse struct {
	ID        uuid.UUID `json:"id"`
	WorkerID  uuid.UUID `json:"worker_id"`
	Caption   string    `json:"caption"`
	MediaURL  string    `json:"media_url"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedItemResponse struct {
	JobID   uuid.UUID  `json:"job_id"`
	Source  string     `json:"source"`
	Title   string     `json:"title"`
	Region  string     `json:"region"`
	Status  string     `json:"status"`
	OfferID *uuid.UUID `json:"offer_id,omitempty"`
	Score   float64    `json:"score,omitempty"`
}
