package handler

import (
	"errors"
	"strings"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/delivery/http/response"
	"talenthub/internal/localization"
	"talenthub/internal/repository"
	"talenthub/internal/usecase/recommend"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	engine       *recommend.Engine
	workers      repository.WorkerQueryRepository
	localization localization.Resolver

	defaultLimit int
	maxLimit     int
}

func NewRecommendationHandler(engine *recommend.Engine, workers repository.WorkerQueryRepository, loc localization.Resolver, defaultLimit, maxLimit int) *RecommendationHandler {
	return &RecommendationHandler{
		engine:       engine,
		workers:      workers,
		localization: loc,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/workers/recommendations", h.RecommendWorkers)
	r.Get("/jobs/recommendations", h.RecommendJobs)
	r.Get("/posts/recommendations", h.RecommendPosts)
}

// RecommendWorkers ranks candidates for a recruiter. The viewer attributes
// come from the query since recruiter profiles carry no region/skill of their
// own; recruiters search on behalf of a role they are filling.
func (h *RecommendationHandler) RecommendWorkers(c fiber.Ctx) error {
	if _, err := viewerUserID(c); err != nil {
		return err
	}

	v, err := viewerFromQuery(c)
	if err != nil {
		return err
	}
	limit := clampLimit(parseQueryInt(c, "limit", h.defaultLimit), h.defaultLimit, h.maxLimit)
	lang := c.Query("lang")

	ranked, err := h.engine.RankWorkers(c.Context(), v, limit)
	if err != nil {
		return mapRecommendError(err)
	}

	out := make([]dto.RankedWorkerResponse, 0, len(ranked))
	for _, rw := range ranked {
		out = append(out, dto.RankedWorkerResponse{
			WorkerID:  rw.Worker.ID,
			SkillID:   rw.Worker.SkillID,
			SkillName: h.skillName(c, rw.Worker.SkillID, lang),
			Region:    rw.Worker.Region,
			IsPro:     rw.Worker.IsPro,
			Rating:    rw.Worker.Rating,
			Bio:       rw.Worker.Bio,
			Avatar:    rw.Worker.Avatar,
			Score:     rw.Score,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// RecommendJobs ranks open jobs for the authenticated worker.
func (h *RecommendationHandler) RecommendJobs(c fiber.Ctx) error {
	userID, err := viewerUserID(c)
	if err != nil {
		return err
	}

	w, err := h.workers.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkerNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	limit := clampLimit(parseQueryInt(c, "limit", h.defaultLimit), h.defaultLimit, h.maxLimit)
	lang := c.Query("lang")

	ranked, err := h.engine.RankJobs(c.Context(), recommend.Viewer{
		Region:   w.Region,
		Industry: w.Industry,
		SkillID:  w.SkillID,
	}, limit)
	if err != nil {
		return mapRecommendError(err)
	}

	out := make([]dto.RankedJobResponse, 0, len(ranked))
	for _, rj := range ranked {
		out = append(out, dto.RankedJobResponse{
			JobID:     rj.Job.ID,
			Title:     rj.Job.Title,
			Type:      string(rj.Job.Type),
			Region:    rj.Job.Region,
			SkillID:   rj.Job.SkillID,
			SkillName: h.skillName(c, rj.Job.SkillID, lang),
			Score:     rj.Score,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// RecommendPosts returns work-sample posts ordered by their author's rank.
func (h *RecommendationHandler) RecommendPosts(c fiber.Ctx) error {
	if _, err := viewerUserID(c); err != nil {
		return err
	}

	v, err := viewerFromQuery(c)
	if err != nil {
		return err
	}
	limit := clampLimit(parseQueryInt(c, "limit", h.defaultLimit), h.defaultLimit, h.maxLimit)

	posts, err := h.engine.RecommendedPosts(c.Context(), v, limit)
	if err != nil {
		return mapRecommendError(err)
	}

	out := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.PostResponse{
			ID:        p.ID,
			WorkerID:  p.WorkerID,
			Caption:   p.Caption,
			MediaURL:  p.MediaURL,
			CreatedAt: p.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *RecommendationHandler) skillName(c fiber.Ctx, skillID uuid.UUID, lang string) string {
	if h.localization == nil || skillID == uuid.Nil {
		return ""
	}
	name, err := h.localization.SkillName(c.Context(), skillID, lang)
	if err != nil {
		return ""
	}
	return name
}

func viewerFromQuery(c fiber.Ctx) (recommend.Viewer, error) {
	v := recommend.Viewer{
		Region:   strings.TrimSpace(c.Query("region")),
		Industry: strings.TrimSpace(c.Query("industry")),
	}
	if raw := strings.TrimSpace(c.Query("skill_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return recommend.Viewer{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill_id", nil, err)
		}
		v.SkillID = id
	}
	return v, nil
}

func mapRecommendError(err error) error {
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
