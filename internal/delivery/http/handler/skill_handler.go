package handler

import (
	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/response"
	"talenthub/internal/localization"
	"talenthub/internal/usecase/recommend"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	engine       *recommend.Engine
	localization localization.Resolver

	defaultLimit int
	maxLimit     int
}

func NewSkillHandler(engine *recommend.Engine, loc localization.Resolver, defaultLimit, maxLimit int) *SkillHandler {
	return &SkillHandler{engine: engine, localization: loc, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/skills/top", h.TopSkills)
}

func (h *SkillHandler) TopSkills(c fiber.Ctx) error {
	limit := clampLimit(parseQueryInt(c, "limit", h.defaultLimit), h.defaultLimit, h.maxLimit)
	lang := c.Query("lang")

	skills, err := h.engine.TopSkills(c.Context(), limit)
	if err != nil {
		return mapRecommendError(err)
	}

	out := make([]dto.TopSkillResponse, 0, len(skills))
	for _, s := range skills {
		name := s.Name
		if h.localization != nil && lang != "" {
			if localized, err := h.localization.SkillName(c.Context(), s.ID, lang); err == nil && localized != "" {
				name = localized
			}
		}
		out = append(out, dto.TopSkillResponse{
			SkillID:    s.ID,
			Name:       name,
			Industry:   s.Industry,
			Popularity: s.Popularity,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
