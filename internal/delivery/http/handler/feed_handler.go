package handler

import (
	"errors"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/delivery/http/response"
	"talenthub/internal/repository"
	"talenthub/internal/usecase/feed"

	"github.com/gofiber/fiber/v3"
)

type FeedHandler struct {
	assembler *feed.Assembler
	workers   repository.WorkerQueryRepository

	defaultLimit int
	maxLimit     int
}

func NewFeedHandler(assembler *feed.Assembler, workers repository.WorkerQueryRepository, defaultLimit, maxLimit int) *FeedHandler {
	return &FeedHandler{assembler: assembler, workers: workers, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

func (h *FeedHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/feed", h.WorkerFeed)
}

func (h *FeedHandler) WorkerFeed(c fiber.Ctx) error {
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

	items, err := h.assembler.BuildWorkerFeed(c.Context(), w, limit)
	if err != nil {
		if errors.Is(err, feed.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.FeedItemResponse, 0, len(items))
	for _, it := range items {
		item := dto.FeedItemResponse{
			JobID:  it.JobID,
			Source: string(it.Source),
			Title:  it.Job.Title,
			Region: it.Job.Region,
			Status: string(it.Job.Status),
			Score:  it.Score,
		}
		if it.Offer != nil {
			item.OfferID = &it.Offer.ID
		}
		out = append(out, item)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
