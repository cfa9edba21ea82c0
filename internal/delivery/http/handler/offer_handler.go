package handler

import (
	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/delivery/http/response"
	"talenthub/internal/usecase/lifecycle"

	"github.com/gofiber/fiber/v3"
)

type OfferHandler struct {
	uc *lifecycle.Service
}

func NewOfferHandler(uc *lifecycle.Service) *OfferHandler {
	return &OfferHandler{uc: uc}
}

func (h *OfferHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/offers")
	grp.Post("/:offerID/accept", h.Accept)
	grp.Post("/:offerID/decline", h.Decline)
}

func (h *OfferHandler) Accept(c fiber.Ctx) error {
	if _, err := viewerUserID(c); err != nil {
		return err
	}
	offerID, err := parseUUIDParam(c, "offerID")
	if err != nil {
		return err
	}

	if err := h.uc.AcceptOffer(c.Context(), offerID); err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *OfferHandler) Decline(c fiber.Ctx) error {
	if _, err := viewerUserID(c); err != nil {
		return err
	}
	offerID, err := parseUUIDParam(c, "offerID")
	if err != nil {
		return err
	}

	var req dto.DeclineRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid body", nil, err)
	}

	if err := h.uc.DeclineOffer(c.Context(), offerID, req.Reason); err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
