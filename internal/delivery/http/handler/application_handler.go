package handler

import (
	"errors"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/delivery/http/response"
	"talenthub/internal/usecase/lifecycle"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc *lifecycle.Service
}

func NewApplicationHandler(uc *lifecycle.Service) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/jobs/:jobID/apply", h.Apply)
	r.Delete("/jobs/:jobID/applications/:applicationID", h.Withdraw)
	r.Post("/applications/:applicationID/seen", h.MarkSeen)
	r.Post("/applications/:applicationID/interview", h.ScheduleInterview)
	r.Post("/applications/:applicationID/interview/response", h.RespondInterview)
	r.Post("/applications/:applicationID/hire", h.Hire)
	r.Post("/applications/:applicationID/hire/confirm", h.ConfirmHire)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	workerID, err := viewerUserID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "jobID")
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid body", nil, err)
	}

	a, err := h.uc.Apply(c.Context(), jobID, workerID, req.Reason)
	if err != nil {
		return mapLifecycleError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		WorkerID:  a.WorkerID,
		Reason:    a.Reason,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	})
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	if _, err := viewerUserID(c); err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "jobID")
	if err != nil {
		return err
	}
	applicationID, err := parseUUIDParam(c, "applicationID")
	if err != nil {
		return err
	}

	if err := h.uc.Withdraw(c.Context(), applicationID, jobID); err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ApplicationHandler) MarkSeen(c fiber.Ctx) error {
	applicationID, err := parseUUIDParam(c, "applicationID")
	if err != nil {
		return err
	}
	if err := h.uc.MarkSeen(c.Context(), applicationID); err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ApplicationHandler) ScheduleInterview(c fiber.Ctx) error {
	applicationID, err := parseUUIDParam(c, "applicationID")
	if err != nil {
		return err
	}

	var req dto.ScheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid body", nil, err)
	}

	iv, err := h.uc.ScheduleInterview(c.Context(), applicationID, req.ScheduledAt, req.Instructions)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.InterviewResponse{
		ID:           iv.ID,
		ScheduledAt:  iv.ScheduledAt,
		Instructions: iv.Instructions,
		Status:       iv.Status,
	})
}

func (h *ApplicationHandler) RespondInterview(c fiber.Ctx) error {
	applicationID, err := parseUUIDParam(c, "applicationID")
	if err != nil {
		return err
	}

	var req dto.InterviewResponseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid body", nil, err)
	}

	if err := h.uc.RespondInterview(c.Context(), applicationID, req.Accept, req.Reason); err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ApplicationHandler) Hire(c fiber.Ctx) error {
	applicationID, err := parseUUIDParam(c, "applicationID")
	if err != nil {
		return err
	}
	if err := h.uc.Hire(c.Context(), applicationID); err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ApplicationHandler) ConfirmHire(c fiber.Ctx) error {
	applicationID, err := parseUUIDParam(c, "applicationID")
	if err != nil {
		return err
	}

	var req dto.HireConfirmRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid body", nil, err)
	}

	if err := h.uc.ConfirmHire(c.Context(), applicationID, req.Confirm, req.Reason); err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapLifecycleError(err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, lifecycle.ErrJobNotFound),
		errors.Is(err, lifecycle.ErrApplicationNotFound),
		errors.Is(err, lifecycle.ErrOfferNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, lifecycle.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied", nil, err)
	case errors.Is(err, lifecycle.ErrJobClosed), errors.Is(err, lifecycle.ErrCapacityReached):
		return middleware.NewAppError(fiber.StatusConflict, "This opportunity is no longer accepting applicants", nil, err)
	case errors.Is(err, lifecycle.ErrInvalidState):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageUnprocessableEntity, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
