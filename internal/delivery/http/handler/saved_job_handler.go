package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobHandler struct {
	uc usecase.SavedJobUsecase
}

func NewSavedJobHandler(uc usecase.SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

// RegisterRoutes expects an authenticated /me group. Save and unsave are
// idempotent.
func (h *SavedJobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/saved-jobs")
	grp.Get("/", h.List)
	grp.Put("/:jobId", h.Save)
	grp.Delete("/:jobId", h.Unsave)
}

func (h *SavedJobHandler) List(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.List(c.Context(), actor.UserID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedJobsResponse(jobs))
}

func (h *SavedJobHandler) Save(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}

	if err := h.uc.Save(c.Context(), actor.UserID, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job saved", fiber.Map{"jobId": jobID, "saved": true})
}

func (h *SavedJobHandler) Unsave(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}

	if err := h.uc.Unsave(c.Context(), actor.UserID, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job removed", fiber.Map{"jobId": jobID, "saved": false})
}
