package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobRecommendationHandler struct {
	uc usecase.JobRecommendationUsecase
}

func NewJobRecommendationHandler(uc usecase.JobRecommendationUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc}
}

// RegisterRoutes mounts on the /jobs group and must run before the
// posting routes so /recommendations is not taken for an id.
func (h *JobRecommendationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}
	r.Get("/recommendations", auth, h.GetRecommendations)
}

func (h *JobRecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	minScore, err := parseQueryInt(c, "minScore", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.GetRecommendations(c.Context(), actor.UserID, usecase.JobRecommendationParams{
		Limit:    limit,
		MinScore: minScore,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobRecommendationsResponse(items))
}
