package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedSearchHandler struct {
	uc usecase.SavedSearchUsecase
}

func NewSavedSearchHandler(uc usecase.SavedSearchUsecase) *SavedSearchHandler {
	return &SavedSearchHandler{uc: uc}
}

// RegisterRoutes expects an authenticated /me group.
func (h *SavedSearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/saved-searches")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Get("/:id/results", h.Results)
}

func (h *SavedSearchHandler) List(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), actor.UserID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedSearchListResponse(items))
}

func (h *SavedSearchHandler) Get(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	s, err := h.uc.Get(c.Context(), actor.UserID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedSearchResponse(s))
}

func (h *SavedSearchHandler) Create(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req usecase.SavedSearchInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.Create(c.Context(), actor.UserID, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Saved search created", dto.NewSavedSearchResponse(s))
}

func (h *SavedSearchHandler) Update(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req usecase.SavedSearchInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.Update(c.Context(), actor.UserID, id, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Saved search updated", dto.NewSavedSearchResponse(s))
}

func (h *SavedSearchHandler) Delete(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actor.UserID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Saved search deleted", nil)
}

// Results re-runs the stored search. The body has the listing shape.
func (h *SavedSearchHandler) Results(c fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Results(c.Context(), actor.UserID, id, page)
	if err != nil {
		return mapUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobListResponse(res))
}
