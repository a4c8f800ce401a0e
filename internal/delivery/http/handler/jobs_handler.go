package handler

import (
	"net/url"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/search"
	"jobboard/internal/usecase"
	"jobboard/pkg/jobsearch"

	"github.com/gofiber/fiber/v3"
)

// JobsHandler serves the public listing and its facet catalog.
type JobsHandler struct {
	uc      usecase.JobListUsecase
	catalog search.Catalog
}

func NewJobsHandler(uc usecase.JobListUsecase, catalog search.Catalog) *JobsHandler {
	return &JobsHandler{uc: uc, catalog: catalog}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs-listing", h.HandleListJobs)
	r.Get("/jobs-listing/facets", h.HandleFacets)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	filters, page, err := jobsearch.ParseQuery(values)
	if err != nil {
		return mapUsecaseError(err)
	}

	res, err := h.uc.ListJobs(c.Context(), usecase.JobListParams{Filters: filters, Page: page})
	if err != nil {
		return mapUsecaseError(err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewJobListResponse(res))
}

func (h *JobsHandler) HandleFacets(c fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.catalog)
}
