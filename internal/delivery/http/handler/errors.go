package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/importer"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
	"jobboard/pkg/jobsearch"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError translates usecase errors into HTTP errors. Validation
// failures carry their per-field problems as data. A canceled request
// context is the client's doing and never reaches the 5xx path.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", verr.Fields, err)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return middleware.NewAppError(response.StatusClientClosedRequest, response.MessageClientClosedRequest, nil, err)
	case errors.Is(err, usecase.ErrUserSkillProfileEmpty):
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill profile is empty", nil, err)
	case errors.Is(err, jobsearch.ErrInvalidQuery), errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, conflictMessage(err), nil, err)
	case errors.Is(err, usecase.ErrImportFailed):
		if errors.Is(err, importer.ErrFetch) {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job page could not be fetched", nil, err)
		}
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job page has no usable posting", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// conflictMessage exposes the detail wrapped after "conflict: ".
func conflictMessage(err error) string {
	msg := err.Error()
	prefix := usecase.ErrConflict.Error() + ": "
	if detail, ok := strings.CutPrefix(msg, prefix); ok && detail != "" {
		return detail
	}
	return "Conflict"
}

func currentActor(c fiber.Ctx) (user.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return user.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return actor, nil
}

func uuidParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", map[string]string{key: "must be a UUID"}, err)
	}
	return id, nil
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", map[string]string{key: "must be an integer"}, err)
	}
	return v, nil
}

// pageQuery reads page and limit the way the listing endpoint does.
func pageQuery(c fiber.Ctx) (jobsearch.Page, error) {
	page, err := parseQueryInt(c, jobsearch.ParamPage, 1)
	if err != nil {
		return jobsearch.Page{}, err
	}
	limit, err := parseQueryInt(c, jobsearch.ParamLimit, jobsearch.DefaultPageSize)
	if err != nil {
		return jobsearch.Page{}, err
	}
	return jobsearch.Page{Number: page, Size: limit}, nil
}
