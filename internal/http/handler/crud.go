package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"edusync/internal/model"
	"edusync/internal/repository"
)

// Generic CRUD handlers instantiated once per entity. Every operation is a
// direct mapping from an HTTP verb to one repository call; no business logic
// lives here beyond id validation and status mapping.

// ListEntities returns all records. An instructorId query parameter, when
// present, is validated and passed down as a filter; repositories without a
// filter column ignore it.
func ListEntities[T model.Entity](repo repository.Crud[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f repository.ListFilter
		if v := c.Query("instructorId"); v != "" {
			if _, err := uuid.Parse(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid instructorId format")
			}
			f.InstructorID = v
		}

		items, err := repo.List(c.UserContext(), f)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// GetEntity returns a single record by id, or 404.
func GetEntity[T model.Entity](repo repository.Crud[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		e, err := repo.FindByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(e)
	}
}

// CreateEntity inserts a record with its client-supplied id and answers 201
// with a Location header pointing at the GET-by-id route, or 409 when the id
// already exists. prepare, when non-nil, runs on the parsed body before the
// insert (users hash their secret there).
func CreateEntity[T model.Entity](routeName string, repo repository.Crud[T], prepare func(*T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var e T
		if err := c.BodyParser(&e); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if _, err := uuid.Parse(e.EntityID()); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if prepare != nil {
			if err := prepare(&e); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", err.Error())
			}
		}

		created, err := repo.Create(c.UserContext(), &e)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return writeError(c, fiber.StatusConflict, "CONFLICT", "a record with this id already exists")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/%s/%s", routeName, (*created).EntityID()))
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateEntity overwrites a record. The body id must match the path id (400
// otherwise, nothing mutated); a missing record answers 404; success is 204.
func UpdateEntity[T model.Entity](repo repository.Crud[T], prepare func(*T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var e T
		if err := c.BodyParser(&e); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if e.EntityID() != id {
			return writeError(c, fiber.StatusBadRequest, "ID_MISMATCH", "body id does not match path id")
		}
		if prepare != nil {
			if err := prepare(&e); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", err.Error())
			}
		}

		if err := repo.Update(c.UserContext(), &e); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteEntity removes a record by id; 404 when absent, 204 on success.
func DeleteEntity[T model.Entity](repo repository.Crud[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := repo.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
