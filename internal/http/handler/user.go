package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"edusync/internal/service"
)

// loginInput is the login request body. The passwordHash field name is kept
// for wire compatibility with existing clients, but it carries the raw secret;
// verification happens server-side against the stored bcrypt hash.
type loginInput struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Login handles POST /api/UserModels/login. Unknown email and wrong secret are
// both 401 and indistinguishable; the response never carries the stored hash.
func Login(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in loginInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		user, err := svc.Login(c.UserContext(), in.Email, in.PasswordHash)
		if err != nil {
			if errors.Is(err, service.ErrCredentialsRequired) {
				return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "email and password are required")
			}
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(user)
	}
}
