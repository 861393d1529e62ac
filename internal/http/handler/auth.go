package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/model"
	"crmapi/internal/service"
)

// UserLocalKey is the Fiber locals key holding the authenticated *model.User.
const UserLocalKey = "user"

// RequireAuth rejects requests without a valid bearer access token and stores the
// resolved user under UserLocalKey.
func RequireAuth(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication credentials were not provided")
		}

		user, err := svc.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

// Register creates an account and returns it with a token pair.
//
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "Account"
// @Success 201 {object} service.AuthResult
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		res, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Login exchanges credentials for a token pair.
//
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "Credentials"
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		res, err := svc.Login(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Refresh issues a new access token from a refresh token.
//
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RefreshInput true "Refresh token"
// @Success 200 {object} service.RefreshResult
// @Failure 401 {object} errorPayload
// @Router /api/auth/refresh [post]
func Refresh(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RefreshInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		res, err := svc.Refresh(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Logout revokes the caller's refresh token.
//
// @Summary Logout
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.RefreshInput true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errorPayload
// @Router /api/auth/logout [post]
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RefreshInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		if err := svc.Logout(c.UserContext(), currentUser(c), in); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "logged out"})
	}
}

// Me returns the authenticated user.
//
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errorPayload
// @Router /api/auth/me [get]
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(currentUser(c))
	}
}
