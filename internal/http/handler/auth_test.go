package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmapi/internal/model"
	"crmapi/internal/service"
	serviceMocks "crmapi/internal/service/mocks"
)

func TestRequireAuth(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Get("/private", RequireAuth(mockSvc), func(c *fiber.Ctx) error {
		return c.SendString(currentUser(c).Username)
	})

	t.Run("missing header", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Basic YWRtaW46cGFzcw==")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockSvc.On("Authenticate", mock.Anything, "expired").Return(nil, service.ErrInvalidToken).Once()

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer expired")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Error.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		mockSvc.On("Authenticate", mock.Anything, "good").Return(&model.User{ID: 1, Username: "admin"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(fiber.HeaderAuthorization, "bearer good")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/register", Register(mockSvc))

	in := service.RegisterInput{FirstName: "Ada", LastName: "Lovelace", Username: "ada", Password: "s3cret-pass"}

	t.Run("success", func(t *testing.T) {
		res := &service.AuthResult{User: &model.User{ID: 1, Username: "ada"}, Access: "a", Refresh: "r"}
		mockSvc.On("Register", mock.Anything, in).Return(res, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", in))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "a", got["access"])
		assert.Equal(t, "r", got["refresh"])
		assert.NotContains(t, got["user"], "password_hash")
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, in).Return(nil, service.ErrConflict).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", in))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", `{"username":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/login", Login(mockSvc))

	in := service.LoginInput{Username: "ada", Password: "wrong"}
	mockSvc.On("Login", mock.Anything, in).Return(nil, service.ErrInvalidCredentials).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", in))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestRefresh(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/refresh", Refresh(mockSvc))

	in := service.RefreshInput{Refresh: "r"}
	mockSvc.On("Refresh", mock.Anything, in).Return(&service.RefreshResult{Access: "new"}, nil).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPost, "/refresh", in))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got service.RefreshResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "new", got.Access)
	mockSvc.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	user := &model.User{ID: 7, Username: "ada"}
	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		c.Locals(UserLocalKey, user)
		return c.Next()
	}, Logout(mockSvc))

	t.Run("revokes", func(t *testing.T) {
		mockSvc.On("Logout", mock.Anything, user, service.RefreshInput{Refresh: "r"}).Return(nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/logout", service.RefreshInput{Refresh: "r"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("foreign token", func(t *testing.T) {
		mockSvc.On("Logout", mock.Anything, user, service.RefreshInput{Refresh: "other"}).Return(service.ErrInvalidToken).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/logout", service.RefreshInput{Refresh: "other"}))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}
