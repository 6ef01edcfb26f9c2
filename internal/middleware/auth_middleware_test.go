package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glamstore/internal/model"
	"glamstore/internal/service"
	"glamstore/pkg/jwt"
)

type stubAuth struct {
	service.AuthService
	principals map[string]*service.Principal
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*service.Principal, error) {
	if p, ok := s.principals[token]; ok {
		return p, nil
	}
	return nil, jwt.ErrInvalidToken
}

func TestRequireAuthAndAdmin(t *testing.T) {
	auth := stubAuth{principals: map[string]*service.Principal{
		"admin-token":    {ID: "a1", Role: model.RoleAdmin},
		"customer-token": {ID: "c1", Role: model.RoleCustomer},
	}}

	app := fiber.New()
	app.Get("/me", RequireAuth(auth), func(c *fiber.Ctx) error {
		return c.SendString(CurrentPrincipal(c).ID)
	})
	app.Get("/admin", RequireAuth(auth), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(204)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing token", "/me", "", 401},
		{"malformed header", "/me", "Token abc", 401},
		{"unknown token", "/me", "Bearer nope", 401},
		{"bearer token", "/me", "Bearer customer-token", 200},
		{"query token", "/me?token=customer-token", "", 200},
		{"customer on admin route", "/admin", "Bearer customer-token", 403},
		{"admin on admin route", "/admin", "Bearer admin-token", 204},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

type failingAuth struct {
	service.AuthService
	err error
}

func (f failingAuth) Authenticate(context.Context, string) (*service.Principal, error) {
	return nil, f.err
}

func TestRequireAuthStoreFailureIsLogged(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	app := fiber.New()
	app.Use(RequestLogger(log))
	app.Get("/me", RequireAuth(failingAuth{err: errors.New("mongo: connection refused")}), func(c *fiber.Ctx) error {
		return c.SendStatus(204)
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "request failed", entry.Message)
	logged, ok := entry.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	assert.EqualError(t, logged, "mongo: connection refused")
}

func TestRequestLoggerOmitsErrorOnSuccess(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	app := fiber.New()
	app.Use(RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(204) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request served", entry.Message)
	assert.NotContains(t, entry.Data, logrus.ErrorKey)
}
