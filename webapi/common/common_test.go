package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{user.ErrUserNotFound, fiber.StatusNotFound},
		{loan.ErrLoanNotFound, fiber.StatusNotFound},
		{loan.ErrAlreadyRepaid, fiber.StatusBadRequest},
		{loan.ErrSelfLoan, fiber.StatusBadRequest},
		{fmt.Errorf("select users: %w", domain.ErrStoreUnavailable), fiber.StatusInternalServerError},
		{fmt.Errorf("insert loans: %w", domain.ErrUpstream), fiber.StatusInternalServerError},
		{fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), fiber.StatusMethodNotAllowed},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorToStatusCode(tc.err))
		})
	}
}

func TestProblemDetailsJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/loan", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Repay failed", loan.ErrAlreadyRepaid)
	})
	app.Get("/override", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Teapot", errors.New("x"), "short and stout", fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/loan", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "Loan already repaid", pd.Detail)
	assert.Equal(t, "/loan", pd.Instance)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/override", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "short and stout", pd.Detail)
}

type bindInput struct {
	Email string `json:"email" validate:"required,email"`
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := BindAndValidate[bindInput](c)
		if in == nil {
			return err
		}
		return c.SendString(in.Email)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"email":"a@example.com"}`, fiber.StatusOK},
		{"malformed", `{"email":`, fiber.StatusBadRequest},
		{"invalid email", `{"email":"nope"}`, fiber.StatusBadRequest},
		{"missing", `{}`, fiber.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
