// Package testutils builds the HTTP app over the in-memory store and the
// memory event bus for handler tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	infraeventbus "github.com/amirasaad/finhub/infra/eventbus"
	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/pkg/app"
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/domain/account"
	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/amirasaad/finhub/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// WebTestSuite runs handler tests against a fresh in-memory app per test.
type WebTestSuite struct {
	suite.Suite
	App    *app.App
	Fiber  *fiber.App
	Store  *memory.Store
	Config *config.App
}

// TestConfig disables the scheduler and rate limiting.
func TestConfig() *config.App {
	return &config.App{
		Auth:      &config.Auth{Jwt: &config.Jwt{AdminRole: "admin"}},
		Scheduler: &config.Scheduler{Enabled: false},
		Cors:      &config.Cors{AllowOrigins: "http://localhost:3000"},
	}
}

func (s *WebTestSuite) SetupTest() {
	if s.Config == nil {
		s.Config = TestConfig()
	}
	s.Store = memory.New()
	a, err := app.New(&app.Deps{
		Repos:    s.Store,
		EventBus: infraeventbus.NewWithMemoryAsync(slog.Default(), 64, 2),
		Logger:   slog.Default(),
	}, s.Config)
	s.Require().NoError(err)
	s.App = a
	s.Fiber = webapi.SetupApp(a)
}

func (s *WebTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.App.Shutdown(ctx)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *WebTestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return MakeRequest(s.Fiber, method, path, body, token)
}

// DecodeJSON reads the response body into a value of type T.
func DecodeJSON[T any](s *WebTestSuite, resp *http.Response) T {
	var out T
	defer resp.Body.Close() //nolint: errcheck
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// SeedUser stores a user directly.
func (s *WebTestSuite) SeedUser(clerkID, email string) *user.User {
	u, err := user.New(clerkID, email, clerkID)
	s.Require().NoError(err)
	s.Require().NoError(s.Store.UserRepository().Create(context.Background(), u))
	return u
}

// SeedAccount stores an account with the given balance.
func (s *WebTestSuite) SeedAccount(userID uuid.UUID, balance string, isDefault bool) *account.Account {
	a := account.NewDefault(userID)
	a.IsDefault = isDefault
	a.Balance = decimal.RequireFromString(balance)
	if !isDefault {
		a.Name = "Savings"
		a.Kind = account.KindSavings
	}
	s.Require().NoError(s.Store.AccountRepository().Create(context.Background(), a))
	return a
}

// MakeRequest sends a request through app.Test. A non-empty body is sent
// as JSON and a non-empty token as a bearer token.
func MakeRequest(app *fiber.App, method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}
