package user_test

import (
	"testing"

	"github.com/amirasaad/finhub/webapi/common"
	"github.com/amirasaad/finhub/webapi/testutils"
	userweb "github.com/amirasaad/finhub/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	testutils.WebTestSuite
}

func TestUserSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) TestCreateUser_IsIdempotent() {
	body := `{"clerk_user_id":"user_2abc","email":"ada@example.com","name":"Ada"}`

	resp := s.MakeRequest(fiber.MethodPost, "/api/users", body, "")
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	first := testutils.DecodeJSON[userweb.Response](&s.WebTestSuite, resp)
	s.Equal("user_2abc", first.ClerkUserID)
	s.Equal("Ada", first.Name)

	resp = s.MakeRequest(fiber.MethodPost, "/api/users", body, "")
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	second := testutils.DecodeJSON[userweb.Response](&s.WebTestSuite, resp)
	s.Equal(first.ID, second.ID)

	users, err := s.App.UserService.List(s.T().Context())
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *UserTestSuite) TestCreateUser_Validation() {
	tests := []struct {
		name string
		body string
	}{
		{"missing clerk id", `{"email":"ada@example.com"}`},
		{"bad email", `{"clerk_user_id":"user_1","email":"ada"}`},
		{"malformed", `{"clerk_user_id":`},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			resp := s.MakeRequest(fiber.MethodPost, "/api/users", tc.body, "")
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func (s *UserTestSuite) TestGetUser_ByEitherAlias() {
	u := s.SeedUser("user_grace", "grace@example.com")

	for _, alias := range []string{"user_grace", "grace@example.com"} {
		resp := s.MakeRequest(fiber.MethodGet, "/api/users/"+alias, "", "")
		s.Equal(fiber.StatusOK, resp.StatusCode)
		got := testutils.DecodeJSON[userweb.Response](&s.WebTestSuite, resp)
		s.Equal(u.ID.String(), got.ID)
	}
}

func (s *UserTestSuite) TestGetUser_Unknown() {
	resp := s.MakeRequest(fiber.MethodGet, "/api/users/nobody", "", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	pd := testutils.DecodeJSON[common.ProblemDetails](&s.WebTestSuite, resp)
	s.Equal("User not found", pd.Detail)
}

func (s *UserTestSuite) TestListUsers() {
	s.SeedUser("user_a", "a@example.com")
	s.SeedUser("user_b", "b@example.com")

	resp := s.MakeRequest(fiber.MethodGet, "/api/users", "", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(testutils.DecodeJSON[[]userweb.Response](&s.WebTestSuite, resp), 2)
}
