package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"miniblog/auth"
	"miniblog/domain"
	"miniblog/store"
)

const testSecret = "handler-test-secret"

type testServer struct {
	e *echo.Echo
	h *Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	posts := store.NewPostStore()
	store.SeedPosts(posts)

	h := &Handler{
		Users:     store.NewUserStore(),
		Posts:     posts,
		Passwords: auth.NewPasswordHasher(bcrypt.MinCost),
		Tokens:    tokens,
		Logger:    zap.NewNop(),
	}
	e := echo.New()
	h.Routes(e)
	return &testServer{e: e, h: h}
}

// do sends body as JSON when it is not nil. token, when set, goes into a
// bearer Authorization header.
func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorResponse](t, rec).Error
}

// register creates a user through the API and returns its token and record.
func (s *testServer) register(t *testing.T, username, email, password string) (string, domain.PublicUser) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[authResponse](t, rec)
	return resp.Token, resp.User
}
