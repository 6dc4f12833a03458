package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/handlers"
	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/services"
)

var secret = []byte("league-secret")

type knockoutStub struct {
	services.KnockoutService
	created int
}

func (s *knockoutStub) Latest(context.Context) (*models.KnockoutDraw, error) {
	return &models.KnockoutDraw{ID: 1, DrawName: "Spring Cup"}, nil
}

func (s *knockoutStub) Create(_ context.Context, input services.CreateKnockoutInput) (*models.KnockoutDraw, error) {
	s.created++
	return &models.KnockoutDraw{ID: 2, DrawName: input.Name}, nil
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newRouter(ko *knockoutStub) http.Handler {
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Players:    handlers.NewPlayerHandler(nil),
		RoundRobin: handlers.NewRoundRobinHandler(nil),
		Knockout:   handlers.NewKnockoutHandler(ko),
		WebSocket:  handlers.NewWebSocketHandler(brackets.NewHub(nil), nil, nil),
		Health:     handlers.NewHealthHandler(okPinger{}),
	}, Options{JWTSecret: secret, AllowedOrigins: []string{"*"}, RequestTimeout: time.Second})
	return router
}

func bearer(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "organiser-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestReadRoutesArePublic(t *testing.T) {
	router := newRouter(&knockoutStub{})

	for _, path := range []string{"/healthz", "/api/v1/knockout/latest"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestWriteRoutesRequireToken(t *testing.T) {
	ko := &knockoutStub{}
	router := newRouter(ko)
	body := `{"draw_name":"Spring Cup","players":["Ann","Ben"]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/knockout", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, ko.created)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/knockout", strings.NewReader(body))
	req.Header.Set("Authorization", bearer(t))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, ko.created)
}

func TestProtectedRoundRobinRoutes(t *testing.T) {
	router := newRouter(&knockoutStub{})

	paths := []string{
		"/api/v1/roundrobin",
		"/api/v1/roundrobin/1/groups/0/matches/0/frames",
		"/api/v1/roundrobin/1/knockout",
		"/api/v1/roundrobin/1/knockout/advance",
		"/api/v1/roundrobin/1/archive",
		"/api/v1/players",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
