package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/services"
	"github.com/Dosada05/cue-league/storage"
)

type stubPlayerService struct {
	services.PlayerService
	list   func(availableOnly bool) ([]models.Player, error)
	create func(input services.CreatePlayerInput) (*models.Player, error)
	update func(id int, input services.UpdatePlayerInput) (*models.Player, error)
}

func (s *stubPlayerService) ListPlayers(_ context.Context, availableOnly bool) ([]models.Player, error) {
	return s.list(availableOnly)
}

func (s *stubPlayerService) CreatePlayer(_ context.Context, input services.CreatePlayerInput) (*models.Player, error) {
	return s.create(input)
}

func (s *stubPlayerService) UpdatePlayer(_ context.Context, id int, input services.UpdatePlayerInput) (*models.Player, error) {
	return s.update(id, input)
}

type stubRoundRobinService struct {
	services.RoundRobinService
	create  func(input services.CreateRoundRobinInput) (*models.RoundRobinDraw, error)
	get     func(id int) (*models.RoundRobinDraw, error)
	frames  func(id, groupIndex, matchIndex int, scores brackets.FrameScores) (*models.RoundRobinDraw, error)
	archive func(id int) (*storage.UploadResult, error)
}

func (s *stubRoundRobinService) Create(_ context.Context, input services.CreateRoundRobinInput) (*models.RoundRobinDraw, error) {
	return s.create(input)
}

func (s *stubRoundRobinService) Get(_ context.Context, id int) (*models.RoundRobinDraw, error) {
	return s.get(id)
}

func (s *stubRoundRobinService) SubmitFrames(_ context.Context, id, groupIndex, matchIndex int, scores brackets.FrameScores) (*models.RoundRobinDraw, error) {
	return s.frames(id, groupIndex, matchIndex, scores)
}

func (s *stubRoundRobinService) Archive(_ context.Context, id int) (*storage.UploadResult, error) {
	return s.archive(id)
}

type stubKnockoutService struct {
	services.KnockoutService
	latest  func() (*models.KnockoutDraw, error)
	advance func(id int, input services.AdvanceInput) (*models.KnockoutDraw, error)
}

func (s *stubKnockoutService) Latest(context.Context) (*models.KnockoutDraw, error) {
	return s.latest()
}

func (s *stubKnockoutService) Advance(_ context.Context, id int, input services.AdvanceInput) (*models.KnockoutDraw, error) {
	return s.advance(id, input)
}

// serve routes a single request through chi so URL params resolve like in production.
func serve(t *testing.T, method, pattern string, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestListPlayersAvailableFilter(t *testing.T) {
	var got bool
	h := NewPlayerHandler(&stubPlayerService{list: func(availableOnly bool) ([]models.Player, error) {
		got = availableOnly
		return []models.Player{{ID: 1, Name: "Ann", Available: true}}, nil
	}})

	rec := serve(t, http.MethodGet, "/players", h.ListPlayers, "/players?available=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got)
	assert.Len(t, decodeBody(t, rec)["players"], 1)

	rec = serve(t, http.MethodGet, "/players", h.ListPlayers, "/players?available=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePlayerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"created", `{"name":"Ann","handicap":2}`, nil, http.StatusCreated},
		{"name taken", `{"name":"Ann"}`, services.ErrPlayerNameConflict, http.StatusConflict},
		{"invalid handicap", `{"name":"Ann","handicap":40}`, fmt.Errorf("%w: handicap out of range", services.ErrValidationFailed), http.StatusBadRequest},
		{"unknown field", `{"name":"Ann","rating":3}`, nil, http.StatusBadRequest},
		{"two documents", `{"name":"Ann"}{"name":"Ben"}`, nil, http.StatusBadRequest},
		{"empty body", ``, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPlayerHandler(&stubPlayerService{create: func(input services.CreatePlayerInput) (*models.Player, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &models.Player{ID: 7, Name: input.Name, Handicap: input.Handicap}, nil
			}})

			rec := serve(t, http.MethodPost, "/players", h.CreatePlayer, "/players", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpdatePlayerRejectsBadID(t *testing.T) {
	h := NewPlayerHandler(&stubPlayerService{update: func(int, services.UpdatePlayerInput) (*models.Player, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}})

	for _, id := range []string{"abc", "0", "-4"} {
		rec := serve(t, http.MethodPut, "/players/{playerID}", h.UpdatePlayer, "/players/"+id, `{"handicap":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestUpdatePlayerNotFound(t *testing.T) {
	h := NewPlayerHandler(&stubPlayerService{update: func(id int, _ services.UpdatePlayerInput) (*models.Player, error) {
		return nil, fmt.Errorf("update player %d: %w", id, services.ErrPlayerNotFound)
	}})

	rec := serve(t, http.MethodPut, "/players/{playerID}", h.UpdatePlayer, "/players/9", `{"handicap":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoteFailureHidesStoreError(t *testing.T) {
	storeErr := errors.New("pq: connection refused to 10.0.0.5")
	h := NewRoundRobinHandler(&stubRoundRobinService{get: func(int) (*models.RoundRobinDraw, error) {
		return nil, fmt.Errorf("get draw: %w: %w", services.ErrRemoteFailure, storeErr)
	}})

	rec := serve(t, http.MethodGet, "/roundrobin/{drawID}", h.GetDraw, "/roundrobin/3", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, services.ErrRemoteFailure.Error(), decodeBody(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestCreateRoundRobinStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"missing name", brackets.ErrTournamentNameRequired, http.StatusBadRequest},
		{"group sizes", brackets.ErrGroupSizesMismatch, http.StatusBadRequest},
		{"limits too tight", brackets.ErrScheduleNotConverged, http.StatusUnprocessableEntity},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRoundRobinHandler(&stubRoundRobinService{create: func(input services.CreateRoundRobinInput) (*models.RoundRobinDraw, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &models.RoundRobinDraw{ID: 1, Name: input.Name, Start: input.Start}, nil
			}})

			body := `{"name":"Winter","start":"2026-01-06","players":["Ann","Ben"],"group_sizes":[2]}`
			rec := serve(t, http.MethodPost, "/roundrobin", h.CreateDraw, "/roundrobin", body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSubmitFramesPassesPathIndices(t *testing.T) {
	var gotID, gotGroup, gotMatch int
	var gotScores brackets.FrameScores
	h := NewRoundRobinHandler(&stubRoundRobinService{frames: func(id, groupIndex, matchIndex int, scores brackets.FrameScores) (*models.RoundRobinDraw, error) {
		gotID, gotGroup, gotMatch, gotScores = id, groupIndex, matchIndex, scores
		return &models.RoundRobinDraw{ID: id}, nil
	}})

	pattern := "/roundrobin/{drawID}/groups/{groupIndex}/matches/{matchIndex}/frames"
	body := `{"frame1":"45,60","frame2":"70,20","breaks1":"","breaks2":"32"}`
	rec := serve(t, http.MethodPost, pattern, h.SubmitFrames, "/roundrobin/4/groups/0/matches/2/frames", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, gotID)
	assert.Equal(t, 0, gotGroup)
	assert.Equal(t, 2, gotMatch)
	assert.Equal(t, "45,60", gotScores.Frames1)
	assert.Equal(t, "32", gotScores.Breaks2)

	rec = serve(t, http.MethodPost, pattern, h.SubmitFrames, "/roundrobin/4/groups/-1/matches/2/frames", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFramesDegradedDraw(t *testing.T) {
	h := NewRoundRobinHandler(&stubRoundRobinService{frames: func(int, int, int, brackets.FrameScores) (*models.RoundRobinDraw, error) {
		return nil, services.ErrDrawDegraded
	}})

	rec := serve(t, http.MethodPost, "/roundrobin/{drawID}/groups/{groupIndex}/matches/{matchIndex}/frames", h.SubmitFrames,
		"/roundrobin/4/groups/0/matches/0/frames", `{"frame1":"1","frame2":"2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestArchiveRoundRobin(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := NewRoundRobinHandler(&stubRoundRobinService{archive: func(int) (*storage.UploadResult, error) {
			return nil, services.ErrArchiveDisabled
		}})
		rec := serve(t, http.MethodPost, "/roundrobin/{drawID}/archive", h.ArchiveDraw, "/roundrobin/2/archive", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("uploaded", func(t *testing.T) {
		h := NewRoundRobinHandler(&stubRoundRobinService{archive: func(id int) (*storage.UploadResult, error) {
			key := storage.RoundRobinArchiveKey(id)
			return &storage.UploadResult{Key: key, Location: "https://cdn.league.example/" + key}, nil
		}})
		rec := serve(t, http.MethodPost, "/roundrobin/{drawID}/archive", h.ArchiveDraw, "/roundrobin/2/archive", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, storage.RoundRobinArchiveKey(2), decodeBody(t, rec)["key"])
	})
}

func TestKnockoutLatestAndAdvance(t *testing.T) {
	draw := &models.KnockoutDraw{ID: 5, DrawName: "Spring Cup", BestOf: []int{5, 7}}
	var gotInput services.AdvanceInput
	h := NewKnockoutHandler(&stubKnockoutService{
		latest: func() (*models.KnockoutDraw, error) { return draw, nil },
		advance: func(id int, input services.AdvanceInput) (*models.KnockoutDraw, error) {
			gotInput = input
			if input.Round > 1 {
				return nil, fmt.Errorf("advance: %w", brackets.ErrMatchOutOfRange)
			}
			return draw, nil
		},
	})

	rec := serve(t, http.MethodGet, "/knockout/latest", h.LatestDraw, "/knockout/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)["draw"].(map[string]interface{})
	assert.Equal(t, "Spring Cup", got["draw_name"])

	rec = serve(t, http.MethodPost, "/knockout/{drawID}/advance", h.AdvanceMatch, "/knockout/5/advance",
		`{"round":0,"match":1,"slot":1,"value":{"score":"3"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gotInput.Match)
	assert.Equal(t, models.SlotScore("3"), gotInput.Value.Score)

	rec = serve(t, http.MethodPost, "/knockout/{drawID}/advance", h.AdvanceMatch, "/knockout/5/advance",
		`{"round":4,"match":0,"slot":0,"value":{"score":"1"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKnockoutLatestNotFound(t *testing.T) {
	h := NewKnockoutHandler(&stubKnockoutService{latest: func() (*models.KnockoutDraw, error) {
		return nil, services.ErrDrawNotFound
	}})

	rec := serve(t, http.MethodGet, "/knockout/latest", h.LatestDraw, "/knockout/latest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthz(t *testing.T) {
	rec := serve(t, http.MethodGet, "/healthz", NewHealthHandler(stubPinger{}).Healthz, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, http.MethodGet, "/healthz", NewHealthHandler(stubPinger{err: errors.New("down")}).Healthz, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database unavailable", decodeBody(t, rec)["status"])
}

func TestServeWsRejectsUnknownRoom(t *testing.T) {
	h := NewWebSocketHandler(brackets.NewHub(nil), nil, nil)

	for _, room := range []string{"lobby", "knockout_0", "roundrobin_x", "knockout_12abc"} {
		rec := serve(t, http.MethodGet, "/ws/draws/{room}", h.ServeWs, "/ws/draws/"+room, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, room)
	}
}

func TestServeWsReceivesRoomBroadcasts(t *testing.T) {
	hub := brackets.NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	router := chi.NewRouter()
	router.Get("/ws/draws/{room}", NewWebSocketHandler(hub, []string{"*"}, nil).ServeWs)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/draws/" + brackets.KnockoutRoom(5)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize(brackets.KnockoutRoom(5)) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(brackets.KnockoutRoom(5), brackets.WebSocketMessage{Type: brackets.MessageDrawUpdated, RoomID: brackets.KnockoutRoom(5)})
	hub.BroadcastToRoom(brackets.KnockoutRoom(6), brackets.WebSocketMessage{Type: brackets.MessageDrawUpdated, RoomID: brackets.KnockoutRoom(6)})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg brackets.WebSocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, brackets.MessageDrawUpdated, msg.Type)
	assert.Equal(t, "knockout_5", msg.RoomID)
}
