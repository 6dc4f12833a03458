package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/repositories"
	"github.com/Dosada05/cue-league/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedRand() RandSource {
	return func() *rand.Rand { return rand.New(rand.NewSource(42)) }
}

type fakePlayerRepo struct {
	mu        sync.Mutex
	players   []models.Player
	err       error
	updateErr map[string]error
}

func newFakePlayerRepo(players ...models.Player) *fakePlayerRepo {
	for i := range players {
		if players[i].ID == 0 {
			players[i].ID = i + 1
		}
	}
	return &fakePlayerRepo{players: players, updateErr: map[string]error{}}
}

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, p := range r.players {
		if p.Name == player.Name {
			return repositories.ErrPlayerNameConflict
		}
	}
	player.ID = len(r.players) + 1
	player.CreatedAt = time.Now()
	r.players = append(r.players, *player)
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.players {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) GetByName(ctx context.Context, name string) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(ctx context.Context, availableOnly bool) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		if availableOnly && !p.Available {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i, p := range r.players {
		if p.ID == player.ID {
			r.players[i] = *player
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) UpdateLeagueHandicap(ctx context.Context, exec repositories.SQLExecutor, name string, handicap int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErr[name]; err != nil {
		return err
	}
	for i, p := range r.players {
		if p.Name == name {
			r.players[i].LeagueHandicap = handicap
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) byName(name string) models.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Name == name {
			return p
		}
	}
	return models.Player{}
}

type fakeRoundRobinRepo struct {
	records map[int]*repositories.RoundRobinRecord
	nextID  int
	err     error
}

func newFakeRoundRobinRepo() *fakeRoundRobinRepo {
	return &fakeRoundRobinRepo{records: map[int]*repositories.RoundRobinRecord{}, nextID: 1}
}

func (r *fakeRoundRobinRepo) Create(ctx context.Context, record *repositories.RoundRobinRecord) error {
	if r.err != nil {
		return r.err
	}
	record.ID = r.nextID
	record.CreatedAt = time.Now()
	r.nextID++
	stored := *record
	r.records[record.ID] = &stored
	return nil
}

func (r *fakeRoundRobinRepo) GetByID(ctx context.Context, id int) (*repositories.RoundRobinRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrRoundRobinDrawNotFound
	}
	out := *rec
	return &out, nil
}

func (r *fakeRoundRobinRepo) List(ctx context.Context) ([]models.DrawSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.DrawSummary, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, models.DrawSummary{ID: rec.ID, Name: rec.Name, Start: rec.Start, CreatedAt: rec.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start > out[j].Start })
	return out, nil
}

func (r *fakeRoundRobinRepo) UpdateRoundRobin(ctx context.Context, id int, groups json.RawMessage) error {
	if r.err != nil {
		return r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return repositories.ErrRoundRobinDrawNotFound
	}
	rec.RoundRobin = groups
	return nil
}

func (r *fakeRoundRobinRepo) UpdateKnockout(ctx context.Context, id int, knockout json.RawMessage) error {
	if r.err != nil {
		return r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return repositories.ErrRoundRobinDrawNotFound
	}
	rec.Knockout = knockout
	return nil
}

type fakeKnockoutRepo struct {
	records map[int]*repositories.KnockoutRecord
	nextID  int
	err     error
}

func newFakeKnockoutRepo() *fakeKnockoutRepo {
	return &fakeKnockoutRepo{records: map[int]*repositories.KnockoutRecord{}, nextID: 1}
}

func (r *fakeKnockoutRepo) Create(ctx context.Context, record *repositories.KnockoutRecord) error {
	if r.err != nil {
		return r.err
	}
	record.ID = r.nextID
	record.CreatedAt = time.Now()
	r.nextID++
	stored := *record
	r.records[record.ID] = &stored
	return nil
}

func (r *fakeKnockoutRepo) GetByID(ctx context.Context, id int) (*repositories.KnockoutRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrKnockoutDrawNotFound
	}
	out := *rec
	return &out, nil
}

func (r *fakeKnockoutRepo) Latest(ctx context.Context) (*repositories.KnockoutRecord, error) {
	if r.nextID == 1 {
		return nil, repositories.ErrKnockoutDrawNotFound
	}
	return r.GetByID(ctx, r.nextID-1)
}

func (r *fakeKnockoutRepo) List(ctx context.Context) ([]models.DrawSummary, error) {
	out := make([]models.DrawSummary, 0, len(r.records))
	for id := r.nextID - 1; id >= 1; id-- {
		if rec, ok := r.records[id]; ok {
			out = append(out, models.DrawSummary{ID: rec.ID, Name: rec.DrawName, CreatedAt: rec.CreatedAt})
		}
	}
	return out, nil
}

func (r *fakeKnockoutRepo) UpdateDraw(ctx context.Context, id int, draw json.RawMessage) error {
	if r.err != nil {
		return r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return repositories.ErrKnockoutDrawNotFound
	}
	rec.Draw = draw
	return nil
}

type fakeMatchRepo struct {
	records []models.MatchRecord
	err     error
}

func (r *fakeMatchRepo) ReplaceForDraw(ctx context.Context, drawID int, records []models.MatchRecord) error {
	if r.err != nil {
		return r.err
	}
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.DrawID != drawID {
			kept = append(kept, rec)
		}
	}
	r.records = append(kept, records...)
	return nil
}

func (r *fakeMatchRepo) List(ctx context.Context) ([]models.MatchRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.records, nil
}

type recordingHub struct {
	mu       sync.Mutex
	messages map[string][]brackets.WebSocketMessage
}

func newRecordingHub() *recordingHub {
	return &recordingHub{messages: map[string][]brackets.WebSocketMessage{}}
}

func (h *recordingHub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[roomID] = append(h.messages[roomID], message.(brackets.WebSocketMessage))
}

type fakeArchiver struct {
	keys []string
	err  error
}

func (a *fakeArchiver) ArchiveKnockout(ctx context.Context, draw *models.KnockoutDraw) (*storage.UploadResult, error) {
	return a.put(storage.KnockoutArchiveKey(draw.ID))
}

func (a *fakeArchiver) ArchiveRoundRobin(ctx context.Context, draw *models.RoundRobinDraw) (*storage.UploadResult, error) {
	return a.put(storage.RoundRobinArchiveKey(draw.ID))
}

func (a *fakeArchiver) put(key string) (*storage.UploadResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.keys = append(a.keys, key)
	return &storage.UploadResult{Key: key}, nil
}

func leaguePlayers() []models.Player {
	return []models.Player{
		{Name: "Ann", Handicap: 2, LeagueHandicap: 5, Available: true},
		{Name: "Ben", Handicap: -1, LeagueHandicap: -3, Available: true},
		{Name: "Cat", Handicap: 0, LeagueHandicap: 0, Available: true},
		{Name: "Dan", Handicap: 7, LeagueHandicap: 6, Available: true},
		{Name: "Eve", Handicap: 4, LeagueHandicap: 4, Available: false},
	}
}
