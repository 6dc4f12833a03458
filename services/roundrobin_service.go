package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/repositories"
	"github.com/Dosada05/cue-league/standings"
	"github.com/Dosada05/cue-league/storage"
)

// handicapUpdateConcurrency bounds parallel handicap_round writes.
const handicapUpdateConcurrency = 4

type RoundRobinService interface {
	Preview(ctx context.Context, input CreateRoundRobinInput) (*models.RoundRobinDraw, error)
	Create(ctx context.Context, input CreateRoundRobinInput) (*models.RoundRobinDraw, error)
	List(ctx context.Context) ([]models.DrawSummary, error)
	Get(ctx context.Context, id int) (*models.RoundRobinDraw, error)
	Standings(ctx context.Context, id int) ([]models.GroupStandings, error)
	SubmitFrames(ctx context.Context, id, groupIndex, matchIndex int, scores brackets.FrameScores) (*models.RoundRobinDraw, error)
	GenerateKnockout(ctx context.Context, id, topN int) (*models.RoundRobinDraw, error)
	AdvanceKnockout(ctx context.Context, id int, input AdvanceInput) (*models.RoundRobinDraw, error)
	Archive(ctx context.Context, id int) (*storage.UploadResult, error)
}

type CreateRoundRobinInput struct {
	Name  string `json:"name"`
	Start string `json:"start"` // YYYY-MM-DD
	// Player names; empty selects every available player.
	Players    []string `json:"players"`
	GroupSizes []int    `json:"group_sizes"`
}

// AdvanceInput addresses one slot of a knockout bracket by zero-based indices.
type AdvanceInput struct {
	Round int         `json:"round"`
	Match int         `json:"match"`
	Slot  int         `json:"slot"`
	Value models.Slot `json:"value"`
}

type ScheduleLimits struct {
	MaxMatchesPerDate          int
	MaxMatchesPerPlayerPerDate int
}

// DrawArchiver stores JSON snapshots of draws outside the database.
type DrawArchiver interface {
	ArchiveKnockout(ctx context.Context, draw *models.KnockoutDraw) (*storage.UploadResult, error)
	ArchiveRoundRobin(ctx context.Context, draw *models.RoundRobinDraw) (*storage.UploadResult, error)
}

type roundRobinService struct {
	drawRepo   repositories.RoundRobinRepository
	playerRepo repositories.PlayerRepository
	hub        brackets.Broadcaster
	archiver   DrawArchiver
	limits     ScheduleLimits
	rand       RandSource
	logger     *slog.Logger
}

func NewRoundRobinService(
	drawRepo repositories.RoundRobinRepository,
	playerRepo repositories.PlayerRepository,
	hub brackets.Broadcaster,
	archiver DrawArchiver,
	limits ScheduleLimits,
	rand RandSource,
	logger *slog.Logger,
) RoundRobinService {
	return &roundRobinService{
		drawRepo:   drawRepo,
		playerRepo: playerRepo,
		hub:        hub,
		archiver:   archiver,
		limits:     limits,
		rand:       rand,
		logger:     logger,
	}
}

func (s *roundRobinService) Preview(ctx context.Context, input CreateRoundRobinInput) (*models.RoundRobinDraw, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, brackets.ErrTournamentNameRequired
	}
	start, err := time.Parse(brackets.DateLayout, strings.TrimSpace(input.Start))
	if err != nil {
		return nil, validationError("start must be a YYYY-MM-DD date, got %q", input.Start)
	}

	roster, err := resolveRoster(ctx, s.playerRepo, input.Players)
	if err != nil {
		return nil, err
	}
	if len(roster) < 2 {
		return nil, fmt.Errorf("%w: a round robin needs at least 2 players, got %d", brackets.ErrNotEnoughPlayers, len(roster))
	}
	// round-robin draws use the league handicap carried from earlier draws
	for i := range roster {
		roster[i].Handicap = roster[i].LeagueHandicap
	}

	sizes := input.GroupSizes
	if len(sizes) == 0 {
		sizes = []int{len(roster)}
	}
	groups, err := brackets.GenerateRoundRobin(roster, sizes, s.rand.next())
	if err != nil {
		return nil, err
	}
	groups, err = brackets.AssignDates(groups, start, s.limits.MaxMatchesPerDate, s.limits.MaxMatchesPerPlayerPerDate)
	if err != nil {
		return nil, err
	}

	return &models.RoundRobinDraw{
		Name:       name,
		Start:      start.Format(brackets.DateLayout),
		RoundRobin: groups,
		Knockout:   models.Bracket{},
	}, nil
}

func (s *roundRobinService) Create(ctx context.Context, input CreateRoundRobinInput) (*models.RoundRobinDraw, error) {
	draw, err := s.Preview(ctx, input)
	if err != nil {
		return nil, err
	}
	groups, err := encodeBlob(draw.RoundRobin)
	if err != nil {
		return nil, err
	}
	knockout, err := encodeBlob(draw.Knockout)
	if err != nil {
		return nil, err
	}

	record := &repositories.RoundRobinRecord{Name: draw.Name, Start: draw.Start, RoundRobin: groups, Knockout: knockout}
	if err := s.drawRepo.Create(ctx, record); err != nil {
		return nil, handleRepositoryError(err, "save round robin draw")
	}
	draw.ID = record.ID
	draw.CreatedAt = record.CreatedAt

	s.logger.InfoContext(ctx, "Round robin draw created",
		slog.Int("draw_id", draw.ID),
		slog.String("name", draw.Name),
		slog.Int("groups", len(draw.RoundRobin)))
	return draw, nil
}

func (s *roundRobinService) List(ctx context.Context) ([]models.DrawSummary, error) {
	draws, err := s.drawRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list round robin draws")
	}
	return draws, nil
}

func (s *roundRobinService) Get(ctx context.Context, id int) (*models.RoundRobinDraw, error) {
	rec, err := s.drawRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "load round robin draw")
	}
	return s.decode(ctx, rec), nil
}

// decode turns a stored row into a draw. A blob that fails validation is replaced by an empty view.
func (s *roundRobinService) decode(ctx context.Context, rec *repositories.RoundRobinRecord) *models.RoundRobinDraw {
	draw := &models.RoundRobinDraw{ID: rec.ID, Name: rec.Name, Start: rec.Start, CreatedAt: rec.CreatedAt}

	groups, err := models.DecodeGroups(rec.RoundRobin)
	if err != nil {
		s.logger.WarnContext(ctx, "Round robin groups are malformed", slog.Int("draw_id", rec.ID), slog.Any("error", err))
		groups = []models.Group{}
		draw.Degraded = true
	}
	knockout, err := models.DecodeBracket(rec.Knockout)
	if err != nil {
		s.logger.WarnContext(ctx, "Round robin knockout is malformed", slog.Int("draw_id", rec.ID), slog.Any("error", err))
		knockout = models.Bracket{}
		draw.Degraded = true
	}
	draw.RoundRobin = groups
	draw.Knockout = knockout
	return draw
}

func (s *roundRobinService) loadWritable(ctx context.Context, id int) (*models.RoundRobinDraw, error) {
	draw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draw.Degraded {
		return nil, ErrDrawDegraded
	}
	return draw, nil
}

func (s *roundRobinService) Standings(ctx context.Context, id int) ([]models.GroupStandings, error) {
	draw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return standings.ForGroups(draw.RoundRobin), nil
}

func (s *roundRobinService) SubmitFrames(ctx context.Context, id, groupIndex, matchIndex int, scores brackets.FrameScores) (*models.RoundRobinDraw, error) {
	draw, err := s.loadWritable(ctx, id)
	if err != nil {
		return nil, err
	}
	groups, err := brackets.SubmitFrameScores(draw.RoundRobin, groupIndex, matchIndex, scores)
	if err != nil {
		return nil, err
	}
	raw, err := encodeBlob(groups)
	if err != nil {
		return nil, err
	}
	if err := s.drawRepo.UpdateRoundRobin(ctx, id, raw); err != nil {
		return nil, handleRepositoryError(err, "save frame scores")
	}
	draw.RoundRobin = groups

	broadcast(s.hub, brackets.RoundRobinRoom(id), draw)
	return draw, nil
}

// GenerateKnockout seeds a knockout from the current group standings, stores it on the draw and
// carries every player's latest handicap into handicap_round for the next draw.
func (s *roundRobinService) GenerateKnockout(ctx context.Context, id, topN int) (*models.RoundRobinDraw, error) {
	draw, err := s.loadWritable(ctx, id)
	if err != nil {
		return nil, err
	}

	tables := standings.ForGroups(draw.RoundRobin)
	perGroup := make([][]models.Standing, len(tables))
	for i, t := range tables {
		perGroup[i] = t.Standings
	}

	generator, err := brackets.NewGenerator(brackets.GroupKnockoutName)
	if err != nil {
		return nil, err
	}
	knockout, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentName: draw.Name,
		GroupStandings: perGroup,
		TopN:           topN,
	})
	if err != nil {
		return nil, err
	}
	knockout = brackets.ResolveByes(knockout)

	raw, err := encodeBlob(knockout)
	if err != nil {
		return nil, err
	}
	if err := s.drawRepo.UpdateKnockout(ctx, id, raw); err != nil {
		return nil, handleRepositoryError(err, "save knockout")
	}
	draw.Knockout = knockout

	s.propagateHandicaps(ctx, id, standings.LatestHandicaps(draw.RoundRobin))
	broadcast(s.hub, brackets.RoundRobinRoom(id), draw)
	return draw, nil
}

// propagateHandicaps writes handicap_round for every player. Failures are logged and do not
// undo the stored knockout; some players may keep their old value.
func (s *roundRobinService) propagateHandicaps(ctx context.Context, drawID int, handicaps map[string]int) {
	// writes are independent, one failure does not cancel the rest
	var g errgroup.Group
	g.SetLimit(handicapUpdateConcurrency)
	for name, h := range handicaps {
		name, h := name, h
		g.Go(func() error {
			if err := s.playerRepo.UpdateLeagueHandicap(ctx, nil, name, h); err != nil {
				s.logger.WarnContext(ctx, "Failed to update league handicap",
					slog.Int("draw_id", drawID),
					slog.String("player", name),
					slog.Any("error", err))
				if errors.Is(err, repositories.ErrPlayerNotFound) {
					return nil
				}
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "League handicap propagation incomplete", slog.Int("draw_id", drawID), slog.Any("error", err))
	}
}

func (s *roundRobinService) AdvanceKnockout(ctx context.Context, id int, input AdvanceInput) (*models.RoundRobinDraw, error) {
	draw, err := s.loadWritable(ctx, id)
	if err != nil {
		return nil, err
	}
	knockout, err := brackets.AdvanceMatch(draw.Knockout, input.Round, input.Match, input.Slot, input.Value)
	if err != nil {
		return nil, err
	}
	raw, err := encodeBlob(knockout)
	if err != nil {
		return nil, err
	}
	if err := s.drawRepo.UpdateKnockout(ctx, id, raw); err != nil {
		return nil, handleRepositoryError(err, "save knockout")
	}
	draw.Knockout = knockout

	broadcast(s.hub, brackets.RoundRobinRoom(id), draw)
	return draw, nil
}

func (s *roundRobinService) Archive(ctx context.Context, id int) (*storage.UploadResult, error) {
	if s.archiver == nil {
		return nil, ErrArchiveDisabled
	}
	draw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.archiver.ArchiveRoundRobin(ctx, draw)
	if err != nil {
		return nil, handleRepositoryError(err, "archive round robin draw")
	}
	s.logger.InfoContext(ctx, "Round robin draw archived", slog.Int("draw_id", id), slog.String("key", res.Key))
	return res, nil
}
