package services

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/repositories"
	"github.com/Dosada05/cue-league/storage"
)

type KnockoutService interface {
	Preview(ctx context.Context, input CreateKnockoutInput) (*models.KnockoutDraw, error)
	Create(ctx context.Context, input CreateKnockoutInput) (*models.KnockoutDraw, error)
	List(ctx context.Context) ([]models.DrawSummary, error)
	Latest(ctx context.Context) (*models.KnockoutDraw, error)
	Get(ctx context.Context, id int) (*models.KnockoutDraw, error)
	Advance(ctx context.Context, id int, input AdvanceInput) (*models.KnockoutDraw, error)
	RecordResults(ctx context.Context, id int) ([]models.MatchRecord, error)
	Archive(ctx context.Context, id int) (*storage.UploadResult, error)
}

type CreateKnockoutInput struct {
	Name string `json:"draw_name"`
	// Player names; empty selects every available player.
	Players []string `json:"players"`
	// Frames per match for each round, first round first.
	BestOf []int `json:"best_of"`
}

type knockoutService struct {
	drawRepo   repositories.KnockoutRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRecordRepository
	hub        brackets.Broadcaster
	archiver   DrawArchiver
	rand       RandSource
	logger     *slog.Logger
}

func NewKnockoutService(
	drawRepo repositories.KnockoutRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRecordRepository,
	hub brackets.Broadcaster,
	archiver DrawArchiver,
	rand RandSource,
	logger *slog.Logger,
) KnockoutService {
	return &knockoutService{
		drawRepo:   drawRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		hub:        hub,
		archiver:   archiver,
		rand:       rand,
		logger:     logger,
	}
}

func (s *knockoutService) Preview(ctx context.Context, input CreateKnockoutInput) (*models.KnockoutDraw, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, brackets.ErrTournamentNameRequired
	}
	roster, err := resolveRoster(ctx, s.playerRepo, input.Players)
	if err != nil {
		return nil, err
	}

	generator, err := brackets.NewGenerator(brackets.SingleEliminationName)
	if err != nil {
		return nil, err
	}
	bracket, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentName: name,
		Players:        roster,
		Rand:           s.rand.next(),
	})
	if err != nil {
		return nil, err
	}

	bestOf := input.BestOf
	if bestOf == nil {
		bestOf = []int{}
	}
	if len(bestOf) > 0 && len(bestOf) != len(bracket) {
		return nil, validationError("best_of has %d entries, the bracket has %d rounds", len(bestOf), len(bracket))
	}
	for i, frames := range bestOf {
		if frames < 1 {
			return nil, validationError("best_of for round %d must be positive, got %d", i+1, frames)
		}
	}

	return &models.KnockoutDraw{
		DrawName: name,
		Draw:     brackets.ResolveByes(bracket),
		BestOf:   bestOf,
	}, nil
}

func (s *knockoutService) Create(ctx context.Context, input CreateKnockoutInput) (*models.KnockoutDraw, error) {
	draw, err := s.Preview(ctx, input)
	if err != nil {
		return nil, err
	}
	rawDraw, err := encodeBlob(draw.Draw)
	if err != nil {
		return nil, err
	}
	rawBestOf, err := encodeBlob(draw.BestOf)
	if err != nil {
		return nil, err
	}

	record := &repositories.KnockoutRecord{DrawName: draw.DrawName, Draw: rawDraw, BestOf: rawBestOf}
	if err := s.drawRepo.Create(ctx, record); err != nil {
		return nil, handleRepositoryError(err, "save knockout draw")
	}
	draw.ID = record.ID
	draw.CreatedAt = record.CreatedAt

	s.logger.InfoContext(ctx, "Knockout draw created",
		slog.Int("draw_id", draw.ID),
		slog.String("name", draw.DrawName),
		slog.Int("rounds", len(draw.Draw)))
	return draw, nil
}

func (s *knockoutService) List(ctx context.Context) ([]models.DrawSummary, error) {
	draws, err := s.drawRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list knockout draws")
	}
	return draws, nil
}

func (s *knockoutService) Latest(ctx context.Context) (*models.KnockoutDraw, error) {
	rec, err := s.drawRepo.Latest(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "load latest knockout draw")
	}
	return s.decode(ctx, rec), nil
}

func (s *knockoutService) Get(ctx context.Context, id int) (*models.KnockoutDraw, error) {
	rec, err := s.drawRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "load knockout draw")
	}
	return s.decode(ctx, rec), nil
}

func (s *knockoutService) decode(ctx context.Context, rec *repositories.KnockoutRecord) *models.KnockoutDraw {
	draw := &models.KnockoutDraw{ID: rec.ID, DrawName: rec.DrawName, CreatedAt: rec.CreatedAt}

	bracket, err := models.DecodeBracket(rec.Draw)
	if err != nil {
		s.logger.WarnContext(ctx, "Knockout draw is malformed", slog.Int("draw_id", rec.ID), slog.Any("error", err))
		bracket = models.Bracket{}
		draw.Degraded = true
	}
	bestOf, err := models.DecodeBestOf(rec.BestOf)
	if err != nil {
		s.logger.WarnContext(ctx, "Knockout best_of is malformed", slog.Int("draw_id", rec.ID), slog.Any("error", err))
		bestOf = []int{}
		draw.Degraded = true
	}
	draw.Draw = bracket
	draw.BestOf = bestOf
	return draw
}

func (s *knockoutService) Advance(ctx context.Context, id int, input AdvanceInput) (*models.KnockoutDraw, error) {
	draw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draw.Degraded {
		return nil, ErrDrawDegraded
	}

	bracket, err := brackets.AdvanceMatch(draw.Draw, input.Round, input.Match, input.Slot, input.Value)
	if err != nil {
		return nil, err
	}
	raw, err := encodeBlob(bracket)
	if err != nil {
		return nil, err
	}
	if err := s.drawRepo.UpdateDraw(ctx, id, raw); err != nil {
		return nil, handleRepositoryError(err, "save knockout draw")
	}
	draw.Draw = bracket

	broadcast(s.hub, brackets.KnockoutRoom(id), draw)
	return draw, nil
}

// RecordResults flattens every decided two-player match into a match record and replaces the
// draw's stored results with them.
func (s *knockoutService) RecordResults(ctx context.Context, id int) ([]models.MatchRecord, error) {
	draw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draw.Degraded {
		return nil, ErrDrawDegraded
	}

	players, err := s.playerRepo.List(ctx, false)
	if err != nil {
		return nil, handleRepositoryError(err, "list players")
	}
	ids := make(map[string]int, len(players))
	for _, p := range players {
		ids[p.Name] = p.ID
	}

	records := make([]models.MatchRecord, 0)
	for _, round := range draw.Draw {
		for _, m := range round.Matches {
			if m.OnePlayer() || m.Winner() < 0 {
				continue
			}
			s0, s1 := m.Slots[0], m.Slots[1]
			id0, ok0 := ids[s0.PlayerName]
			id1, ok1 := ids[s1.PlayerName]
			if !ok0 || !ok1 {
				s.logger.WarnContext(ctx, "Skipping result with unknown player",
					slog.Int("draw_id", id),
					slog.Int("round", round.Round),
					slog.String("player1", s0.PlayerName),
					slog.String("player2", s1.PlayerName))
				continue
			}
			score0, _ := strconv.Atoi(string(s0.Score))
			score1, _ := strconv.Atoi(string(s1.Score))
			records = append(records, models.MatchRecord{
				DrawID:       id,
				Round:        round.Round,
				Player1ID:    id0,
				Player2ID:    id1,
				Player1Score: score0,
				Player2Score: score1,
			})
		}
	}

	if err := s.matchRepo.ReplaceForDraw(ctx, id, records); err != nil {
		return nil, handleRepositoryError(err, "save match records")
	}
	s.logger.InfoContext(ctx, "Knockout results recorded", slog.Int("draw_id", id), slog.Int("matches", len(records)))
	return records, nil
}

func (s *knockoutService) Archive(ctx context.Context, id int) (*storage.UploadResult, error) {
	if s.archiver == nil {
		return nil, ErrArchiveDisabled
	}
	draw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.archiver.ArchiveKnockout(ctx, draw)
	if err != nil {
		return nil, handleRepositoryError(err, "archive knockout draw")
	}
	s.logger.InfoContext(ctx, "Knockout draw archived", slog.Int("draw_id", id), slog.String("key", res.Key))
	return res, nil
}
