package services

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/repositories"
	"github.com/Dosada05/cue-league/standings"
)

type PlayerService interface {
	ListPlayers(ctx context.Context, availableOnly bool) ([]models.Player, error)
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	Stats(ctx context.Context) ([]models.PlayerStats, error)
}

type CreatePlayerInput struct {
	Name     string `json:"name"`
	Handicap int    `json:"handicap"`
	// Defaults to Handicap.
	LeagueHandicap *int `json:"handicap_round"`
	// Defaults to true.
	Available *bool `json:"availability"`
}

type UpdatePlayerInput struct {
	Name           *string `json:"name"`
	Handicap       *int    `json:"handicap"`
	LeagueHandicap *int    `json:"handicap_round"`
	Available      *bool   `json:"availability"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRecordRepository
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, matchRepo repositories.MatchRecordRepository, logger *slog.Logger) PlayerService {
	return &playerService{playerRepo: playerRepo, matchRepo: matchRepo, logger: logger}
}

func validateHandicap(field string, h int) error {
	if h < brackets.MinHandicap || h > brackets.MaxHandicap {
		return validationError("%s must be between %d and %d, got %d", field, brackets.MinHandicap, brackets.MaxHandicap, h)
	}
	return nil
}

func validatePlayerName(name string) error {
	if name == "" {
		return validationError("player name is required")
	}
	if models.IsBye(name) {
		return validationError("%q is reserved", models.ByeName)
	}
	return nil
}

func (s *playerService) ListPlayers(ctx context.Context, availableOnly bool) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, availableOnly)
	if err != nil {
		return nil, handleRepositoryError(err, "list players")
	}
	return players, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	player := &models.Player{
		Name:           strings.TrimSpace(input.Name),
		Handicap:       input.Handicap,
		LeagueHandicap: input.Handicap,
		Available:      true,
	}
	if input.LeagueHandicap != nil {
		player.LeagueHandicap = *input.LeagueHandicap
	}
	if input.Available != nil {
		player.Available = *input.Available
	}

	if err := validatePlayerName(player.Name); err != nil {
		return nil, err
	}
	if err := validateHandicap("handicap", player.Handicap); err != nil {
		return nil, err
	}
	if err := validateHandicap("handicap_round", player.LeagueHandicap); err != nil {
		return nil, err
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, handleRepositoryError(err, "create player")
	}
	s.logger.InfoContext(ctx, "Player created", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get player")
	}

	if input.Name != nil {
		player.Name = strings.TrimSpace(*input.Name)
		if err := validatePlayerName(player.Name); err != nil {
			return nil, err
		}
	}
	if input.Handicap != nil {
		if err := validateHandicap("handicap", *input.Handicap); err != nil {
			return nil, err
		}
		player.Handicap = *input.Handicap
	}
	if input.LeagueHandicap != nil {
		if err := validateHandicap("handicap_round", *input.LeagueHandicap); err != nil {
			return nil, err
		}
		player.LeagueHandicap = *input.LeagueHandicap
	}
	if input.Available != nil {
		player.Available = *input.Available
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, handleRepositoryError(err, "update player")
	}
	return player, nil
}

func (s *playerService) Stats(ctx context.Context) ([]models.PlayerStats, error) {
	var players []models.Player
	var records []models.MatchRecord

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx, false)
		return handleRepositoryError(err, "list players")
	})
	g.Go(func() error {
		var err error
		records, err = s.matchRepo.List(gCtx)
		return handleRepositoryError(err, "list match records")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return standings.PlayerStats(players, records), nil
}
