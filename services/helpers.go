package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/repositories"
)

// handleRepositoryError maps repository errors onto service errors; anything unexpected is a remote failure.
func handleRepositoryError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrRoundRobinDrawNotFound), errors.Is(err, repositories.ErrKnockoutDrawNotFound):
		return ErrDrawNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerNameConflict):
		return ErrPlayerNameConflict
	case errors.Is(err, repositories.ErrMatchRecordInvalid):
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrRemoteFailure, err)
	}
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

func encodeBlob(v interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draw: %w", err)
	}
	return raw, nil
}

func broadcast(hub brackets.Broadcaster, room string, payload interface{}) {
	if hub == nil {
		return
	}
	hub.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    brackets.MessageDrawUpdated,
		Payload: payload,
		RoomID:  room,
	})
}

// RandSource builds the generator used for one draw. Nil means a time-seeded source.
type RandSource func() *rand.Rand

func (f RandSource) next() *rand.Rand {
	if f == nil {
		return nil
	}
	return f()
}

// resolveRoster loads the named players in the given order. An empty list selects every available player.
func resolveRoster(ctx context.Context, repo repositories.PlayerRepository, names []string) ([]models.Player, error) {
	if len(names) == 0 {
		players, err := repo.List(ctx, true)
		if err != nil {
			return nil, handleRepositoryError(err, "list available players")
		}
		return players, nil
	}

	all, err := repo.List(ctx, false)
	if err != nil {
		return nil, handleRepositoryError(err, "list players")
	}
	byName := make(map[string]models.Player, len(all))
	for _, p := range all {
		byName[p.Name] = p
	}

	roster := make([]models.Player, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		p, ok := byName[name]
		if !ok {
			return nil, validationError("unknown player %q", name)
		}
		if seen[name] {
			return nil, validationError("player %q selected twice", name)
		}
		seen[name] = true
		roster = append(roster, p)
	}
	return roster, nil
}
