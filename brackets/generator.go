package brackets

import (
	"context"
	"math/rand"

	"github.com/Dosada05/cue-league/models"
)

type GenerateBracketParams struct {
	TournamentName string
	Players        []models.Player

	// Used by the group knockout generator only.
	GroupStandings [][]models.Standing
	TopN           int

	Rand *rand.Rand
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error)

	GetName() string
}

const (
	SingleEliminationName = "SingleElimination"
	GroupKnockoutName     = "GroupKnockout"
)

// NewGenerator picks a generator by its bracket type name.
func NewGenerator(name string) (BracketGenerator, error) {
	switch name {
	case SingleEliminationName:
		return NewSingleEliminationGenerator(), nil
	case GroupKnockoutName:
		return NewGroupKnockoutGenerator(), nil
	default:
		return nil, ErrUnknownGenerator
	}
}
