package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/cue-league/models"
)

type GroupKnockoutGenerator struct{}

func NewGroupKnockoutGenerator() BracketGenerator {
	return &GroupKnockoutGenerator{}
}

func (g *GroupKnockoutGenerator) GetName() string {
	return GroupKnockoutName
}

func (g *GroupKnockoutGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error) {
	return BuildKnockoutFromGroupStandings(params.GroupStandings, params.TopN)
}

func slotFromStanding(s models.Standing) models.Slot {
	return models.Slot{PlayerName: s.Name, Handicap: s.Handicap}
}

func pairing(a, b models.Standing) models.BracketMatch {
	return models.BracketMatch{Slots: [2]models.Slot{slotFromStanding(a), slotFromStanding(b)}}
}

// seedWithin pairs rank i against rank topN-1-i inside one group; an odd topN leaves the middle seed a bye.
func seedWithin(group []models.Standing, topN int) []models.BracketMatch {
	matches := make([]models.BracketMatch, 0, (topN+1)/2)
	for i := 0; i < topN/2; i++ {
		matches = append(matches, pairing(group[i], group[topN-1-i]))
	}
	if topN%2 != 0 {
		matches = append(matches, models.BracketMatch{Slots: [2]models.Slot{slotFromStanding(group[topN/2])}})
	}
	return matches
}

// seedAcross pairs rank i of group a against rank topN-1-i of group b.
func seedAcross(a, b []models.Standing, topN int) []models.BracketMatch {
	matches := make([]models.BracketMatch, 0, topN)
	for i := 0; i < topN; i++ {
		matches = append(matches, pairing(a[i], b[topN-1-i]))
	}
	return matches
}

// BuildKnockoutFromGroupStandings seeds the first knockout round from the top finishers of
// each group. Groups are crossed in pairs (1 v 2, 3 v 4, ...); a group left without a partner
// is seeded within itself. Later rounds are empty placeholders.
func BuildKnockoutFromGroupStandings(standingsPerGroup [][]models.Standing, topN int) (models.Bracket, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: top players per group must be at least 1, got %d", ErrNotEnoughPlayers, topN)
	}
	if len(standingsPerGroup) == 0 {
		return nil, fmt.Errorf("%w: no groups to seed from", ErrNotEnoughPlayers)
	}
	for i, g := range standingsPerGroup {
		if len(g) < topN {
			return nil, fmt.Errorf("%w: group %d has %d players, %d requested", ErrNotEnoughPlayers, i+1, len(g), topN)
		}
	}
	if len(standingsPerGroup) == 1 && topN < 2 {
		return nil, fmt.Errorf("%w: a single group needs at least 2 qualifiers", ErrNotEnoughPlayers)
	}

	var initial []models.BracketMatch
	for i := 0; i+1 < len(standingsPerGroup); i += 2 {
		initial = append(initial, seedAcross(standingsPerGroup[i], standingsPerGroup[i+1], topN)...)
	}
	if len(standingsPerGroup)%2 != 0 {
		initial = append(initial, seedWithin(standingsPerGroup[len(standingsPerGroup)-1], topN)...)
	}

	return buildRounds(initial), nil
}

// buildRounds stacks halving placeholder rounds after the seeded one until a single final remains.
func buildRounds(initial []models.BracketMatch) models.Bracket {
	bracket := models.Bracket{{Round: 1, Matches: initial}}
	size := len(initial)
	for size > 1 {
		size = (size + 1) / 2
		bracket = append(bracket, models.Round{Round: len(bracket) + 1, Matches: make([]models.BracketMatch, size)})
	}
	return bracket
}
