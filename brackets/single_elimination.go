package brackets

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/Dosada05/cue-league/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return SingleEliminationName
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (models.Bracket, error) {
	return GenerateBracket(params.TournamentName, params.Players, params.Rand)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func shufflePlayers(players []models.Player, rng *rand.Rand) []models.Player {
	shuffled := make([]models.Player, len(players))
	copy(shuffled, players)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// GenerateBracket builds a random single-elimination draw. Round 1 has enough matches
// for the next power of two; the remaining slots are byes.
func GenerateBracket(name string, players []models.Player, rng *rand.Rand) (models.Bracket, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTournamentNameRequired
	}
	n := len(players)
	if n < 2 {
		return nil, fmt.Errorf("%w: single elimination needs at least 2, got %d", ErrNotEnoughPlayers, n)
	}
	rng = newRand(rng)

	round1Matches := n / 2
	if !isPowerOfTwo(n) {
		round1Matches = nextPowerOfTwo(n) / 2
	}

	shuffled := shufflePlayers(players, rng)
	first := models.Round{Round: 1, Matches: make([]models.BracketMatch, round1Matches)}
	for i := 0; i < round1Matches; i++ {
		p := shuffled[i]
		first.Matches[i].Slots[0] = models.Slot{PlayerName: p.Name, Handicap: p.Handicap}
	}

	// rejection sampling over the free slots gives a uniformly random placement
	for _, p := range shuffled[round1Matches:] {
		m, s := rng.Intn(round1Matches), rng.Intn(2)
		for first.Matches[m].Slots[s].Occupied() {
			m, s = rng.Intn(round1Matches), rng.Intn(2)
		}
		first.Matches[m].Slots[s] = models.Slot{PlayerName: p.Name, Handicap: p.Handicap}
	}

	totalRounds := int(math.Ceil(math.Log2(float64(round1Matches * 2))))
	bracket := make(models.Bracket, 0, totalRounds)
	bracket = append(bracket, first)
	for r := 2; r <= totalRounds; r++ {
		bracket = append(bracket, models.Round{
			Round:   r,
			Matches: make([]models.BracketMatch, 1<<uint(totalRounds-r)),
		})
	}
	return bracket, nil
}
