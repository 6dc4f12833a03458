package brackets

import (
	"fmt"
	"math/rand"

	"github.com/Dosada05/cue-league/models"
)

func roster(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{ID: i + 1, Name: fmt.Sprintf("P%d", i+1), Handicap: i}
	}
	return players
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(7))
}
