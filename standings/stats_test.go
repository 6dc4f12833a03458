package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cue-league/models"
)

func TestPlayerStats(t *testing.T) {
	players := []models.Player{
		{ID: 1, Name: "Ann", Handicap: 10},
		{ID: 2, Name: "Ben", Handicap: -4},
		{ID: 3, Name: "Cat", Handicap: 0},
	}
	records := []models.MatchRecord{
		{DrawID: 1, Round: 1, Player1ID: 1, Player2ID: 2, Player1Score: 3, Player2Score: 1},
		{DrawID: 1, Round: 2, Player1ID: 1, Player2ID: 3, Player1Score: 2, Player2Score: 3},
		{DrawID: 1, Round: 2, Player1ID: 9, Player2ID: 3, Player1Score: 0, Player2Score: 3},
	}

	stats := PlayerStats(players, records)
	require.Len(t, stats, 3)
	assert.Equal(t, []string{"Ben", "Cat", "Ann"}, []string{stats[0].Name, stats[1].Name, stats[2].Name})

	ann := stats[2]
	assert.Equal(t, 2, ann.MatchesPlayed)
	assert.Equal(t, 1, ann.MatchWins)
	assert.Equal(t, 1, ann.MatchLosses)
	assert.Equal(t, 5, ann.FramesWon)
	assert.Equal(t, 4, ann.FramesLost)
	assert.Equal(t, 9, ann.FramesPlayed)

	cat := stats[1]
	assert.Equal(t, 2, cat.MatchWins, "unknown opponents still count for known players")
	assert.Equal(t, 6, cat.FramesWon)
}

func TestPlayerStatsNoRecords(t *testing.T) {
	stats := PlayerStats([]models.Player{{ID: 1, Name: "Ann"}}, nil)
	require.Len(t, stats, 1)
	assert.Zero(t, stats[0].MatchesPlayed)
}
