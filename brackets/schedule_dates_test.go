package brackets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cue-league/models"
)

func TestFirstTuesday(t *testing.T) {
	// 2024-01-01 is a Monday
	monday := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", firstTuesday(monday).Format(DateLayout))

	tuesday := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", firstTuesday(tuesday).Format(DateLayout))

	wednesday := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-09", firstTuesday(wednesday).Format(DateLayout))
}

func TestAssignDatesRespectsLimits(t *testing.T) {
	groups, err := GenerateRoundRobin(roster(10), []int{6, 4}, seeded())
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dated, err := AssignDates(groups, start, 3, 1)
	require.NoError(t, err)

	for gi, g := range dated {
		perDate := map[string]int{}
		perPlayer := map[string]int{}
		for _, m := range g.Matches {
			require.NotEmpty(t, m.MatchDate)
			d, err := time.Parse(DateLayout, m.MatchDate)
			require.NoError(t, err)
			assert.Equal(t, time.Tuesday, d.Weekday())
			assert.False(t, d.Before(start))

			perDate[m.MatchDate]++
			perPlayer[m.MatchDate+"|"+m.Player1]++
			perPlayer[m.MatchDate+"|"+m.Player2]++
		}
		for date, count := range perDate {
			assert.LessOrEqual(t, count, 3, "group %d on %s", gi+1, date)
		}
		for key, count := range perPlayer {
			assert.Equal(t, 1, count, key)
		}
	}

	for _, m := range groups[0].Matches {
		assert.Empty(t, m.MatchDate, "input must not be modified")
	}
}

func TestAssignDatesKeepsExistingDates(t *testing.T) {
	groups := []models.Group{{Group: 1, Matches: []models.RoundRobinMatch{
		{MatchNumber: 1, Player1: "A", Player2: "B", MatchDate: "2023-06-06"},
		{MatchNumber: 2, Player1: "C", Player2: "D"},
	}}}

	dated, err := AssignDates(groups, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 8, 2)
	require.NoError(t, err)
	assert.Equal(t, "2023-06-06", dated[0].Matches[0].MatchDate)
	assert.Equal(t, "2024-01-02", dated[0].Matches[1].MatchDate)
}

func TestAssignDatesRejectsBadLimits(t *testing.T) {
	groups, err := GenerateRoundRobin(roster(4), []int{4}, seeded())
	require.NoError(t, err)

	_, err = AssignDates(groups, time.Now(), 0, 2)
	assert.ErrorIs(t, err, ErrInvalidScheduleConfig)

	_, err = AssignDates(groups, time.Now(), 2, 0)
	assert.ErrorIs(t, err, ErrInvalidScheduleConfig)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignDatesEmpty(t *testing.T) {
	dated, err := AssignDates(nil, time.Now(), 8, 2)
	require.NoError(t, err)
	assert.Empty(t, dated)
}

func TestAssignDatesConvergesWithNamesSharedAcrossGroups(t *testing.T) {
	triangle := func(group int) models.Group {
		return models.Group{Group: group, Matches: []models.RoundRobinMatch{
			{MatchNumber: 1, Player1: "A", Player2: "B"},
			{MatchNumber: 2, Player1: "A", Player2: "C"},
			{MatchNumber: 3, Player1: "B", Player2: "C"},
		}}
	}
	groups := []models.Group{triangle(1), triangle(2)}

	dated, err := AssignDates(groups, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1, 1)
	require.NoError(t, err)

	perPlayer := map[string]int{}
	for _, g := range dated {
		for _, m := range g.Matches {
			require.NotEmpty(t, m.MatchDate)
			perPlayer[m.MatchDate+"|"+m.Player1]++
			perPlayer[m.MatchDate+"|"+m.Player2]++
		}
	}
	for key, count := range perPlayer {
		assert.Equal(t, 1, count, key)
	}
}
