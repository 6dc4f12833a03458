package brackets

import (
	"fmt"
	"math/rand"

	"github.com/Dosada05/cue-league/models"
)

// GenerateGroups shuffles the roster and cuts it into consecutive groups of the given sizes.
func GenerateGroups(players []models.Player, groupSizes []int, rng *rand.Rand) ([][]models.Player, error) {
	total := 0
	for i, size := range groupSizes {
		if size < 0 {
			return nil, fmt.Errorf("%w: group %d has negative size %d", ErrGroupSizesMismatch, i+1, size)
		}
		total += size
	}
	if total != len(players) {
		return nil, fmt.Errorf("%w: sizes add up to %d, roster has %d", ErrGroupSizesMismatch, total, len(players))
	}

	shuffled := shufflePlayers(players, newRand(rng))
	groups := make([][]models.Player, 0, len(groupSizes))
	index := 0
	for _, size := range groupSizes {
		groups = append(groups, shuffled[index:index+size:index+size])
		index += size
	}
	return groups, nil
}

// CreateSchedule pairs every player in the group with every other using the circle method.
// Odd groups get a Bye; whoever draws the Bye sits the round out.
func CreateSchedule(groupPlayers []models.Player) []models.RoundRobinMatch {
	players := make([]models.Player, len(groupPlayers), len(groupPlayers)+1)
	copy(players, groupPlayers)
	if len(players)%2 != 0 {
		players = append(players, models.Player{Name: models.ByeName, Handicap: 0})
	}

	n := len(players)
	schedule := make([]models.RoundRobinMatch, 0, n*(n-1)/2)
	for round := 0; round < n-1; round++ {
		for i := 0; i < n/2; i++ {
			p1, p2 := players[i], players[n-1-i]
			if p1.Name == p2.Name || models.IsBye(p1.Name) || models.IsBye(p2.Name) {
				continue
			}
			schedule = append(schedule, models.RoundRobinMatch{
				MatchNumber: len(schedule) + 1,
				Player1:     p1.Name,
				Player2:     p2.Name,
				Handicap1:   p1.Handicap,
				Handicap2:   p2.Handicap,
				Result:      models.ResultPending,
			})
		}
		// keep index 0 fixed, move the last player to index 1
		last := players[n-1]
		copy(players[2:], players[1:n-1])
		players[1] = last
	}
	return schedule
}

// GenerateRoundRobin splits the roster into groups and schedules each of them.
func GenerateRoundRobin(players []models.Player, groupSizes []int, rng *rand.Rand) ([]models.Group, error) {
	rosters, err := GenerateGroups(players, groupSizes, rng)
	if err != nil {
		return nil, err
	}
	groups := make([]models.Group, 0, len(rosters))
	for i, roster := range rosters {
		groups = append(groups, models.Group{Group: i + 1, Matches: CreateSchedule(roster)})
	}
	return groups, nil
}
