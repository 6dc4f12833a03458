package standings

import (
	"sort"

	"github.com/Dosada05/cue-league/models"
)

// PlayerStats aggregates recorded knockout results per player, ordered by handicap ascending.
func PlayerStats(players []models.Player, records []models.MatchRecord) []models.PlayerStats {
	index := make(map[int]*models.PlayerStats, len(players))
	out := make([]*models.PlayerStats, 0, len(players))
	for _, p := range players {
		s := &models.PlayerStats{PlayerID: p.ID, Name: p.Name, Handicap: p.Handicap}
		index[p.ID] = s
		out = append(out, s)
	}

	credit := func(id, forScore, againstScore int) {
		s := index[id]
		if s == nil {
			return
		}
		s.MatchesPlayed++
		s.FramesWon += forScore
		s.FramesLost += againstScore
		s.FramesPlayed += forScore + againstScore
		switch {
		case forScore > againstScore:
			s.MatchWins++
		case forScore < againstScore:
			s.MatchLosses++
		}
	}
	for _, r := range records {
		credit(r.Player1ID, r.Player1Score, r.Player2Score)
		if r.Player2ID != r.Player1ID {
			credit(r.Player2ID, r.Player2Score, r.Player1Score)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Handicap < out[j].Handicap })
	result := make([]models.PlayerStats, len(out))
	for i, s := range out {
		result[i] = *s
	}
	return result
}
