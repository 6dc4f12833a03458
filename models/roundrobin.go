package models

import "fmt"

const (
	ResultPending = "Pending"
	ResultTie     = "Tie"
)

// WinResult formats the result string stored for a decided round-robin match.
func WinResult(playerName string) string {
	return playerName + " wins"
}

type RoundRobinMatch struct {
	MatchNumber int    `json:"matchNumber"`
	MatchDate   string `json:"matchDate"` // YYYY-MM-DD, empty until assigned
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Handicap1   int    `json:"handicap1"`
	Handicap2   int    `json:"handicap2"`
	Score1      *int   `json:"score1"`
	Score2      *int   `json:"score2"`
	Frame1      string `json:"frame1"`
	Frame2      string `json:"frame2"`
	Breaks1     string `json:"breaks1"`
	Breaks2     string `json:"breaks2"`
	Result      string `json:"result"`
}

type Group struct {
	Group   int               `json:"group"`
	Matches []RoundRobinMatch `json:"matches"`
}

func (g Group) Validate() error {
	if g.Group < 1 {
		return fmt.Errorf("%w: group index %d is not 1-based", ErrDataShape, g.Group)
	}
	for i, m := range g.Matches {
		if m.Player1 == "" || m.Player2 == "" {
			return fmt.Errorf("%w: group %d match %d has an empty player", ErrDataShape, g.Group, i)
		}
		if m.Player1 == m.Player2 {
			return fmt.Errorf("%w: group %d match %d pairs %q with itself", ErrDataShape, g.Group, i, m.Player1)
		}
	}
	return nil
}

// CloneGroups returns a deep copy so callers can derive new snapshots.
func CloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Group: g.Group, Matches: make([]RoundRobinMatch, len(g.Matches))}
		for j, m := range g.Matches {
			if m.Score1 != nil {
				v := *m.Score1
				m.Score1 = &v
			}
			if m.Score2 != nil {
				v := *m.Score2
				m.Score2 = &v
			}
			out[i].Matches[j] = m
		}
	}
	return out
}
