package brackets

import (
	"fmt"
	"strings"

	"github.com/Dosada05/cue-league/models"
	"github.com/Dosada05/cue-league/standings"
)

const (
	MinHandicap = -25
	MaxHandicap = 25
)

// FrameScores is what a user enters for one round-robin match: per-frame points and breaks.
type FrameScores struct {
	Frames1 string `json:"frame1"`
	Frames2 string `json:"frame2"`
	Breaks1 string `json:"breaks1"`
	Breaks2 string `json:"breaks2"`
}

func clampHandicap(h int) int {
	if h < MinHandicap {
		return MinHandicap
	}
	if h > MaxHandicap {
		return MaxHandicap
	}
	return h
}

// SubmitFrameScores records frame points for one match, derives the frame score and result,
// and moves both players' handicaps on their later matches in the group: -1 for the winner,
// +1 otherwise.
func SubmitFrameScores(groups []models.Group, groupIndex, matchIndex int, scores FrameScores) ([]models.Group, error) {
	if groupIndex < 0 || groupIndex >= len(groups) {
		return nil, fmt.Errorf("%w: group %d", ErrMatchOutOfRange, groupIndex)
	}
	if matchIndex < 0 || matchIndex >= len(groups[groupIndex].Matches) {
		return nil, fmt.Errorf("%w: group %d match %d", ErrMatchOutOfRange, groupIndex, matchIndex)
	}

	frames1, err1 := standings.ParseSequence(scores.Frames1)
	frames2, err2 := standings.ParseSequence(scores.Frames2)
	if err1 != nil || err2 != nil || len(frames1) != len(frames2) || len(frames1) == 0 {
		return nil, ErrFrameScoresMismatch
	}
	breaks1, err1 := standings.ParseSequence(scores.Breaks1)
	breaks2, err2 := standings.ParseSequence(scores.Breaks2)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("%w: breaks must be comma-separated numbers", ErrFrameScoresMismatch)
	}
	if len(breaks1) > 0 && len(breaks2) > 0 && len(breaks1) != len(breaks2) {
		return nil, fmt.Errorf("%w: breaks have different lengths", ErrFrameScoresMismatch)
	}

	score1, score2 := 0, 0
	for i := range frames1 {
		switch {
		case frames1[i] > frames2[i]:
			score1++
		case frames1[i] < frames2[i]:
			score2++
		}
	}

	out := models.CloneGroups(groups)
	match := &out[groupIndex].Matches[matchIndex]
	match.Frame1 = strings.TrimSpace(scores.Frames1)
	match.Frame2 = strings.TrimSpace(scores.Frames2)
	match.Breaks1 = strings.TrimSpace(scores.Breaks1)
	match.Breaks2 = strings.TrimSpace(scores.Breaks2)
	match.Score1 = &score1
	match.Score2 = &score2
	switch {
	case score1 > score2:
		match.Result = models.WinResult(match.Player1)
	case score2 > score1:
		match.Result = models.WinResult(match.Player2)
	default:
		match.Result = models.ResultTie
	}

	adjustment := func(player string) int {
		if match.Result == models.WinResult(player) {
			return -1
		}
		return 1
	}
	adj1, adj2 := adjustment(match.Player1), adjustment(match.Player2)

	later := out[groupIndex].Matches[matchIndex+1:]
	for i := range later {
		m := &later[i]
		for _, p := range []struct {
			name string
			adj  int
		}{{match.Player1, adj1}, {match.Player2, adj2}} {
			if m.Player1 == p.name {
				m.Handicap1 = clampHandicap(m.Handicap1 + p.adj)
			}
			if m.Player2 == p.name {
				m.Handicap2 = clampHandicap(m.Handicap2 + p.adj)
			}
		}
	}
	return out, nil
}
