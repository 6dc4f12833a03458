package brackets

import (
	"fmt"
	"strconv"

	"github.com/Dosada05/cue-league/models"
)

func parseScore(s models.SlotScore) (int, error) {
	n, err := strconv.Atoi(string(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, string(s))
	}
	return n, nil
}

func lookupMatch(b models.Bracket, roundIndex, matchIndex int) error {
	if roundIndex < 0 || roundIndex >= len(b) {
		return fmt.Errorf("%w: round %d", ErrMatchOutOfRange, roundIndex)
	}
	if matchIndex < 0 || matchIndex >= len(b[roundIndex].Matches) {
		return fmt.Errorf("%w: round %d match %d", ErrMatchOutOfRange, roundIndex, matchIndex)
	}
	return nil
}

// AdvanceMatch merges updated into one slot of one match and, once the match is decided,
// carries the winner into the next round. Equal scores go to slot 0.
// The input bracket is left untouched.
func AdvanceMatch(b models.Bracket, roundIndex, matchIndex, slotIndex int, updated models.Slot) (models.Bracket, error) {
	if err := lookupMatch(b, roundIndex, matchIndex); err != nil {
		return nil, err
	}
	if slotIndex < 0 || slotIndex > 1 {
		return nil, fmt.Errorf("%w: slot %d", ErrMatchOutOfRange, slotIndex)
	}
	if updated.Scored() {
		if _, err := parseScore(updated.Score); err != nil {
			return nil, err
		}
	}

	out := b.Clone()
	match := &out[roundIndex].Matches[matchIndex]
	slot := &match.Slots[slotIndex]
	if updated.PlayerName != "" {
		slot.PlayerName = updated.PlayerName
		slot.Handicap = updated.Handicap
	}
	slot.Score = updated.Score

	if err := decide(out, roundIndex, matchIndex); err != nil {
		return nil, err
	}
	return out, nil
}

// decide marks the winner of a match and keeps its successor slot in step. When the
// winner changes or the match becomes undecided, the successor slot is replaced or cleared
// and the successor match is decided again.
func decide(b models.Bracket, roundIndex, matchIndex int) error {
	match := &b[roundIndex].Matches[matchIndex]
	s0, s1 := match.Slots[0], match.Slots[1]
	previous := match.Winner()

	winner := -1
	switch {
	case b.IsBye(roundIndex, matchIndex):
		winner = 0
		if s1.Occupied() {
			winner = 1
		}
	case s0.Occupied() && s1.Occupied() && s0.Scored() && s1.Scored():
		score0, err := parseScore(s0.Score)
		if err != nil {
			return err
		}
		score1, err := parseScore(s1.Score)
		if err != nil {
			return err
		}
		winner = 0
		if score1 > score0 {
			winner = 1
		}
	}

	match.Slots[0].IsWinner = winner == 0
	match.Slots[1].IsWinner = winner == 1

	if roundIndex >= len(b)-1 {
		return nil
	}
	next := roundIndex + 1
	nextMatch, nextSlot := matchIndex/2, matchIndex%2
	if nextMatch >= len(b[next].Matches) {
		return nil
	}

	var carried models.Slot
	if winner >= 0 {
		carried = match.Slots[winner]
		carried.Score = ""
		carried.IsWinner = false
	} else if previous < 0 {
		// never decided, so nothing of ours sits in the successor slot
		return nil
	}

	current := &b[next].Matches[nextMatch].Slots[nextSlot]
	if current.PlayerName == carried.PlayerName && current.Handicap == carried.Handicap {
		if winner >= 0 && previous < 0 {
			// a freshly filled slot may complete a bye in the next round
			return decide(b, next, nextMatch)
		}
		return nil
	}
	*current = carried
	return decide(b, next, nextMatch)
}

// ResolveByes auto-advances every round-1 match that has a single player.
func ResolveByes(b models.Bracket) models.Bracket {
	out := b.Clone()
	if len(out) == 0 {
		return out
	}
	for i := range out[0].Matches {
		if out.IsBye(0, i) {
			// bye decisions never parse scores, so this cannot fail
			_ = decide(out, 0, i)
		}
	}
	return out
}
