package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SlotScore is the score entered for one slot. Empty means unscored.
// Older draws stored a numeric 0 in every slot nobody had scored yet and the typed
// score as a string, so a numeric 0 decodes as unscored.
type SlotScore string

func (s *SlotScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SlotScore(strings.TrimSpace(str))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: slot score %s", ErrDataShape, string(data))
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*s = ""
		return nil
	}
	*s = SlotScore(n.String())
	return nil
}

type Slot struct {
	PlayerName string    `json:"playerName"`
	Handicap   int       `json:"handicap"`
	Score      SlotScore `json:"score"`
	IsWinner   bool      `json:"isWinner"`
}

// UnmarshalJSON also accepts the empty string older draws stored as the handicap of an empty slot.
func (s *Slot) UnmarshalJSON(data []byte) error {
	type plain Slot
	var raw struct {
		plain
		Handicap json.RawMessage `json:"handicap"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	handicap, err := decodeHandicap(raw.Handicap)
	if err != nil {
		return err
	}
	*s = Slot(raw.plain)
	s.Handicap = handicap
	return nil
}

func decodeHandicap(data json.RawMessage) (int, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return 0, fmt.Errorf("%w: slot handicap %s", ErrDataShape, string(data))
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%w: slot handicap %q", ErrDataShape, str)
	}
	return n, nil
}

func (s Slot) Occupied() bool {
	return s.PlayerName != ""
}

func (s Slot) Scored() bool {
	return s.Score != ""
}

type BracketMatch struct {
	Slots [2]Slot `json:"subBoxes"`
}

// OnePlayer reports whether exactly one slot holds a player.
func (m BracketMatch) OnePlayer() bool {
	return m.Slots[0].Occupied() != m.Slots[1].Occupied()
}

// Winner returns the index of the winning slot, or -1 while undecided.
func (m BracketMatch) Winner() int {
	for i, s := range m.Slots {
		if s.IsWinner {
			return i
		}
	}
	return -1
}

type Round struct {
	Round   int            `json:"round"`
	Matches []BracketMatch `json:"matches"`
}

type Bracket []Round

func (b Bracket) Clone() Bracket {
	if b == nil {
		return nil
	}
	out := make(Bracket, len(b))
	for i, r := range b {
		out[i] = Round{Round: r.Round, Matches: append([]BracketMatch(nil), r.Matches...)}
	}
	return out
}

// Fed reports whether a match of the previous round feeds the given slot.
// First-round slots are never fed.
func (b Bracket) Fed(roundIndex, matchIndex, slotIndex int) bool {
	if roundIndex <= 0 || roundIndex > len(b)-1 {
		return false
	}
	return 2*matchIndex+slotIndex < len(b[roundIndex-1].Matches)
}

// IsBye reports whether a match holds a single player whose empty slot will never be filled.
// A lone player waiting on an unplayed feeder match is not a bye.
func (b Bracket) IsBye(roundIndex, matchIndex int) bool {
	m := b[roundIndex].Matches[matchIndex]
	if !m.OnePlayer() {
		return false
	}
	empty := 0
	if m.Slots[0].Occupied() {
		empty = 1
	}
	return !b.Fed(roundIndex, matchIndex, empty)
}

func (b Bracket) Validate() error {
	for i, r := range b {
		if len(r.Matches) == 0 {
			return fmt.Errorf("%w: round %d has no matches", ErrDataShape, i+1)
		}
		if i > 0 {
			want := (len(b[i-1].Matches) + 1) / 2
			if len(r.Matches) != want {
				return fmt.Errorf("%w: round %d has %d matches, expected %d", ErrDataShape, i+1, len(r.Matches), want)
			}
		}
		for j, m := range r.Matches {
			if m.Slots[0].IsWinner && m.Slots[1].IsWinner {
				return fmt.Errorf("%w: round %d match %d has two winners", ErrDataShape, i+1, j+1)
			}
		}
	}
	return nil
}

// Champion returns the winner of the final once decided.
func (b Bracket) Champion() (Slot, bool) {
	if len(b) == 0 {
		return Slot{}, false
	}
	final := b[len(b)-1]
	if len(final.Matches) != 1 {
		return Slot{}, false
	}
	w := final.Matches[0].Winner()
	if w < 0 {
		return Slot{}, false
	}
	return final.Matches[0].Slots[w], true
}
