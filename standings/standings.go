// Package standings derives group tables and player statistics from match records.
package standings

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Dosada05/cue-league/models"
)

var ErrMalformedSequence = errors.New("malformed comma-separated score sequence")

// ParseSequence parses "12,0,45" into integers. Empty input yields an empty slice.
func ParseSequence(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedSequence, s)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseLenient is used when reading stored matches: bad tokens are dropped rather than failing the table.
func parseLenient(s string) []int {
	out := []int{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}

type entry struct {
	standing models.Standing
	order    int
}

// Compute aggregates a group's matches into ordered standings.
// Handicaps follow the last match a player appears in (positional, not by date).
func Compute(matches []models.RoundRobinMatch) []models.Standing {
	index := make(map[string]*entry)
	get := func(name string) *entry {
		e, ok := index[name]
		if !ok {
			e = &entry{
				standing: models.Standing{Name: name, Frames: [][]int{}, Breaks: [][]int{}},
				order:    len(index),
			}
			index[name] = e
		}
		return e
	}

	for _, m := range matches {
		sides := [2]struct {
			name           string
			handicap       int
			frames, breaks string
		}{
			{m.Player1, m.Handicap1, m.Frame1, m.Breaks1},
			{m.Player2, m.Handicap2, m.Frame2, m.Breaks2},
		}
		for _, side := range sides {
			if side.name == "" || models.IsBye(side.name) {
				continue
			}
			e := get(side.name)
			e.standing.Handicap = side.handicap
			frames := parseLenient(side.frames)
			breaks := parseLenient(side.breaks)
			e.standing.Frames = append(e.standing.Frames, frames)
			e.standing.Breaks = append(e.standing.Breaks, breaks)
			for _, b := range breaks {
				if b > e.standing.HighestBreak {
					e.standing.HighestBreak = b
				}
			}
		}

		p1, p2 := index[m.Player1], index[m.Player2]
		switch m.Result {
		case models.WinResult(m.Player1):
			if p1 != nil {
				p1.standing.TotalWin++
			}
			if p2 != nil {
				p2.standing.TotalLoss++
			}
		case models.WinResult(m.Player2):
			if p2 != nil {
				p2.standing.TotalWin++
			}
			if p1 != nil {
				p1.standing.TotalLoss++
			}
		case models.ResultTie:
			if p1 != nil {
				p1.standing.Tie++
			}
			if p2 != nil {
				p2.standing.Tie++
			}
		}
	}

	entries := make([]*entry, 0, len(index))
	for _, e := range index {
		entries = append(entries, e)
	}
	// first-seen order keeps true ties stable across calls
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	out := make([]models.Standing, len(entries))
	for i, e := range entries {
		out[i] = e.standing
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalWin != b.TotalWin {
			return a.TotalWin > b.TotalWin
		}
		if a.TotalLoss != b.TotalLoss {
			return a.TotalLoss < b.TotalLoss
		}
		if a.Tie != b.Tie {
			return a.Tie > b.Tie
		}
		return a.HighestBreak > b.HighestBreak
	})
	return out
}

// ForGroups computes standings for every group of a draw.
func ForGroups(groups []models.Group) []models.GroupStandings {
	out := make([]models.GroupStandings, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.GroupStandings{Group: g.Group, Standings: Compute(g.Matches)})
	}
	return out
}

// LatestHandicaps returns the last handicap seen for each real player across all groups.
func LatestHandicaps(groups []models.Group) map[string]int {
	out := make(map[string]int)
	for _, g := range groups {
		for _, m := range g.Matches {
			if m.Player1 != "" && !models.IsBye(m.Player1) {
				out[m.Player1] = m.Handicap1
			}
			if m.Player2 != "" && !models.IsBye(m.Player2) {
				out[m.Player2] = m.Handicap2
			}
		}
	}
	return out
}
