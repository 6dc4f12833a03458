package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// ErrDataShape marks a persisted blob that does not decode into the expected records.
var ErrDataShape = errors.New("persisted draw has an unexpected shape")

type RoundRobinDraw struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Start      string    `json:"start" db:"start"` // YYYY-MM-DD
	RoundRobin []Group   `json:"roundrobin" db:"roundrobin"`
	Knockout   Bracket   `json:"knockout" db:"knockout"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Set when a stored blob failed validation and was replaced by an empty view.
	Degraded bool `json:"degraded,omitempty" db:"-"`
}

type KnockoutDraw struct {
	ID        int       `json:"id" db:"id"`
	DrawName  string    `json:"draw_name" db:"draw_name"`
	Draw      Bracket   `json:"draw" db:"draw"`
	BestOf    []int     `json:"best_of" db:"best_of"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Degraded bool `json:"degraded,omitempty" db:"-"`
}

// DrawSummary is the list view of a stored draw.
type DrawSummary struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Start     string    `json:"start,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DecodeGroups validates a roundrobin blob at the load boundary.
func DecodeGroups(raw []byte) ([]Group, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Group{}, nil
	}
	var groups []Group
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, errors.Join(ErrDataShape, err)
	}
	for _, g := range groups {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// DecodeBracket validates a knockout blob at the load boundary.
func DecodeBracket(raw []byte) (Bracket, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Bracket{}, nil
	}
	var b Bracket
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, errors.Join(ErrDataShape, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeBestOf accepts both numbers and the numeric strings older draws stored.
func DecodeBestOf(raw []byte) ([]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []int{}, nil
	}
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Join(ErrDataShape, err)
	}
	out := make([]int, len(values))
	for i, v := range values {
		var n int
		if err := json.Unmarshal(v, &n); err == nil {
			out[i] = n
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, errors.Join(ErrDataShape, err)
		}
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Join(ErrDataShape, err)
		}
		out[i] = n
	}
	return out, nil
}
