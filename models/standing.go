package models

import "strconv"

// Standing is derived from a group's matches and never stored.
type Standing struct {
	Name         string  `json:"name"`
	Handicap     int     `json:"handicap"`
	TotalWin     int     `json:"totalwin"`
	TotalLoss    int     `json:"totalloss"`
	Tie          int     `json:"tie"`
	HighestBreak int     `json:"highestBreak"`
	Frames       [][]int `json:"frames"`
	Breaks       [][]int `json:"breaks"`
}

// DisplayName renders "name [handicap]" the way draws show players.
func (s Standing) DisplayName() string {
	return s.Name + " [" + strconv.Itoa(s.Handicap) + "]"
}

// GroupStandings pairs a group index with its ordered standings.
type GroupStandings struct {
	Group     int        `json:"group"`
	Standings []Standing `json:"standings"`
}
