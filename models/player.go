package models

import "time"

type Player struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Handicap       int       `json:"handicap" db:"handicap"`
	LeagueHandicap int       `json:"handicap_round" db:"handicap_round"` // carried between round-robin draws
	Available      bool      `json:"availability" db:"availability"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ByeName is the synthetic opponent padded into odd-sized round-robin groups.
const ByeName = "Bye"

func IsBye(name string) bool {
	return name == ByeName
}
