package models

import "time"

// MatchRecord is a flat knockout result row used for player statistics.
type MatchRecord struct {
	ID           int       `json:"id" db:"id"`
	DrawID       int       `json:"drawid" db:"drawid"`
	Round        int       `json:"round" db:"round"`
	Player1ID    int       `json:"player1id" db:"player1id"`
	Player2ID    int       `json:"player2id" db:"player2id"`
	Player1Score int       `json:"player1score" db:"player1score"`
	Player2Score int       `json:"player2score" db:"player2score"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type PlayerStats struct {
	PlayerID      int    `json:"player_id"`
	Name          string `json:"name"`
	Handicap      int    `json:"handicap"`
	MatchesPlayed int    `json:"matches_played"`
	MatchWins     int    `json:"match_wins"`
	MatchLosses   int    `json:"match_losses"`
	FramesWon     int    `json:"frames_won"`
	FramesLost    int    `json:"frames_lost"`
	FramesPlayed  int    `json:"frames_played"`
}
