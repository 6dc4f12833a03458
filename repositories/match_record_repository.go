package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/cue-league/models"
)

var ErrMatchRecordInvalid = errors.New("match record references an unknown draw or player")

type MatchRecordRepository interface {
	// ReplaceForDraw swaps every stored result of a draw for records in one transaction.
	ReplaceForDraw(ctx context.Context, drawID int, records []models.MatchRecord) error
	List(ctx context.Context) ([]models.MatchRecord, error)
}

type postgresMatchRecordRepository struct {
	db *sql.DB
}

func NewPostgresMatchRecordRepository(db *sql.DB) MatchRecordRepository {
	return &postgresMatchRecordRepository{db: db}
}

func (r *postgresMatchRecordRepository) ReplaceForDraw(ctx context.Context, drawID int, records []models.MatchRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM matches WHERE drawid = $1`, drawID); err != nil {
		return fmt.Errorf("failed to clear results of draw %d: %w", drawID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (drawid, round, player1id, player2id, player1score, player2score)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err = stmt.ExecContext(ctx, drawID, rec.Round, rec.Player1ID, rec.Player2ID, rec.Player1Score, rec.Player2Score)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23503" {
				err = ErrMatchRecordInvalid
				return err
			}
			return fmt.Errorf("failed to insert result for round %d: %w", rec.Round, err)
		}
	}
	return nil
}

func (r *postgresMatchRecordRepository) List(ctx context.Context) ([]models.MatchRecord, error) {
	query := `
		SELECT id, drawid, round, player1id, player2id, player1score, player2score, created_at
		FROM matches
		ORDER BY drawid, round, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query match records: %w", err)
	}
	defer rows.Close()

	records := make([]models.MatchRecord, 0)
	for rows.Next() {
		var m models.MatchRecord
		if err := rows.Scan(&m.ID, &m.DrawID, &m.Round, &m.Player1ID, &m.Player2ID, &m.Player1Score, &m.Player2Score, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		records = append(records, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match records: %w", err)
	}
	return records, nil
}
