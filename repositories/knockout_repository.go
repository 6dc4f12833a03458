package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/cue-league/models"
)

var ErrKnockoutDrawNotFound = errors.New("knockout draw not found")

// KnockoutRecord is a knockoutdraw row with its blobs left undecoded.
type KnockoutRecord struct {
	ID        int
	DrawName  string
	Draw      json.RawMessage
	BestOf    json.RawMessage
	CreatedAt time.Time
}

type KnockoutRepository interface {
	Create(ctx context.Context, record *KnockoutRecord) error
	GetByID(ctx context.Context, id int) (*KnockoutRecord, error)
	Latest(ctx context.Context) (*KnockoutRecord, error)
	List(ctx context.Context) ([]models.DrawSummary, error)
	UpdateDraw(ctx context.Context, id int, draw json.RawMessage) error
}

type postgresKnockoutRepository struct {
	db *sql.DB
}

func NewPostgresKnockoutRepository(db *sql.DB) KnockoutRepository {
	return &postgresKnockoutRepository{db: db}
}

func (r *postgresKnockoutRepository) Create(ctx context.Context, record *KnockoutRecord) error {
	query := `
		INSERT INTO knockoutdraw (draw_name, draw, best_of)
		VALUES ($1, $2::jsonb, $3::jsonb)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		record.DrawName,
		jsonbParam(record.Draw),
		jsonbParam(record.BestOf),
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert knockout draw: %w", err)
	}
	return nil
}

func (r *postgresKnockoutRepository) GetByID(ctx context.Context, id int) (*KnockoutRecord, error) {
	query := `SELECT id, draw_name, draw, best_of, created_at FROM knockoutdraw WHERE id = $1`
	return r.scanRecord(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresKnockoutRepository) Latest(ctx context.Context) (*KnockoutRecord, error) {
	query := `SELECT id, draw_name, draw, best_of, created_at FROM knockoutdraw ORDER BY created_at DESC, id DESC LIMIT 1`
	return r.scanRecord(r.db.QueryRowContext(ctx, query))
}

func (r *postgresKnockoutRepository) List(ctx context.Context) ([]models.DrawSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, draw_name, created_at FROM knockoutdraw ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query knockout draws: %w", err)
	}
	defer rows.Close()

	draws := make([]models.DrawSummary, 0)
	for rows.Next() {
		var d models.DrawSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan knockout summary: %w", err)
		}
		draws = append(draws, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating knockout rows: %w", err)
	}
	return draws, nil
}

func (r *postgresKnockoutRepository) UpdateDraw(ctx context.Context, id int, draw json.RawMessage) error {
	result, err := r.db.ExecContext(ctx, `UPDATE knockoutdraw SET draw = $1::jsonb WHERE id = $2`, jsonbParam(draw), id)
	if err != nil {
		return fmt.Errorf("failed to update knockout draw: %w", err)
	}
	return checkAffectedRows(result, ErrKnockoutDrawNotFound)
}

func (r *postgresKnockoutRepository) scanRecord(row rowScanner) (*KnockoutRecord, error) {
	var rec KnockoutRecord
	var draw, bestOf []byte
	if err := row.Scan(&rec.ID, &rec.DrawName, &draw, &bestOf, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKnockoutDrawNotFound
		}
		return nil, fmt.Errorf("failed to scan knockout draw: %w", err)
	}
	rec.Draw = draw
	rec.BestOf = bestOf
	return &rec, nil
}
