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

var ErrRoundRobinDrawNotFound = errors.New("round robin draw not found")

// RoundRobinRecord is a roundrobin row with its blobs left undecoded.
type RoundRobinRecord struct {
	ID         int
	Name       string
	Start      string
	RoundRobin json.RawMessage
	Knockout   json.RawMessage
	CreatedAt  time.Time
}

type RoundRobinRepository interface {
	Create(ctx context.Context, record *RoundRobinRecord) error
	GetByID(ctx context.Context, id int) (*RoundRobinRecord, error)
	List(ctx context.Context) ([]models.DrawSummary, error)
	UpdateRoundRobin(ctx context.Context, id int, groups json.RawMessage) error
	UpdateKnockout(ctx context.Context, id int, knockout json.RawMessage) error
}

type postgresRoundRobinRepository struct {
	db *sql.DB
}

func NewPostgresRoundRobinRepository(db *sql.DB) RoundRobinRepository {
	return &postgresRoundRobinRepository{db: db}
}

func (r *postgresRoundRobinRepository) Create(ctx context.Context, record *RoundRobinRecord) error {
	query := `
		INSERT INTO roundrobin (name, start, roundrobin, knockout)
		VALUES ($1, $2::date, $3::jsonb, $4::jsonb)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		record.Name,
		record.Start,
		jsonbParam(record.RoundRobin),
		jsonbParam(record.Knockout),
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert round robin draw: %w", err)
	}
	return nil
}

func (r *postgresRoundRobinRepository) GetByID(ctx context.Context, id int) (*RoundRobinRecord, error) {
	query := `
		SELECT id, name, to_char(start, 'YYYY-MM-DD'), roundrobin, knockout, created_at
		FROM roundrobin
		WHERE id = $1`

	var rec RoundRobinRecord
	var groups, knockout []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.Name, &rec.Start, &groups, &knockout, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundRobinDrawNotFound
		}
		return nil, fmt.Errorf("failed to scan round robin draw: %w", err)
	}
	rec.RoundRobin = groups
	rec.Knockout = knockout
	return &rec, nil
}

func (r *postgresRoundRobinRepository) List(ctx context.Context) ([]models.DrawSummary, error) {
	query := `
		SELECT id, name, to_char(start, 'YYYY-MM-DD'), created_at
		FROM roundrobin
		ORDER BY start DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query round robin draws: %w", err)
	}
	defer rows.Close()

	draws := make([]models.DrawSummary, 0)
	for rows.Next() {
		var d models.DrawSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.Start, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round robin summary: %w", err)
		}
		draws = append(draws, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round robin rows: %w", err)
	}
	return draws, nil
}

func (r *postgresRoundRobinRepository) UpdateRoundRobin(ctx context.Context, id int, groups json.RawMessage) error {
	result, err := r.db.ExecContext(ctx, `UPDATE roundrobin SET roundrobin = $1::jsonb WHERE id = $2`, jsonbParam(groups), id)
	if err != nil {
		return fmt.Errorf("failed to update round robin groups: %w", err)
	}
	return checkAffectedRows(result, ErrRoundRobinDrawNotFound)
}

func (r *postgresRoundRobinRepository) UpdateKnockout(ctx context.Context, id int, knockout json.RawMessage) error {
	result, err := r.db.ExecContext(ctx, `UPDATE roundrobin SET knockout = $1::jsonb WHERE id = $2`, jsonbParam(knockout), id)
	if err != nil {
		return fmt.Errorf("failed to update round robin knockout: %w", err)
	}
	return checkAffectedRows(result, ErrRoundRobinDrawNotFound)
}
