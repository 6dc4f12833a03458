package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/cue-league/models"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	List(ctx context.Context, availableOnly bool) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateLeagueHandicap(ctx context.Context, exec SQLExecutor, name string, handicap int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, handicap, handicap_round, availability, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, handicap, handicap_round, availability)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Handicap,
		player.LeagueHandicap,
		player.Available,
	).Scan(&player.ID, &player.CreatedAt)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE name = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresPlayerRepository) List(ctx context.Context, availableOnly bool) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players`
	if availableOnly {
		query += ` WHERE availability = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := r.scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			name = $1,
			handicap = $2,
			handicap_round = $3,
			availability = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		player.Name,
		player.Handicap,
		player.LeagueHandicap,
		player.Available,
		player.ID,
	)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// UpdateLeagueHandicap sets handicap_round by name, the key draws refer to players by.
func (r *postgresPlayerRepository) UpdateLeagueHandicap(ctx context.Context, exec SQLExecutor, name string, handicap int) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `UPDATE players SET handicap_round = $1 WHERE name = $2`, handicap, name)
	if err != nil {
		return fmt.Errorf("failed to update league handicap for %q: %w", name, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.Name, &p.Handicap, &p.LeagueHandicap, &p.Available, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "players_name_key" {
		return ErrPlayerNameConflict
	}
	return err
}
