// Package repository provides PostgreSQL persistence for the unified
// game table.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/fireball-picks/internal/database"
	"github.com/yourusername/fireball-picks/internal/models"
)

const gameColumns = `game_date, home_team, away_team, home_record, away_record,
	home_score, away_score, bookmaker, ml_home, ml_away,
	spread_home, spread_home_odds, spread_away, spread_away_odds,
	total_line, over_odds, under_odds,
	ats_pick, ats_confidence, ats_fireballs,
	total_pick, total_confidence, total_fireballs`

// GameRepository implements storage.Store on PostgreSQL. Save replaces
// the whole table inside one transaction, keeping the
// read-entire/compute/write-entire discipline of the file store.
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Load reads the entire persisted game table
func (r *GameRepository) Load(ctx context.Context) ([]*models.Game, error) {
	query := fmt.Sprintf("SELECT %s FROM games ORDER BY game_date, away_team, home_team", gameColumns)

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}

// Save atomically replaces the persisted game table
func (r *GameRepository) Save(ctx context.Context, games []*models.Game) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE games"); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}

	insert := fmt.Sprintf(`INSERT INTO games (%s) VALUES
		($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`, gameColumns)

	for _, game := range games {
		date, err := game.ParseDate()
		if err != nil {
			return fmt.Errorf("game %s: %w", game.Key(), err)
		}
		if _, err := tx.Exec(ctx, insert,
			date, game.HomeTeam, game.AwayTeam, game.HomeRecord, game.AwayRecord,
			game.HomeScore, game.AwayScore, game.Bookmaker, game.MLHome, game.MLAway,
			game.SpreadHome, game.SpreadHomeOdds, game.SpreadAway, game.SpreadAwayOdds,
			game.TotalLine, game.OverOdds, game.UnderOdds,
			game.ATSPick, game.ATSConfidence, game.ATSFireballs,
			game.TotalPick, game.TotalConfidence, game.TotalFireballs,
		); err != nil {
			return fmt.Errorf("failed to insert game %s: %w", game.Key(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit games: %w", err)
	}
	return nil
}

// GetByDateRange retrieves games within a date range, inclusive
func (r *GameRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games
		WHERE game_date >= $1 AND game_date <= $2
		ORDER BY game_date, away_team, home_team`, gameColumns)

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date range: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}

func scanGame(rows pgx.Rows) (*models.Game, error) {
	game := &models.Game{}
	var date time.Time
	err := rows.Scan(
		&date, &game.HomeTeam, &game.AwayTeam, &game.HomeRecord, &game.AwayRecord,
		&game.HomeScore, &game.AwayScore, &game.Bookmaker, &game.MLHome, &game.MLAway,
		&game.SpreadHome, &game.SpreadHomeOdds, &game.SpreadAway, &game.SpreadAwayOdds,
		&game.TotalLine, &game.OverOdds, &game.UnderOdds,
		&game.ATSPick, &game.ATSConfidence, &game.ATSFireballs,
		&game.TotalPick, &game.TotalConfidence, &game.TotalFireballs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	game.Date = date.Format(models.DateLayout)
	return game, nil
}
