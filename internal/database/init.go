package database

import (
	"context"
	"fmt"
)

// gamesSchema creates the unified game table. Prediction columns live on
// the same row as the game so they are replaced together on every run.
const gamesSchema = `
CREATE TABLE IF NOT EXISTS games (
	game_date        date NOT NULL,
	home_team        text NOT NULL,
	away_team        text NOT NULL,
	home_record      text,
	away_record      text,
	home_score       integer,
	away_score       integer,
	bookmaker        text,
	ml_home          double precision,
	ml_away          double precision,
	spread_home      double precision,
	spread_home_odds double precision,
	spread_away      double precision,
	spread_away_odds double precision,
	total_line       double precision,
	over_odds        double precision,
	under_odds       double precision,
	ats_pick         text,
	ats_confidence   double precision,
	ats_fireballs    integer,
	total_pick       text,
	total_confidence double precision,
	total_fireballs  integer,
	PRIMARY KEY (game_date, home_team, away_team)
);
CREATE INDEX IF NOT EXISTS idx_games_date ON games (game_date);
`

// InitSchema creates the tables used by the pipeline if they do not exist
func InitSchema(ctx context.Context, db *DB) error {
	if _, err := db.GetPool().Exec(ctx, gamesSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
