package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
)

// csvColumns is the persisted column order: key and result columns first,
// odds columns appended, prediction columns last
var csvColumns = []string{
	"game_date", "home_team", "away_team",
	"home_record", "away_record", "home_score", "away_score",
	"bookmaker", "ml_home", "ml_away",
	"spread_home", "spread_home_odds", "spread_away", "spread_away_odds",
	"total_line", "over_odds", "under_odds",
	"ats_pick", "ats_confidence", "ats_fireballs",
	"total_pick", "total_confidence", "total_fireballs",
}

var keyColumns = []string{"game_date", "home_team", "away_team"}

// CSVStore persists a game table as a single CSV file. Saves go through
// a temp file in the same directory followed by a rename.
type CSVStore struct {
	path   string
	logger *logrus.Logger
}

// NewCSVStore creates a CSV-backed store at the given path
func NewCSVStore(path string, logger *logrus.Logger) *CSVStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVStore{path: path, logger: logger}
}

// Load reads the whole table. A missing file loads as an empty table;
// a header without the three key columns is a SchemaError.
func (s *CSVStore) Load(ctx context.Context) ([]*models.Game, error) {
	_ = ctx
	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.logger.WithField("path", s.path).Info("No persisted table found, starting fresh")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", s.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	var missing []string
	for _, name := range keyColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, models.NewSchemaError(filepath.Base(s.path), missing...)
	}

	games := make([]*models.Game, 0, len(records)-1)
	for _, record := range records[1:] {
		games = append(games, decodeGame(record, index))
	}

	s.logger.WithFields(logrus.Fields{"path": s.path, "rows": len(games)}).Info("Loaded persisted table")
	return games, nil
}

// Save atomically replaces the persisted table
func (s *CSVStore) Save(ctx context.Context, games []*models.Game) error {
	_ = ctx
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(csvColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, game := range games {
		if err := writer.Write(encodeGame(game)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp table: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace table %s: %w", s.path, err)
	}

	s.logger.WithFields(logrus.Fields{"path": s.path, "rows": len(games)}).Info("Saved table")
	return nil
}

func encodeGame(game *models.Game) []string {
	return []string{
		game.Date, game.HomeTeam, game.AwayTeam,
		stringValue(game.HomeRecord), stringValue(game.AwayRecord),
		intValue(game.HomeScore), intValue(game.AwayScore),
		stringValue(game.Bookmaker),
		floatValue(game.MLHome), floatValue(game.MLAway),
		floatValue(game.SpreadHome), floatValue(game.SpreadHomeOdds),
		floatValue(game.SpreadAway), floatValue(game.SpreadAwayOdds),
		floatValue(game.TotalLine), floatValue(game.OverOdds), floatValue(game.UnderOdds),
		pickValue(game.ATSPick), floatValue(game.ATSConfidence), intValue(game.ATSFireballs),
		pickValue(game.TotalPick), floatValue(game.TotalConfidence), intValue(game.TotalFireballs),
	}
}

func decodeGame(record []string, index map[string]int) *models.Game {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	return &models.Game{
		Date:            field("game_date"),
		HomeTeam:        field("home_team"),
		AwayTeam:        field("away_team"),
		HomeRecord:      parseString(field("home_record")),
		AwayRecord:      parseString(field("away_record")),
		HomeScore:       parseInt(field("home_score")),
		AwayScore:       parseInt(field("away_score")),
		Bookmaker:       parseString(field("bookmaker")),
		MLHome:          parseFloat(field("ml_home")),
		MLAway:          parseFloat(field("ml_away")),
		SpreadHome:      parseFloat(field("spread_home")),
		SpreadHomeOdds:  parseFloat(field("spread_home_odds")),
		SpreadAway:      parseFloat(field("spread_away")),
		SpreadAwayOdds:  parseFloat(field("spread_away_odds")),
		TotalLine:       parseFloat(field("total_line")),
		OverOdds:        parseFloat(field("over_odds")),
		UnderOdds:       parseFloat(field("under_odds")),
		ATSPick:         parsePick(field("ats_pick")),
		ATSConfidence:   parseFloat(field("ats_confidence")),
		ATSFireballs:    parseInt(field("ats_fireballs")),
		TotalPick:       parsePick(field("total_pick")),
		TotalConfidence: parseFloat(field("total_confidence")),
		TotalFireballs:  parseInt(field("total_fireballs")),
	}
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func pickValue(v *models.Pick) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func parseString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

func parseInt(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parsePick(raw string) *models.Pick {
	if raw == "" {
		return nil
	}
	pick := models.Pick(raw)
	return &pick
}
