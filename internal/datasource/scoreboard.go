package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
)

const scoreboardSourceName = "scoreboard"

// ScoreboardClient implements ResultsSource against an ESPN-style
// scoreboard API
type ScoreboardClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	sportID    string
	logger     *logrus.Logger
}

// scoreboardResponse mirrors the scoreboard JSON payload
type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string                 `json:"id"`
	Date         string                 `json:"date"`
	Competitions []scoreboardCompetition `json:"competitions"`
}

type scoreboardCompetition struct {
	Competitors []scoreboardCompetitor `json:"competitors"`
	Status      scoreboardStatus       `json:"status"`
}

type scoreboardStatus struct {
	Type struct {
		Completed bool `json:"completed"`
	} `json:"type"`
}

type scoreboardCompetitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		DisplayName string `json:"displayName"`
	} `json:"team"`
	Records []struct {
		Summary string `json:"summary"`
	} `json:"records"`
}

// NewScoreboardClient creates a new scoreboard results client
func NewScoreboardClient(httpClient *RateLimitedHTTPClient, baseURL, sportID string, logger *logrus.Logger) *ScoreboardClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &ScoreboardClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		sportID:    sportID,
		logger:     logger,
	}
}

// Name returns the name of the source
func (c *ScoreboardClient) Name() string {
	return scoreboardSourceName
}

// FetchResults retrieves game results for a single day
func (c *ScoreboardClient) FetchResults(ctx context.Context, day time.Time) ([]ResultRow, error) {
	url := fmt.Sprintf("%s/%s/scoreboard?dates=%s", c.baseURL, c.sportID, day.Format("20060102"))

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, models.NewSourceError(scoreboardSourceName, models.ErrCodeNetworkError, "scoreboard request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewSourceError(scoreboardSourceName, statusCode(resp.StatusCode),
			fmt.Sprintf("scoreboard returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewSourceError(scoreboardSourceName, models.ErrCodeNetworkError, "failed to read response body", err)
	}

	var payload scoreboardResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, models.NewSourceError(scoreboardSourceName, models.ErrCodeInvalidData, "failed to decode scoreboard payload", err)
	}

	date := day.Format(models.DateLayout)
	rows := make([]ResultRow, 0, len(payload.Events))
	for _, event := range payload.Events {
		row, ok := c.eventToRow(event, date)
		if !ok {
			c.logger.WithFields(logrus.Fields{"event_id": event.ID, "date": date}).
				Warn("Skipping scoreboard event without both sides")
			continue
		}
		rows = append(rows, row)
	}

	c.logger.WithFields(logrus.Fields{"date": date, "games": len(rows)}).Debug("Fetched scoreboard results")
	return rows, nil
}

func (c *ScoreboardClient) eventToRow(event scoreboardEvent, date string) (ResultRow, bool) {
	if len(event.Competitions) == 0 {
		return ResultRow{}, false
	}
	competition := event.Competitions[0]

	var home, away *scoreboardCompetitor
	for i := range competition.Competitors {
		competitor := &competition.Competitors[i]
		switch competitor.HomeAway {
		case "home":
			home = competitor
		case "away":
			away = competitor
		}
	}
	if home == nil || away == nil {
		return ResultRow{}, false
	}

	row := ResultRow{
		Date:       date,
		HomeTeam:   home.Team.DisplayName,
		AwayTeam:   away.Team.DisplayName,
		HomeRecord: firstRecord(home.Records),
		AwayRecord: firstRecord(away.Records),
	}

	// Scores stay nil until the game is final so an in-progress line
	// never looks settled.
	if competition.Status.Type.Completed {
		row.HomeScore = parseScore(home.Score)
		row.AwayScore = parseScore(away.Score)
	}
	return row, true
}

func firstRecord(records []struct {
	Summary string `json:"summary"`
}) *string {
	if len(records) == 0 || records[0].Summary == "" {
		return nil
	}
	summary := strings.Split(records[0].Summary, ",")[0]
	return &summary
}

func parseScore(raw string) *int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &value
}

func statusCode(status int) string {
	switch {
	case status == http.StatusTooManyRequests:
		return models.ErrCodeRateLimitExceeded
	case status == http.StatusNotFound:
		return models.ErrCodeNotFound
	case status >= 500:
		return models.ErrCodeServerError
	default:
		return models.ErrCodeInvalidData
	}
}
