package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
)

const oddsSourceName = "odds_api"

// OddsAPIClient implements OddsSource against a The Odds API-style
// historical snapshot endpoint. For each game it takes the first
// bookmaker from the configured priority list that carries a quote.
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	sportKey   string
	region     string
	// snapshotHour picks the time of day the historical snapshot is taken at.
	snapshotHour int
	bookmakers   []string
	logger       *logrus.Logger
}

type oddsSnapshotResponse struct {
	Data []oddsGame `json:"data"`
}

type oddsGame struct {
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	CommenceTime string          `json:"commence_time"`
	Bookmakers   []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Point *float64         `json:"point"`
}

// NewOddsAPIClient creates a new odds snapshot client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, sportKey, region string, snapshotHour int, bookmakers []string, logger *logrus.Logger) *OddsAPIClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &OddsAPIClient{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		sportKey:     sportKey,
		region:       region,
		snapshotHour: snapshotHour,
		bookmakers:   bookmakers,
		logger:       logger,
	}
}

// Name returns the name of the source
func (c *OddsAPIClient) Name() string {
	return oddsSourceName
}

// FetchOdds retrieves the odds snapshot for a single day
func (c *OddsAPIClient) FetchOdds(ctx context.Context, day time.Time) ([]OddsRow, error) {
	snapshot := time.Date(day.Year(), day.Month(), day.Day(), c.snapshotHour, 0, 0, 0, time.UTC)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.region)
	params.Set("markets", "h2h,spreads,totals")
	params.Set("oddsFormat", "decimal")
	params.Set("date", snapshot.Format(time.RFC3339))

	endpoint := fmt.Sprintf("%s/v4/historical/sports/%s/odds?%s", c.baseURL, c.sportKey, params.Encode())

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, models.NewSourceError(oddsSourceName, models.ErrCodeNetworkError, "odds request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewSourceError(oddsSourceName, statusCode(resp.StatusCode),
			fmt.Sprintf("odds API returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewSourceError(oddsSourceName, models.ErrCodeNetworkError, "failed to read response body", err)
	}

	var payload oddsSnapshotResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, models.NewSourceError(oddsSourceName, models.ErrCodeInvalidData, "failed to decode odds payload", err)
	}

	rows := make([]OddsRow, 0, len(payload.Data))
	for _, game := range payload.Data {
		if row, ok := c.gameToRow(game); ok {
			rows = append(rows, row)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"date":  day.Format(models.DateLayout),
		"games": len(payload.Data),
		"rows":  len(rows),
	}).Debug("Fetched odds snapshot")

	return rows, nil
}

// gameToRow picks the first bookmaker in priority order carrying a quote.
// Games with no quote from any prioritized bookmaker are omitted.
func (c *OddsAPIClient) gameToRow(game oddsGame) (OddsRow, bool) {
	byKey := make(map[string]*oddsBookmaker, len(game.Bookmakers))
	for i := range game.Bookmakers {
		byKey[game.Bookmakers[i].Key] = &game.Bookmakers[i]
	}

	for _, key := range c.bookmakers {
		book, ok := byKey[key]
		if !ok {
			continue
		}

		row := OddsRow{
			Date:      gameDate(game.CommenceTime),
			HomeTeam:  game.HomeTeam,
			AwayTeam:  game.AwayTeam,
			Bookmaker: book.Title,
		}
		for _, market := range book.Markets {
			c.applyMarket(&row, market, game.HomeTeam, game.AwayTeam)
		}
		return row, true
	}
	return OddsRow{}, false
}

func (c *OddsAPIClient) applyMarket(row *OddsRow, market oddsMarket, home, away string) {
	switch market.Key {
	case "h2h":
		for _, outcome := range market.Outcomes {
			switch outcome.Name {
			case home:
				row.MLHome = outcome.Price
			case away:
				row.MLAway = outcome.Price
			}
		}
	case "spreads":
		for _, outcome := range market.Outcomes {
			switch outcome.Name {
			case home:
				row.SpreadHome = outcome.Point
				row.SpreadHomeOdds = outcome.Price
			case away:
				row.SpreadAway = outcome.Point
				row.SpreadAwayOdds = outcome.Price
			}
		}
	case "totals":
		for _, outcome := range market.Outcomes {
			if strings.Contains(outcome.Name, "Over") {
				row.TotalLine = outcome.Point
				row.OverOdds = outcome.Price
			} else if strings.Contains(outcome.Name, "Under") {
				row.UnderOdds = outcome.Price
			}
		}
	}
}

// gameDate extracts the calendar day from an RFC3339 commence time
func gameDate(commenceTime string) string {
	if len(commenceTime) >= 10 {
		return commenceTime[:10]
	}
	return commenceTime
}
