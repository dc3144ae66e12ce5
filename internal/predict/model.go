package predict

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
)

// versionNamespace is the UUIDv5 namespace for content-derived model versions.
var versionNamespace = uuid.MustParse("b6f1a9d2-4c83-4e6f-9f0a-2d5c7e8b1a64")

// Training hyperparameters. Full-batch gradient descent is plenty for a
// season's worth of games.
const (
	trainEpochs       = 400
	trainLearningRate = 0.1
	trainL2Penalty    = 1e-4
)

// classesByMarket maps each market to its (negative, positive) classes.
// Push is never a class; push rows are excluded before encoding.
var classesByMarket = map[models.Market][2]models.Pick{
	models.MarketATS:   {models.PickAway, models.PickHome},
	models.MarketTotal: {models.PickUnder, models.PickOver},
}

// Model is a trained binary classifier for one market: a logistic
// regression over a feature schema frozen at fit time, together with the
// standardization statistics of the training matrix. It is an explicit
// value; Fit returns it and Score receives it, nothing is held globally.
// Version is derived from the training content, so refitting on an
// unchanged training set yields the same version and cached predictions
// stay valid across scheduled runs.
type Model struct {
	Market      models.Market  `json:"market"`
	Version     string         `json:"version"`
	TrainedAt   time.Time      `json:"trained_at"`
	TrainedRows int            `json:"trained_rows"`
	Features    []string       `json:"features"`
	Means       []float64      `json:"means"`
	Stds        []float64      `json:"stds"`
	Weights     []float64      `json:"weights"`
	Bias        float64        `json:"bias"`
	Classes     [2]models.Pick `json:"classes"`
}

// Fit trains a classifier for the given market on the training subset.
// Rows whose outcome for this market is a push or undefined are excluded,
// as are rows missing any schema feature: values are never zero-filled
// during training. Returns ErrInsufficientData when nothing survives.
func Fit(market models.Market, training []*models.Game, logger *logrus.Logger) (*Model, error) {
	if logger == nil {
		logger = logrus.New()
	}
	classes, ok := classesByMarket[market]
	if !ok {
		return nil, fmt.Errorf("unknown market: %s", market)
	}

	features := FeatureNames()
	var matrix [][]float64
	var labels []float64
	var rowKeys []string
	pushes, incomplete := 0, 0

	for _, game := range training {
		outcome, defined := game.Outcome(market)
		if !defined {
			continue
		}
		if outcome == models.OutcomePush {
			pushes++
			continue
		}
		vector, missing := featureVector(game, features)
		if len(missing) > 0 {
			incomplete++
			continue
		}
		matrix = append(matrix, vector)
		labels = append(labels, encodeLabel(outcome, classes))
		rowKeys = append(rowKeys, game.Key().String())
	}

	logger.WithFields(logrus.Fields{
		"market":            market,
		"candidates":        len(training),
		"excluded_push":     pushes,
		"excluded_no_feats": incomplete,
		"trained_rows":      len(matrix),
	}).Info("Prepared training matrix")

	if len(matrix) == 0 {
		return nil, fmt.Errorf("market %s: %w", market, models.ErrInsufficientData)
	}

	means, stds := standardizeStats(matrix)
	standardized := standardize(matrix, means, stds)
	weights, bias := trainLogistic(standardized, labels)

	return &Model{
		Market:      market,
		Version:     modelVersion(market, features, rowKeys, matrix, labels),
		TrainedAt:   time.Now().UTC(),
		TrainedRows: len(matrix),
		Features:    features,
		Means:       means,
		Stds:        stds,
		Weights:     weights,
		Bias:        bias,
		Classes:     classes,
	}, nil
}

// Score classifies one game. Missing feature values default to zero
// before standardization, an explicit policy applied only here and
// logged; a game with no feature values at all is not scorable and
// returns false.
func (m *Model) Score(game *models.Game, logger *logrus.Logger) (models.Pick, float64, bool) {
	if logger == nil {
		logger = logrus.New()
	}
	vector, missing := featureVector(game, m.Features)
	if len(missing) == len(m.Features) {
		return "", 0, false
	}
	if len(missing) > 0 {
		logger.WithFields(logrus.Fields{
			"market":  m.Market,
			"game":    game.Key().String(),
			"missing": missing,
		}).Debug("Zero-filling missing features at inference")
	}

	z := m.Bias
	for i, value := range vector {
		std := m.Stds[i]
		if std == 0 {
			std = 1
		}
		z += m.Weights[i] * ((value - m.Means[i]) / std)
	}

	positive := sigmoid(z)
	if positive >= 0.5 {
		return m.Classes[1], positive, true
	}
	return m.Classes[0], 1 - positive, true
}

// modelVersion fingerprints the training input as a UUIDv5. Training is
// deterministic, so an identical input set always yields an identical
// version.
func modelVersion(market models.Market, features, rowKeys []string, matrix [][]float64, labels []float64) string {
	var buf bytes.Buffer
	buf.WriteString(string(market))
	for _, name := range features {
		buf.WriteByte(0)
		buf.WriteString(name)
	}
	for i, key := range rowKeys {
		fmt.Fprintf(&buf, "\x00%s|%.0f", key, labels[i])
		for _, value := range matrix[i] {
			fmt.Fprintf(&buf, ",%g", value)
		}
	}
	return uuid.NewSHA1(versionNamespace, buf.Bytes()).String()
}

func encodeLabel(outcome models.Outcome, classes [2]models.Pick) float64 {
	if classes[1].Agrees(outcome) {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// standardizeStats computes per-column mean and standard deviation
func standardizeStats(matrix [][]float64) ([]float64, []float64) {
	cols := len(matrix[0])
	means := make([]float64, cols)
	stds := make([]float64, cols)

	for j := 0; j < cols; j++ {
		sum := 0.0
		for _, row := range matrix {
			sum += row[j]
		}
		means[j] = sum / float64(len(matrix))

		variance := 0.0
		for _, row := range matrix {
			diff := row[j] - means[j]
			variance += diff * diff
		}
		stds[j] = math.Sqrt(variance / float64(len(matrix)))
	}
	return means, stds
}

func standardize(matrix [][]float64, means, stds []float64) [][]float64 {
	result := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled := make([]float64, len(row))
		for j, value := range row {
			std := stds[j]
			if std == 0 {
				std = 1
			}
			scaled[j] = (value - means[j]) / std
		}
		result[i] = scaled
	}
	return result
}

// trainLogistic fits logistic regression weights by full-batch gradient
// descent with a small L2 penalty
func trainLogistic(matrix [][]float64, labels []float64) ([]float64, float64) {
	cols := len(matrix[0])
	weights := make([]float64, cols)
	bias := 0.0
	n := float64(len(matrix))

	for epoch := 0; epoch < trainEpochs; epoch++ {
		gradW := make([]float64, cols)
		gradB := 0.0

		for i, row := range matrix {
			z := bias
			for j, value := range row {
				z += weights[j] * value
			}
			residual := sigmoid(z) - labels[i]
			for j, value := range row {
				gradW[j] += residual * value
			}
			gradB += residual
		}

		for j := range weights {
			weights[j] -= trainLearningRate * (gradW[j]/n + trainL2Penalty*weights[j])
		}
		bias -= trainLearningRate * (gradB / n)
	}

	return weights, bias
}
