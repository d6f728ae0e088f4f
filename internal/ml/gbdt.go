package ml

import (
	"errors"
	"math"
	"math/rand"
)

// GBDTParams configures gradient boosted training.
type GBDTParams struct {
	Rounds              int     // maximum boosting rounds
	LearningRate        float64 // shrinkage applied to every tree
	MaxDepth            int
	MinSamplesLeaf      int
	Subsample           float64 // fraction of rows sampled per round
	ColSample           float64 // fraction of columns sampled per round
	EarlyStoppingRounds int     // stop after this many rounds without validation improvement (0 = off)
	Seed                int64
}

// DefaultGBDTParams mirrors the production training configuration:
// 200 rounds, depth 5, learning rate 0.1, 0.8 row/column subsampling,
// early stopping with patience 20.
func DefaultGBDTParams() GBDTParams {
	return GBDTParams{
		Rounds:              200,
		LearningRate:        0.1,
		MaxDepth:            5,
		MinSamplesLeaf:      2,
		Subsample:           0.8,
		ColSample:           0.8,
		EarlyStoppingRounds: 20,
		Seed:                42,
	}
}

// GBDTRegressor is a gradient boosted ensemble of regression trees fitted
// on squared error. Immutable once trained; safe for concurrent Predict.
type GBDTRegressor struct {
	Base         float64           `json:"base"`
	LearningRate float64           `json:"learning_rate"`
	Trees        []*RegressionTree `json:"trees"`
	Gains        []float64         `json:"gains"` // per-feature split gain over kept trees
	BestRound    int               `json:"best_round"`
}

// TrainGBDT fits the ensemble on the training split, monitoring RMSE on the
// validation split for early stopping. All randomness comes from the seeded
// source in params, so identical inputs give identical models.
func TrainGBDT(x [][]float64, y []float64, valX [][]float64, valY []float64, params GBDTParams) (*GBDTRegressor, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, errors.New("training matrix and targets must be non-empty and the same length")
	}
	if params.Rounds <= 0 || params.LearningRate <= 0 {
		return nil, errors.New("rounds and learning rate must be positive")
	}

	cols := len(x[0])
	rng := rand.New(rand.NewSource(params.Seed))

	model := &GBDTRegressor{
		Base:         meanAll(y),
		LearningRate: params.LearningRate,
	}

	pred := constSlice(len(y), model.Base)
	valPred := constSlice(len(valY), model.Base)

	rowCount := int(params.Subsample * float64(len(x)))
	if rowCount < 1 || rowCount > len(x) {
		rowCount = len(x)
	}
	colCount := int(params.ColSample * float64(cols))
	if colCount < 1 || colCount > cols {
		colCount = cols
	}

	residuals := make([]float64, len(y))
	roundGains := make([][]float64, 0, params.Rounds)

	bestRMSE := math.Inf(1)
	bestRound := 0
	sinceImproved := 0

	for round := 0; round < params.Rounds; round++ {
		for i := range y {
			residuals[i] = y[i] - pred[i]
		}

		samples := rng.Perm(len(x))[:rowCount]
		features := rng.Perm(cols)[:colCount]

		builder := &treeBuilder{
			x:              x,
			y:              residuals,
			features:       features,
			maxDepth:       params.MaxDepth,
			minSamplesLeaf: params.MinSamplesLeaf,
			gains:          make([]float64, cols),
		}
		tree := builder.build(samples)

		model.Trees = append(model.Trees, tree)
		roundGains = append(roundGains, builder.gains)

		for i := range pred {
			pred[i] += params.LearningRate * tree.Predict(x[i])
		}

		if len(valY) == 0 {
			bestRound = round + 1
			continue
		}

		for i := range valPred {
			valPred[i] += params.LearningRate * tree.Predict(valX[i])
		}

		rmse := RMSE(valY, valPred)
		if rmse < bestRMSE {
			bestRMSE = rmse
			bestRound = round + 1
			sinceImproved = 0
		} else {
			sinceImproved++
			if params.EarlyStoppingRounds > 0 && sinceImproved >= params.EarlyStoppingRounds {
				break
			}
		}
	}

	// Keep only the trees up to the best validation round.
	model.Trees = model.Trees[:bestRound]
	model.BestRound = bestRound
	model.Gains = make([]float64, cols)
	for _, g := range roundGains[:bestRound] {
		for j, v := range g {
			model.Gains[j] += v
		}
	}

	return model, nil
}

// Predict returns the ensemble prediction for one feature vector.
func (m *GBDTRegressor) Predict(row []float64) float64 {
	out := m.Base
	for _, tree := range m.Trees {
		out += m.LearningRate * tree.Predict(row)
	}
	return out
}

// FeatureImportance returns normalized split gains keyed by feature name.
func (m *GBDTRegressor) FeatureImportance(names []string) map[string]float64 {
	var total float64
	for _, g := range m.Gains {
		total += g
	}

	out := make(map[string]float64, len(names))
	for j, name := range names {
		if j >= len(m.Gains) {
			break
		}
		if total > 0 {
			out[name] = m.Gains[j] / total
		} else {
			out[name] = 0
		}
	}
	return out
}

func meanAll(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var sum float64
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}

func constSlice(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
