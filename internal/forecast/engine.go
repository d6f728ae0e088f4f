package forecast

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/JDeep1234/airwise/internal/aqi"
	"github.com/JDeep1234/airwise/internal/ml"
	"github.com/google/uuid"
)

// Forecast horizons. The hourly view is a prefix of the same recursion, not
// a separate model.
const (
	HorizonDaily  = 168 // 7 days
	HorizonHourly = 24
)

// Metrics are the held-out validation quality numbers of a training run.
type Metrics struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// TrainingReport summarizes a successful training run.
type TrainingReport struct {
	ModelID           string             `json:"model_id"`
	TrainedAt         time.Time          `json:"trained_at"`
	Rows              int                `json:"rows"`
	TrainRows         int                `json:"train_rows"`
	ValidationRows    int                `json:"validation_rows"`
	BestRound         int                `json:"best_round"`
	Metrics           Metrics            `json:"metrics"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// Engine owns the model/scaler pair and runs training and recursive
// forecasting. The pair is swapped atomically: concurrent forecasts see the
// previous pair in full or the new one in full, never a mix.
type Engine struct {
	store  *ModelStore
	params ml.GBDTParams
	curve  PM25Curve

	pair atomic.Pointer[ModelPair]
}

// Option customizes an Engine.
type Option func(*Engine)

// WithCurve selects the AQI-to-PM2.5 derivation curve.
func WithCurve(curve PM25Curve) Option {
	return func(e *Engine) { e.curve = curve }
}

// WithParams overrides the boosting configuration.
func WithParams(params ml.GBDTParams) Option {
	return func(e *Engine) { e.params = params }
}

// NewEngine creates an Engine backed by the given model store.
func NewEngine(store *ModelStore, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		params: ml.DefaultGBDTParams(),
		curve:  CurveStandard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadPersisted attempts to restore a previously trained pair from disk.
// It reports whether a pair is now loaded.
func (e *Engine) LoadPersisted() bool {
	pair, ok := e.store.Load()
	if !ok {
		return false
	}
	e.pair.Store(pair)
	return true
}

// StoreDir reports where model artifacts are persisted.
func (e *Engine) StoreDir() string {
	return e.store.Dir()
}

// Loaded reports whether a trained pair is available.
func (e *Engine) Loaded() bool {
	return e.pair.Load() != nil
}

// Meta returns the metadata of the loaded pair, if any.
func (e *Engine) Meta() (ModelMeta, bool) {
	pair := e.pair.Load()
	if pair == nil {
		return ModelMeta{}, false
	}
	return pair.Meta, true
}

// Train fits a new model/scaler pair on the historical series, persists it,
// and swaps it in. On any failure the previously loaded pair stays active
// and persisted state is untouched.
func (e *Engine) Train(obs []aqi.Observation) (*TrainingReport, error) {
	table, err := BuildTrainingTable(obs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTraining, err)
	}

	rows := len(table.X)
	valRows := rows / 5 // chronological 80/20 split
	trainRows := rows - valRows
	if rows == 0 || valRows == 0 {
		return nil, fmt.Errorf("%w: %d usable rows from %d observations (need more than %d observations)",
			ErrInsufficientData, rows, len(obs), MinHistory())
	}

	trainX, valX := table.X[:trainRows], table.X[trainRows:]
	trainY, valY := table.Y[:trainRows], table.Y[trainRows:]

	scaler := &ml.StandardScaler{}
	if err := scaler.Fit(trainX); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTraining, err)
	}
	scaledTrain, err := scaler.Transform(trainX)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTraining, err)
	}
	scaledVal, err := scaler.Transform(valX)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTraining, err)
	}

	model, err := ml.TrainGBDT(scaledTrain, trainY, scaledVal, valY, e.params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTraining, err)
	}

	valPred := make([]float64, len(scaledVal))
	for i, row := range scaledVal {
		valPred[i] = model.Predict(row)
	}
	metrics := Metrics{
		MSE:  ml.MSE(valY, valPred),
		RMSE: ml.RMSE(valY, valPred),
		R2:   ml.R2(valY, valPred),
	}

	pair := &ModelPair{
		Model:  model,
		Scaler: scaler,
		Meta: ModelMeta{
			ID:        uuid.New().String(),
			TrainedAt: time.Now().UTC(),
			Rows:      rows,
			BestRound: model.BestRound,
			Columns:   FeatureColumns,
		},
	}

	if err := e.store.Save(pair); err != nil {
		return nil, err
	}
	e.pair.Store(pair)

	return &TrainingReport{
		ModelID:           pair.Meta.ID,
		TrainedAt:         pair.Meta.TrainedAt,
		Rows:              rows,
		TrainRows:         trainRows,
		ValidationRows:    valRows,
		BestRound:         model.BestRound,
		Metrics:           metrics,
		FeatureImportance: model.FeatureImportance(FeatureColumns),
	}, nil
}
