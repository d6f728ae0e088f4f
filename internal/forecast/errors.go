package forecast

import "errors"

var (
	// ErrInsufficientData means the historical series produced fewer valid
	// training rows than the lag/rolling windows require.
	ErrInsufficientData = errors.New("insufficient history to build training rows")

	// ErrModelNotLoaded means a forecast was requested with no trained
	// model/scaler pair available. Callers are expected to fall back to a
	// non-ML source.
	ErrModelNotLoaded = errors.New("no trained model loaded")

	// ErrTraining wraps a failure in the underlying model fit.
	ErrTraining = errors.New("model training failed")

	// ErrPersistence wraps a failure to store or load the model/scaler pair.
	ErrPersistence = errors.New("model persistence failed")
)
