package forecast

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JDeep1234/airwise/internal/ml"
)

const (
	modelFile  = "model.json"
	scalerFile = "scaler.json"
)

// ModelMeta describes one trained model generation.
type ModelMeta struct {
	ID        string    `json:"id"`
	TrainedAt time.Time `json:"trained_at"`
	Rows      int       `json:"rows"`
	BestRound int       `json:"best_round"`
	Columns   []string  `json:"columns"`
}

// ModelPair is a trained regressor together with the scaler it was fitted
// with. The two are only ever persisted, loaded and swapped as a unit;
// neither field is meaningful without the other.
type ModelPair struct {
	Model  *ml.GBDTRegressor
	Scaler *ml.StandardScaler
	Meta   ModelMeta
}

// ModelStore persists model/scaler pairs as two JSON artifacts under a
// directory. Writes go through temp files so a crash never leaves one
// artifact updated without the other.
type ModelStore struct {
	dir string
}

func NewModelStore(dir string) *ModelStore {
	return &ModelStore{dir: dir}
}

// Dir reports where artifacts are stored.
func (s *ModelStore) Dir() string {
	return s.dir
}

type modelArtifact struct {
	Meta  ModelMeta         `json:"meta"`
	Model *ml.GBDTRegressor `json:"model"`
}

// Save writes both artifacts. Both temp files are written before either
// rename happens, so the committed pair is always consistent.
func (s *ModelStore) Save(pair *ModelPair) error {
	if pair == nil || pair.Model == nil || pair.Scaler == nil {
		return fmt.Errorf("%w: refusing to save incomplete pair", ErrPersistence)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	modelBytes, err := json.Marshal(modelArtifact{Meta: pair.Meta, Model: pair.Model})
	if err != nil {
		return fmt.Errorf("%w: encode model: %v", ErrPersistence, err)
	}
	scalerBytes, err := json.Marshal(pair.Scaler)
	if err != nil {
		return fmt.Errorf("%w: encode scaler: %v", ErrPersistence, err)
	}

	modelTmp := filepath.Join(s.dir, modelFile+".tmp")
	scalerTmp := filepath.Join(s.dir, scalerFile+".tmp")

	if err := os.WriteFile(modelTmp, modelBytes, 0o644); err != nil {
		return fmt.Errorf("%w: write model: %v", ErrPersistence, err)
	}
	if err := os.WriteFile(scalerTmp, scalerBytes, 0o644); err != nil {
		os.Remove(modelTmp)
		return fmt.Errorf("%w: write scaler: %v", ErrPersistence, err)
	}

	if err := os.Rename(modelTmp, filepath.Join(s.dir, modelFile)); err != nil {
		os.Remove(modelTmp)
		os.Remove(scalerTmp)
		return fmt.Errorf("%w: commit model: %v", ErrPersistence, err)
	}
	if err := os.Rename(scalerTmp, filepath.Join(s.dir, scalerFile)); err != nil {
		os.Remove(scalerTmp)
		return fmt.Errorf("%w: commit scaler: %v", ErrPersistence, err)
	}

	return nil
}

// Load restores the persisted pair. ok is true only when both artifacts are
// present and decode cleanly; otherwise the store reports "untrained" and
// never yields one half of a pair.
func (s *ModelStore) Load() (*ModelPair, bool) {
	modelBytes, err := os.ReadFile(filepath.Join(s.dir, modelFile))
	if err != nil {
		return nil, false
	}
	scalerBytes, err := os.ReadFile(filepath.Join(s.dir, scalerFile))
	if err != nil {
		return nil, false
	}

	var artifact modelArtifact
	if err := json.Unmarshal(modelBytes, &artifact); err != nil || artifact.Model == nil {
		return nil, false
	}
	var scaler ml.StandardScaler
	if err := json.Unmarshal(scalerBytes, &scaler); err != nil || len(scaler.Mean) == 0 {
		return nil, false
	}

	return &ModelPair{
		Model:  artifact.Model,
		Scaler: &scaler,
		Meta:   artifact.Meta,
	}, true
}
