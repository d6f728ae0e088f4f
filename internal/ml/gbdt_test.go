package ml

import (
	"math"
	"testing"
)

// makeRegressionData builds a deterministic dataset where the target depends
// mostly on the first feature.
func makeRegressionData(n int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a := float64(i % 50)
		b := float64((i * 7) % 13)
		x[i] = []float64{a, b}
		y[i] = 3*a + 0.1*b
	}
	return x, y
}

func TestGBDTLearnsSimpleFunction(t *testing.T) {
	x, y := makeRegressionData(300)
	trainX, valX := x[:240], x[240:]
	trainY, valY := y[:240], y[240:]

	params := DefaultGBDTParams()
	params.Rounds = 50

	model, err := TrainGBDT(trainX, trainY, valX, valY, params)
	if err != nil {
		t.Fatalf("unexpected training error: %v", err)
	}

	pred := make([]float64, len(valY))
	for i, row := range valX {
		pred[i] = model.Predict(row)
	}

	if rmse := RMSE(valY, pred); rmse > 10 {
		t.Fatalf("model failed to learn: validation rmse=%v", rmse)
	}
	if model.BestRound == 0 || model.BestRound > params.Rounds {
		t.Fatalf("unexpected best round %d", model.BestRound)
	}
	if len(model.Trees) != model.BestRound {
		t.Fatalf("kept %d trees but best round is %d", len(model.Trees), model.BestRound)
	}
}

func TestGBDTDeterministicWithSameSeed(t *testing.T) {
	x, y := makeRegressionData(200)
	params := DefaultGBDTParams()
	params.Rounds = 20

	a, err := TrainGBDT(x, y, nil, nil, params)
	if err != nil {
		t.Fatalf("unexpected training error: %v", err)
	}
	b, err := TrainGBDT(x, y, nil, nil, params)
	if err != nil {
		t.Fatalf("unexpected training error: %v", err)
	}

	for i := 0; i < 20; i++ {
		row := []float64{float64(i), float64(i % 5)}
		if pa, pb := a.Predict(row), b.Predict(row); pa != pb {
			t.Fatalf("predictions diverged for identical seeds: %v vs %v", pa, pb)
		}
	}
}

func TestGBDTFeatureImportance(t *testing.T) {
	x, y := makeRegressionData(200)
	params := DefaultGBDTParams()
	params.Rounds = 20
	params.ColSample = 1.0

	model, err := TrainGBDT(x, y, nil, nil, params)
	if err != nil {
		t.Fatalf("unexpected training error: %v", err)
	}

	imp := model.FeatureImportance([]string{"a", "b"})

	var total float64
	for _, v := range imp {
		total += v
	}
	if math.Abs(total-1) > 1e-9 {
		t.Fatalf("importances should sum to 1, got %v", total)
	}
	if imp["a"] <= imp["b"] {
		t.Fatalf("dominant feature should carry more importance: %v", imp)
	}
}

func TestGBDTRejectsBadInput(t *testing.T) {
	if _, err := TrainGBDT(nil, nil, nil, nil, DefaultGBDTParams()); err == nil {
		t.Fatal("expected error for empty training data")
	}

	params := DefaultGBDTParams()
	params.Rounds = 0
	if _, err := TrainGBDT([][]float64{{1}}, []float64{1}, nil, nil, params); err == nil {
		t.Fatal("expected error for zero rounds")
	}
}
