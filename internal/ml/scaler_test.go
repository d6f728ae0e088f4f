package ml

import (
	"math"
	"testing"
)

func TestScalerFitTransform(t *testing.T) {
	x := [][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
	}

	var s StandardScaler
	if err := s.Fit(x); err != nil {
		t.Fatalf("unexpected fit error: %v", err)
	}

	if s.Mean[0] != 2 || s.Mean[1] != 20 || s.Mean[2] != 5 {
		t.Fatalf("unexpected means: %v", s.Mean)
	}

	// Zero-variance column must not divide by zero.
	if s.Std[2] != 1 {
		t.Fatalf("expected std 1 for constant column, got %v", s.Std[2])
	}

	scaled, err := s.Transform(x)
	if err != nil {
		t.Fatalf("unexpected transform error: %v", err)
	}

	for j := 0; j < 2; j++ {
		var sum float64
		for i := range scaled {
			sum += scaled[i][j]
		}
		if math.Abs(sum) > 1e-9 {
			t.Fatalf("column %d not centered: sum=%v", j, sum)
		}
	}
	if scaled[0][2] != 0 || scaled[2][2] != 0 {
		t.Fatalf("constant column should scale to zero: %v", scaled)
	}
}

func TestScalerRejectsUnfittedAndMismatched(t *testing.T) {
	var s StandardScaler
	if _, err := s.TransformRow([]float64{1, 2}); err == nil {
		t.Fatal("expected error transforming with unfitted scaler")
	}

	if err := s.Fit([][]float64{{1, 2}, {3, 4}}); err != nil {
		t.Fatalf("unexpected fit error: %v", err)
	}
	if _, err := s.TransformRow([]float64{1}); err == nil {
		t.Fatal("expected error for mismatched row width")
	}
}
