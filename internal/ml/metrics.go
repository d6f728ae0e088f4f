package ml

import "math"

// MSE is the mean squared error between targets and predictions.
func MSE(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var sum float64
	for i := range y {
		d := y[i] - pred[i]
		sum += d * d
	}
	return sum / float64(len(y))
}

// RMSE is the root mean squared error.
func RMSE(y, pred []float64) float64 {
	return math.Sqrt(MSE(y, pred))
}

// R2 is the coefficient of determination. A constant target series yields 0
// rather than a division by zero.
func R2(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}

	m := meanAll(y)
	var ssTot, ssRes float64
	for i := range y {
		ssTot += (y[i] - m) * (y[i] - m)
		d := y[i] - pred[i]
		ssRes += d * d
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
