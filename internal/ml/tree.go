package ml

import "sort"

// TreeNode is one node of a regression tree, stored flat so trees serialize
// to compact JSON. Leaves have Feature == -1.
type TreeNode struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v"`
}

// RegressionTree is a binary tree fitted with greedy variance-reduction
// splits, used as the weak learner of the boosted ensemble.
type RegressionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

// Predict walks the tree for one feature vector.
func (t *RegressionTree) Predict(row []float64) float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Feature < 0 {
			return node.Value
		}
		if row[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// treeBuilder grows a tree on a sample subset, restricted to a column
// subset, recording the variance reduction of every accepted split.
type treeBuilder struct {
	x              [][]float64
	y              []float64 // targets (residuals during boosting)
	features       []int     // candidate columns for this tree
	maxDepth       int
	minSamplesLeaf int
	gains          []float64 // per-column accumulated gain
}

func (b *treeBuilder) build(samples []int) *RegressionTree {
	t := &RegressionTree{}
	b.grow(t, samples, 0)
	return t
}

// grow appends the subtree for samples and returns its root index.
func (b *treeBuilder) grow(t *RegressionTree, samples []int, depth int) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, TreeNode{Feature: -1, Value: mean(b.y, samples)})

	if depth >= b.maxDepth || len(samples) < 2*b.minSamplesLeaf {
		return idx
	}

	feature, threshold, gain, ok := b.bestSplit(samples)
	if !ok {
		return idx
	}
	b.gains[feature] += gain

	var left, right []int
	for _, i := range samples {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	t.Nodes[idx].Feature = feature
	t.Nodes[idx].Threshold = threshold
	t.Nodes[idx].Left = b.grow(t, left, depth+1)
	t.Nodes[idx].Right = b.grow(t, right, depth+1)
	return idx
}

// bestSplit scans every candidate column for the threshold minimizing the
// summed squared error of the two children.
func (b *treeBuilder) bestSplit(samples []int) (feature int, threshold, gain float64, ok bool) {
	parentSSE := sse(b.y, samples)
	best := 0.0

	order := make([]int, len(samples))

	for _, f := range b.features {
		copy(order, samples)
		sort.Slice(order, func(a, c int) bool { return b.x[order[a]][f] < b.x[order[c]][f] })

		// Prefix sums over the sorted order let each candidate threshold be
		// evaluated in O(1).
		var sumL, sqL float64
		sumT, sqT := sums(b.y, order)

		for k := 0; k < len(order)-1; k++ {
			yi := b.y[order[k]]
			sumL += yi
			sqL += yi * yi

			// Cannot split between equal feature values.
			if b.x[order[k]][f] == b.x[order[k+1]][f] {
				continue
			}

			nL := k + 1
			nR := len(order) - nL
			if nL < b.minSamplesLeaf || nR < b.minSamplesLeaf {
				continue
			}

			sseL := sqL - sumL*sumL/float64(nL)
			sumR := sumT - sumL
			sseR := (sqT - sqL) - sumR*sumR/float64(nR)

			if g := parentSSE - sseL - sseR; g > best {
				best = g
				feature = f
				threshold = (b.x[order[k]][f] + b.x[order[k+1]][f]) / 2
				ok = true
			}
		}
	}

	return feature, threshold, best, ok
}

func mean(y []float64, samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, i := range samples {
		sum += y[i]
	}
	return sum / float64(len(samples))
}

func sums(y []float64, samples []int) (sum, sq float64) {
	for _, i := range samples {
		sum += y[i]
		sq += y[i] * y[i]
	}
	return sum, sq
}

func sse(y []float64, samples []int) float64 {
	sum, sq := sums(y, samples)
	if len(samples) == 0 {
		return 0
	}
	return sq - sum*sum/float64(len(samples))
}
