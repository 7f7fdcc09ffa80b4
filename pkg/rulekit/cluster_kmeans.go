package rulekit

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// KMeansBackend clusters the binary feature vectors directly (not the
// Jaccard distance matrix) with Lloyd's algorithm, a fixed seed for
// reproducibility, and a fixed number of internal restarts to reduce
// sensitivity to initial centroid placement.
type KMeansBackend struct {
	Restarts int
	MaxIters int
}

// NewKMeansBackend creates a backend with restarts random restarts (at
// least 1) and up to 100 Lloyd iterations per restart.
func NewKMeansBackend(restarts int) *KMeansBackend {
	if restarts < 1 {
		restarts = 1
	}
	return &KMeansBackend{Restarts: restarts, MaxIters: 100}
}

func (b *KMeansBackend) Name() string { return "kmeans" }

// Assign runs k-means with b.Restarts independent seeded initializations,
// keeping the assignment with the lowest total within-cluster distance to
// centroid (sum of squared Euclidean distances over the binary vectors).
// dist (the Jaccard matrix) is unused by this backend; it clusters on raw
// feature vectors instead.
func (b *KMeansBackend) Assign(vectors [][]float64, _ [][]float64, k int, seed int64) ([]int, error) {
	n := len(vectors)
	if n == 0 {
		return nil, nil
	}
	if k >= n {
		assignment := make([]int, n)
		for i := range assignment {
			assignment[i] = i
		}
		return assignment, nil
	}

	rng := rand.New(rand.NewSource(seed))

	var bestAssignment []int
	bestCost := 0.0
	bestSet := false

	for attempt := 0; attempt < b.Restarts; attempt++ {
		assignment, cost := kmeansOnce(vectors, k, rng, b.MaxIters)
		if !bestSet || cost < bestCost {
			bestAssignment, bestCost, bestSet = assignment, cost, true
		}
	}

	return bestAssignment, nil
}

func kmeansOnce(vectors [][]float64, k int, rng *rand.Rand, maxIters int) ([]int, float64) {
	n := len(vectors)
	dim := len(vectors[0])

	centroids := make([][]float64, k)
	perm := rng.Perm(n)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), vectors[perm[c]]...)
	}

	assignment := make([]int, n)

	for iter := 0; iter < maxIters; iter++ {
		changed := false
		for i, v := range vectors {
			best := 0
			bestDist := squaredDistance(v, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDistance(v, centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			c := assignment[i]
			floats.Add(sums[c], v)
			counts[c]++
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centroids[c] = sums[c]
		}

		if !changed && iter > 0 {
			break
		}
	}

	cost := 0.0
	for i, v := range vectors {
		cost += squaredDistance(v, centroids[assignment[i]])
	}
	return assignment, cost
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
