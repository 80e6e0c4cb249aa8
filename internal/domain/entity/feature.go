package entity

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidFeatureVector is returned for malformed sparse vectors
var ErrInvalidFeatureVector = errors.New("invalid feature vector")

// FeatureVector is a fixed-width sparse vector. Indices are strictly
// ascending and every index is below Dim; absent indices are zero.
type FeatureVector struct {
	Dim     int       `json:"dimensions"`
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// NewFeatureVector builds a vector from an index/value map
func NewFeatureVector(dim int, values map[int]float64) *FeatureVector {
	v := &FeatureVector{Dim: dim}
	if len(values) == 0 {
		return v
	}

	v.Indices = make([]int, 0, len(values))
	for i, x := range values {
		if x != 0 {
			v.Indices = append(v.Indices, i)
		}
	}
	sort.Ints(v.Indices)
	v.Values = make([]float64, len(v.Indices))
	for n, i := range v.Indices {
		v.Values[n] = values[i]
	}
	return v
}

// Validate checks the sparse invariants
func (v *FeatureVector) Validate() error {
	if v == nil {
		return fmt.Errorf("%w: nil", ErrInvalidFeatureVector)
	}
	if v.Dim < 0 {
		return fmt.Errorf("%w: negative dimension", ErrInvalidFeatureVector)
	}
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("%w: %d indices but %d values", ErrInvalidFeatureVector, len(v.Indices), len(v.Values))
	}
	prev := -1
	for _, i := range v.Indices {
		if i <= prev || i >= v.Dim {
			return fmt.Errorf("%w: index %d out of order or range", ErrInvalidFeatureVector, i)
		}
		prev = i
	}
	for _, x := range v.Values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidFeatureVector)
		}
	}
	return nil
}

// At returns the value stored at index i
func (v *FeatureVector) At(i int) float64 {
	n := sort.SearchInts(v.Indices, i)
	if n < len(v.Indices) && v.Indices[n] == i {
		return v.Values[n]
	}
	return 0
}

// NNZ returns the number of stored entries
func (v *FeatureVector) NNZ() int {
	return len(v.Indices)
}

// Dot computes the inner product with a dense row
func (v *FeatureVector) Dot(dense []float64) float64 {
	var sum float64
	for n, i := range v.Indices {
		if i < len(dense) {
			sum += v.Values[n] * dense[i]
		}
	}
	return sum
}

// Norm returns the euclidean length
func (v *FeatureVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dense expands the vector to a full slice
func (v *FeatureVector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for n, i := range v.Indices {
		out[i] = v.Values[n]
	}
	return out
}
