package artifact

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// KindKNN is a k-nearest-neighbours model that stores its training points
const KindKNN = "knn"

const (
	metricEuclidean = "euclidean"
	metricManhattan = "manhattan"
	metricCosine    = "cosine"

	weightsUniform  = "uniform"
	weightsDistance = "distance"
)

type knnPoint struct {
	Indices []int           `json:"indices"`
	Values  []float64       `json:"values"`
	Label   entity.RawLabel `json:"label"`
}

type knnParams struct {
	K          int               `json:"k"`
	Metric     string            `json:"metric"`
	Weights    string            `json:"weights"`
	Dimensions int               `json:"dimensions"`
	Classes    []entity.RawLabel `json:"classes"`
	Points     []knnPoint        `json:"points"`
}

// KNNClassifier votes among the k training points closest to the input.
// Ties go to the class listed first.
type KNNClassifier struct {
	k       int
	metric  string
	weights string
	dim     int
	points  []*entity.FeatureVector
	labels  []entity.RawLabel
	rank    map[entity.RawLabel]int
}

func decodeKNN(raw json.RawMessage) (*KNNClassifier, error) {
	var p knnParams
	if err := unmarshalParams(raw, &p); err != nil {
		return nil, err
	}

	if p.Dimensions <= 0 {
		return nil, invalid("knn model needs positive dimensions")
	}
	if len(p.Points) == 0 {
		return nil, invalid("knn model has no points")
	}
	if p.K < 1 || p.K > len(p.Points) {
		return nil, invalid("k=%d must be between 1 and %d", p.K, len(p.Points))
	}

	c := &KNNClassifier{
		k:       p.K,
		metric:  p.Metric,
		weights: p.Weights,
		dim:     p.Dimensions,
		points:  make([]*entity.FeatureVector, len(p.Points)),
		labels:  make([]entity.RawLabel, len(p.Points)),
		rank:    make(map[entity.RawLabel]int),
	}
	switch c.metric {
	case "":
		c.metric = metricEuclidean
	case metricEuclidean, metricManhattan, metricCosine:
	default:
		return nil, invalid("unsupported metric %q", p.Metric)
	}
	switch c.weights {
	case "":
		c.weights = weightsUniform
	case weightsUniform, weightsDistance:
	default:
		return nil, invalid("unsupported weights %q", p.Weights)
	}

	for _, label := range p.Classes {
		if _, ok := c.rank[label]; !ok {
			c.rank[label] = len(c.rank)
		}
	}
	for i, pt := range p.Points {
		vec := &entity.FeatureVector{Dim: p.Dimensions, Indices: pt.Indices, Values: pt.Values}
		if err := vec.Validate(); err != nil {
			return nil, invalid("point %d: %v", i, err)
		}
		if _, ok := c.rank[pt.Label]; !ok {
			if len(p.Classes) > 0 {
				return nil, invalid("point %d has label %q outside classes", i, pt.Label)
			}
			c.rank[pt.Label] = len(c.rank)
		}
		c.points[i] = vec
		c.labels[i] = pt.Label
	}
	return c, nil
}

// Kind returns "knn"
func (c *KNNClassifier) Kind() string {
	return KindKNN
}

// Dimensions returns the width of the stored points
func (c *KNNClassifier) Dimensions() int {
	return c.dim
}

// Classes returns the labels of the stored points, in tie-break order
func (c *KNNClassifier) Classes() []entity.RawLabel {
	out := make([]entity.RawLabel, len(c.rank))
	for label, i := range c.rank {
		out[i] = label
	}
	return out
}

type neighbour struct {
	index    int
	distance float64
}

// Predict returns the majority label among the nearest points
func (c *KNNClassifier) Predict(_ context.Context, vec *entity.FeatureVector) (entity.RawLabel, error) {
	if err := checkInput(vec, c.dim); err != nil {
		return "", err
	}

	neighbours := make([]neighbour, len(c.points))
	for i, pt := range c.points {
		neighbours[i] = neighbour{index: i, distance: c.distance(vec, pt)}
	}
	sort.SliceStable(neighbours, func(a, b int) bool {
		return neighbours[a].distance < neighbours[b].distance
	})
	nearest := neighbours[:c.k]

	votes := make(map[entity.RawLabel]float64)
	exact := c.weights == weightsDistance && nearest[0].distance == 0
	for _, n := range nearest {
		label := c.labels[n.index]
		switch {
		case exact:
			if n.distance == 0 {
				votes[label]++
			}
		case c.weights == weightsDistance:
			votes[label] += 1 / n.distance
		default:
			votes[label]++
		}
	}

	var best entity.RawLabel
	bestVotes := -1.0
	for label, v := range votes {
		if v > bestVotes || (v == bestVotes && c.rank[label] < c.rank[best]) {
			best, bestVotes = label, v
		}
	}
	return best, nil
}

func (c *KNNClassifier) distance(a, b *entity.FeatureVector) float64 {
	switch c.metric {
	case metricCosine:
		na, nb := a.Norm(), b.Norm()
		if na == 0 || nb == 0 {
			return 1
		}
		return 1 - sparseDot(a, b)/(na*nb)
	case metricManhattan:
		return sparseDiff(a, b, func(d float64) float64 { return math.Abs(d) })
	default:
		return math.Sqrt(sparseDiff(a, b, func(d float64) float64 { return d * d }))
	}
}

// sparseDiff sums f(a_i - b_i) over the union of stored indices
func sparseDiff(a, b *entity.FeatureVector, f func(float64) float64) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) || j < len(b.Indices) {
		switch {
		case j >= len(b.Indices) || (i < len(a.Indices) && a.Indices[i] < b.Indices[j]):
			sum += f(a.Values[i])
			i++
		case i >= len(a.Indices) || b.Indices[j] < a.Indices[i]:
			sum += f(-b.Values[j])
			j++
		default:
			sum += f(a.Values[i] - b.Values[j])
			i++
			j++
		}
	}
	return sum
}

func sparseDot(a, b *entity.FeatureVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] < b.Indices[j]:
			i++
		case a.Indices[i] > b.Indices[j]:
			j++
		default:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		}
	}
	return sum
}
