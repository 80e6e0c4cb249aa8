package artifact

import (
	"context"
	"encoding/json"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// KindTree is a binary decision tree stored as a flat node array
const KindTree = "tree"

const leafChild = -1

type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

type treeParams struct {
	Classes    []entity.RawLabel `json:"classes"`
	Dimensions int               `json:"dimensions"`
	Nodes      []treeNode        `json:"nodes"`
}

// TreeClassifier walks from the root: x[feature] <= threshold goes left.
// A leaf predicts the class with the largest value.
type TreeClassifier struct {
	classes []entity.RawLabel
	dim     int
	nodes   []treeNode
}

func decodeTree(raw json.RawMessage) (*TreeClassifier, error) {
	var p treeParams
	if err := unmarshalParams(raw, &p); err != nil {
		return nil, err
	}

	if len(p.Classes) == 0 {
		return nil, invalid("tree has no classes")
	}
	if p.Dimensions <= 0 {
		return nil, invalid("tree needs positive dimensions")
	}
	if len(p.Nodes) == 0 {
		return nil, invalid("tree has no nodes")
	}

	// Children must come after their parent, which rules out cycles.
	for i, n := range p.Nodes {
		if n.Left == leafChild {
			if len(n.Value) != len(p.Classes) {
				return nil, invalid("leaf %d has %d values for %d classes", i, len(n.Value), len(p.Classes))
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= p.Dimensions {
			return nil, invalid("node %d splits on feature %d outside [0,%d)", i, n.Feature, p.Dimensions)
		}
		if n.Left <= i || n.Left >= len(p.Nodes) || n.Right <= i || n.Right >= len(p.Nodes) {
			return nil, invalid("node %d has children out of order", i)
		}
	}

	return &TreeClassifier{
		classes: p.Classes,
		dim:     p.Dimensions,
		nodes:   p.Nodes,
	}, nil
}

// Kind returns "tree"
func (c *TreeClassifier) Kind() string {
	return KindTree
}

// Dimensions returns the input width
func (c *TreeClassifier) Dimensions() int {
	return c.dim
}

// Classes returns the labels a leaf can emit
func (c *TreeClassifier) Classes() []entity.RawLabel {
	return c.classes
}

// Predict returns the majority class of the reached leaf
func (c *TreeClassifier) Predict(_ context.Context, vec *entity.FeatureVector) (entity.RawLabel, error) {
	if err := checkInput(vec, c.dim); err != nil {
		return "", err
	}

	i := 0
	for c.nodes[i].Left != leafChild {
		n := c.nodes[i]
		if vec.At(n.Feature) <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}

	value := c.nodes[i].Value
	best := 0
	for k := 1; k < len(value); k++ {
		if value[k] > value[best] {
			best = k
		}
	}
	return c.classes[best], nil
}
