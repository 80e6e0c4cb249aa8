package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// KindLinear covers logistic regression, linear SVC and linear-kernel SVC
const KindLinear = "linear"

type linearParams struct {
	Classes   []entity.RawLabel `json:"classes"`
	Coef      [][]float64       `json:"coef"`
	Intercept []float64         `json:"intercept"`
}

// LinearClassifier predicts the class with the largest decision value.
// A binary model carries a single weight row and picks the second class
// when its decision value is positive.
type LinearClassifier struct {
	classes   []entity.RawLabel
	coef      [][]float64
	intercept []float64
	dim       int
}

func decodeLinear(raw json.RawMessage) (*LinearClassifier, error) {
	var p linearParams
	if err := unmarshalParams(raw, &p); err != nil {
		return nil, err
	}

	if len(p.Classes) < 2 {
		return nil, invalid("linear model needs at least two classes")
	}
	rows := len(p.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(p.Coef) != rows {
		return nil, invalid("linear model has %d weight rows, want %d", len(p.Coef), rows)
	}
	if len(p.Intercept) != rows {
		return nil, invalid("linear model has %d intercepts, want %d", len(p.Intercept), rows)
	}
	dim := len(p.Coef[0])
	if dim == 0 {
		return nil, invalid("linear model has no features")
	}
	for i, row := range p.Coef {
		if len(row) != dim {
			return nil, invalid("weight row %d has %d features, want %d", i, len(row), dim)
		}
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, invalid("weight row %d is not finite", i)
			}
		}
	}

	return &LinearClassifier{
		classes:   p.Classes,
		coef:      p.Coef,
		intercept: p.Intercept,
		dim:       dim,
	}, nil
}

// Kind returns "linear"
func (c *LinearClassifier) Kind() string {
	return KindLinear
}

// Dimensions returns the number of weights per row
func (c *LinearClassifier) Dimensions() int {
	return c.dim
}

// Classes returns the labels this model can emit
func (c *LinearClassifier) Classes() []entity.RawLabel {
	return c.classes
}

// DecisionFunction returns one score per weight row
func (c *LinearClassifier) DecisionFunction(vec *entity.FeatureVector) []float64 {
	scores := make([]float64, len(c.coef))
	for i, row := range c.coef {
		scores[i] = vec.Dot(row) + c.intercept[i]
	}
	return scores
}

// Predict returns the winning class
func (c *LinearClassifier) Predict(_ context.Context, vec *entity.FeatureVector) (entity.RawLabel, error) {
	if err := checkInput(vec, c.dim); err != nil {
		return "", err
	}

	scores := c.DecisionFunction(vec)
	if len(scores) == 1 {
		if scores[0] > 0 {
			return c.classes[1], nil
		}
		return c.classes[0], nil
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return c.classes[best], nil
}

func checkInput(vec *entity.FeatureVector, dim int) error {
	if err := vec.Validate(); err != nil {
		return err
	}
	if vec.Dim != dim {
		return fmt.Errorf("%w: got %d features, model expects %d", entity.ErrInvalidFeatureVector, vec.Dim, dim)
	}
	return nil
}
