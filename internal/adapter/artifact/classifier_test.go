package artifact

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

func vec(dim int, values map[int]float64) *entity.FeatureVector {
	return entity.NewFeatureVector(dim, values)
}

func TestLinearClassifier_Predict(t *testing.T) {
	ctx := context.Background()

	t.Run("multiclass argmax", func(t *testing.T) {
		c, err := decodeLinear(json.RawMessage(`{
			"classes": [-1, 0, 1],
			"coef": [[1, 0, 0], [0, 1, 0], [0, 0, 1]],
			"intercept": [0, 0.1, 0]
		}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(3, map[int]float64{0: 2}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("-1"), label)

		label, err = c.Predict(ctx, vec(3, nil))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("0"), label)

		assert.Equal(t, 3, c.Dimensions())
		assert.Equal(t, KindLinear, c.Kind())
		assert.Len(t, c.Classes(), 3)
	})

	t.Run("float classes resolve through the label map", func(t *testing.T) {
		c, err := decodeLinear(json.RawMessage(`{
			"classes": [-1.0, 0.0, 1.0, 2.0],
			"coef": [[1, 0], [0, 0], [0, 1], [-1, -1]],
			"intercept": [0, 0.1, 0, 0]
		}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(2, map[int]float64{0: 2}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("-1"), label)

		labels := entity.DefaultLabelMap()
		for _, raw := range c.Classes() {
			_, ok := labels.Resolve(raw)
			assert.True(t, ok, "class %q", raw)
		}
	})

	t.Run("ties go to the first class", func(t *testing.T) {
		c, err := decodeLinear(json.RawMessage(`{"classes": ["x", "y", "z"], "coef": [[1], [1], [0]], "intercept": [0, 0, 0]}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(1, map[int]float64{0: 1}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("x"), label)
	})

	t.Run("binary threshold", func(t *testing.T) {
		c, err := decodeLinear(json.RawMessage(`{"classes": [0, 1], "coef": [[1, -1]], "intercept": [0]}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(2, map[int]float64{0: 1}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("1"), label)

		label, err = c.Predict(ctx, vec(2, nil))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("0"), label)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		c, err := decodeLinear(json.RawMessage(`{"classes": [0, 1], "coef": [[1, -1]], "intercept": [0]}`))
		require.NoError(t, err)

		_, err = c.Predict(ctx, vec(3, nil))
		assert.ErrorIs(t, err, entity.ErrInvalidFeatureVector)
	})
}

func TestDecodeLinear_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params string
	}{
		{"one class", `{"classes": [1], "coef": [[1]], "intercept": [0]}`},
		{"row count", `{"classes": [0, 1, 2], "coef": [[1]], "intercept": [0]}`},
		{"intercept count", `{"classes": [0, 1], "coef": [[1]], "intercept": []}`},
		{"ragged rows", `{"classes": [0, 1, 2], "coef": [[1], [1, 2], [1]], "intercept": [0, 0, 0]}`},
		{"no features", `{"classes": [0, 1], "coef": [[]], "intercept": [0]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeLinear(json.RawMessage(tt.params))
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestKNNClassifier_Predict(t *testing.T) {
	ctx := context.Background()
	points := `[
		{"indices": [0], "values": [1], "label": "a"},
		{"indices": [0], "values": [0.9], "label": "a"},
		{"indices": [1], "values": [1], "label": "b"}
	]`

	t.Run("nearest neighbour", func(t *testing.T) {
		c, err := decodeKNN(json.RawMessage(`{"k": 1, "dimensions": 2, "points": ` + points + `}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(2, map[int]float64{1: 0.8}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("b"), label)
		assert.Equal(t, KindKNN, c.Kind())
	})

	t.Run("majority vote", func(t *testing.T) {
		c, err := decodeKNN(json.RawMessage(`{"k": 3, "dimensions": 2, "metric": "manhattan", "points": ` + points + `}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(2, map[int]float64{1: 1}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("a"), label)
	})

	t.Run("distance weights prefer exact match", func(t *testing.T) {
		c, err := decodeKNN(json.RawMessage(`{"k": 3, "dimensions": 2, "weights": "distance", "points": ` + points + `}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(2, map[int]float64{1: 1}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("b"), label)
	})

	t.Run("ties follow class order", func(t *testing.T) {
		tie := `[
			{"indices": [0], "values": [1], "label": "a"},
			{"indices": [1], "values": [1], "label": "b"}
		]`
		query := vec(2, map[int]float64{0: 1, 1: 1})

		c, err := decodeKNN(json.RawMessage(`{"k": 2, "dimensions": 2, "points": ` + tie + `}`))
		require.NoError(t, err)
		label, err := c.Predict(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("a"), label)

		assert.Equal(t, []entity.RawLabel{"a", "b"}, c.Classes())

		c, err = decodeKNN(json.RawMessage(`{"k": 2, "dimensions": 2, "classes": ["b", "a"], "points": ` + tie + `}`))
		require.NoError(t, err)
		label, err = c.Predict(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("b"), label)
		assert.Equal(t, []entity.RawLabel{"b", "a"}, c.Classes())
	})

	t.Run("cosine ignores magnitude", func(t *testing.T) {
		c, err := decodeKNN(json.RawMessage(`{"k": 1, "dimensions": 2, "metric": "cosine", "points": [
			{"indices": [0], "values": [10], "label": "a"},
			{"indices": [0, 1], "values": [0.1, 0.1], "label": "b"}
		]}`))
		require.NoError(t, err)

		label, err := c.Predict(ctx, vec(2, map[int]float64{0: 0.2, 1: 0.2}))
		require.NoError(t, err)
		assert.Equal(t, entity.RawLabel("b"), label)
	})
}

func TestDecodeKNN_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params string
	}{
		{"no dimensions", `{"k": 1, "points": [{"indices": [0], "values": [1], "label": 1}]}`},
		{"no points", `{"k": 1, "dimensions": 2, "points": []}`},
		{"k too large", `{"k": 2, "dimensions": 2, "points": [{"indices": [0], "values": [1], "label": 1}]}`},
		{"bad metric", `{"k": 1, "dimensions": 2, "metric": "chebyshev", "points": [{"indices": [0], "values": [1], "label": 1}]}`},
		{"bad weights", `{"k": 1, "dimensions": 2, "weights": "rank", "points": [{"indices": [0], "values": [1], "label": 1}]}`},
		{"point out of range", `{"k": 1, "dimensions": 2, "points": [{"indices": [4], "values": [1], "label": 1}]}`},
		{"label outside classes", `{"k": 1, "dimensions": 2, "classes": [0], "points": [{"indices": [0], "values": [1], "label": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeKNN(json.RawMessage(tt.params))
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestTreeClassifier_Predict(t *testing.T) {
	c, err := decodeTree(json.RawMessage(`{
		"classes": [-1, 1, 2],
		"dimensions": 3,
		"nodes": [
			{"feature": 0, "threshold": 0.5, "left": 1, "right": 2},
			{"feature": 2, "threshold": 0.0, "left": 3, "right": 4},
			{"left": -1, "value": [9, 1, 0]},
			{"left": -1, "value": [0, 5, 1]},
			{"left": -1, "value": [0, 1, 7]}
		]
	}`))
	require.NoError(t, err)

	tests := []struct {
		name   string
		values map[int]float64
		want   entity.RawLabel
	}{
		{"right branch", map[int]float64{0: 0.9}, "-1"},
		{"threshold goes left", map[int]float64{0: 0.5}, "1"},
		{"nested right", map[int]float64{2: 0.3}, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := c.Predict(context.Background(), vec(3, tt.values))
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}

	assert.Equal(t, KindTree, c.Kind())
	assert.Equal(t, 3, c.Dimensions())
	assert.Equal(t, []entity.RawLabel{"-1", "1", "2"}, c.Classes())
}

func TestDecodeTree_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params string
	}{
		{"no classes", `{"dimensions": 1, "nodes": [{"left": -1, "value": []}]}`},
		{"no nodes", `{"classes": [0], "dimensions": 1, "nodes": []}`},
		{"leaf width", `{"classes": [0, 1], "dimensions": 1, "nodes": [{"left": -1, "value": [1]}]}`},
		{"feature out of range", `{"classes": [0], "dimensions": 1, "nodes": [
			{"feature": 3, "left": 1, "right": 2}, {"left": -1, "value": [1]}, {"left": -1, "value": [1]}]}`},
		{"cycle", `{"classes": [0], "dimensions": 1, "nodes": [
			{"feature": 0, "left": 0, "right": 1}, {"left": -1, "value": [1]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTree(json.RawMessage(tt.params))
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}
