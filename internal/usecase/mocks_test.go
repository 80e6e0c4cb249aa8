package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
)

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Create(ctx context.Context, prediction *entity.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) CreateBatch(ctx context.Context, predictions []*entity.Prediction) error {
	args := m.Called(ctx, predictions)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Prediction, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Prediction), args.Get(1).(int64), args.Error(2)
}

func (m *MockPredictionRepository) ListByModel(ctx context.Context, model entity.ModelID, limit, offset int) ([]*entity.Prediction, int64, error) {
	args := m.Called(ctx, model, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Prediction), args.Get(1).(int64), args.Error(2)
}

// MockPredictionCache is a mock implementation of PredictionCache
type MockPredictionCache struct {
	mock.Mock
}

func (m *MockPredictionCache) Get(ctx context.Context, model entity.ModelID, text string) (entity.RawLabel, bool, error) {
	args := m.Called(ctx, model, text)
	return args.Get(0).(entity.RawLabel), args.Bool(1), args.Error(2)
}

func (m *MockPredictionCache) Set(ctx context.Context, model entity.ModelID, text string, label entity.RawLabel, ttl time.Duration) error {
	args := m.Called(ctx, model, text, label, ttl)
	return args.Error(0)
}

// MockSampleRepository is a mock implementation of SampleRepository
type MockSampleRepository struct {
	mock.Mock
}

func (m *MockSampleRepository) List(ctx context.Context, filter entity.SampleFilter) ([]entity.Sample, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Sample), args.Int(1), args.Error(2)
}

func (m *MockSampleRepository) CountBySentiment(ctx context.Context) (map[int]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int), args.Error(1)
}

// MockPageRepository is a mock implementation of PageRepository
type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) Menu() []entity.MenuItem {
	args := m.Called()
	return args.Get(0).([]entity.MenuItem)
}

func (m *MockPageRepository) Get(slug string) *entity.Page {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entity.Page)
}

// keywordVectorizer maps a fixed word list onto columns
type keywordVectorizer struct {
	words []string
}

func (v keywordVectorizer) Transform(text string) (*entity.FeatureVector, error) {
	values := make(map[int]float64)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		for i, w := range v.words {
			if tok == w {
				values[i]++
			}
		}
	}
	return entity.NewFeatureVector(len(v.words), values), nil
}

func (v keywordVectorizer) Dimensions() int {
	return len(v.words)
}

// keywordClassifier returns the label of the first non-zero column, or
// fallback for an empty vector
type keywordClassifier struct {
	labels   []entity.RawLabel
	fallback entity.RawLabel
	calls    int
}

func (c *keywordClassifier) Predict(_ context.Context, vec *entity.FeatureVector) (entity.RawLabel, error) {
	c.calls++
	if vec.NNZ() == 0 {
		return c.fallback, nil
	}
	return c.labels[vec.Indices[0]], nil
}

func (c *keywordClassifier) Kind() string {
	return "keyword"
}

func (c *keywordClassifier) Dimensions() int {
	return len(c.labels)
}

func newTestDispatcher(classifiers map[entity.ModelID]service.Classifier, opts ...service.DispatcherOption) *service.Dispatcher {
	vec := keywordVectorizer{words: []string{"hoax", "weather", "humans", "report"}}
	registry := service.NewStaticRegistry(vec, classifiers)
	return service.NewDispatcher(registry, entity.DefaultLabelMap(), opts...)
}

func newKeywordClassifier() *keywordClassifier {
	return &keywordClassifier{labels: []entity.RawLabel{"-1", "0", "1", "2"}, fallback: "0"}
}
