package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
	"github.com/exploretech/tweet-classifier/internal/usecase"
)

// MockPredictionUsecase is a mock implementation of PredictionUsecase
type MockPredictionUsecase struct {
	mock.Mock
}

func (m *MockPredictionUsecase) Classify(ctx context.Context, input *usecase.ClassifyInput) (*usecase.PredictionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionOutput), args.Error(1)
}

func (m *MockPredictionUsecase) ClassifyBatch(ctx context.Context, input *usecase.ClassifyBatchInput) (*usecase.BatchOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BatchOutput), args.Error(1)
}

func (m *MockPredictionUsecase) ListModels(ctx context.Context) *usecase.ModelsOutput {
	args := m.Called(ctx)
	return args.Get(0).(*usecase.ModelsOutput)
}

func (m *MockPredictionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*usecase.PredictionOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionOutput), args.Error(1)
}

func (m *MockPredictionUsecase) List(ctx context.Context, input *usecase.ListPredictionsInput) (*usecase.PredictionListOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionListOutput), args.Error(1)
}

// MockDatasetUsecase is a mock implementation of DatasetUsecase
type MockDatasetUsecase struct {
	mock.Mock
}

func (m *MockDatasetUsecase) Samples(ctx context.Context, input *usecase.SamplesInput) (*usecase.SamplesOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SamplesOutput), args.Error(1)
}

func (m *MockDatasetUsecase) Distribution(ctx context.Context) (*usecase.DistributionOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DistributionOutput), args.Error(1)
}

// MockPageUsecase is a mock implementation of PageUsecase
type MockPageUsecase struct {
	mock.Mock
}

func (m *MockPageUsecase) Menu(ctx context.Context) []entity.MenuItem {
	args := m.Called(ctx)
	return args.Get(0).([]entity.MenuItem)
}

func (m *MockPageUsecase) Get(ctx context.Context, slug string) (*entity.Page, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Page), args.Error(1)
}

type stubVectorizer struct{}

func (stubVectorizer) Transform(string) (*entity.FeatureVector, error) {
	return &entity.FeatureVector{Dim: 2}, nil
}

func (stubVectorizer) Dimensions() int { return 2 }

type stubClassifier struct {
	kind string
}

func (c stubClassifier) Predict(context.Context, *entity.FeatureVector) (entity.RawLabel, error) {
	return "0", nil
}

func (c stubClassifier) Kind() string { return c.kind }

func (c stubClassifier) Dimensions() int { return 2 }

// remoteClassifier mimics a classifier served by a remote model server
type remoteClassifier struct {
	stubClassifier
	ready bool
}

func (c remoteClassifier) Ready(context.Context) error {
	if !c.ready {
		return errors.New("model server not ready")
	}
	return nil
}

func newTestRegistry(classifiers map[entity.ModelID]service.Classifier) *service.Registry {
	return service.NewStaticRegistry(stubVectorizer{}, classifiers)
}
