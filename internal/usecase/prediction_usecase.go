package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/metrics"
)

// MaxBatchSize bounds the number of texts in one batch request
const MaxBatchSize = 100

// ClassifyInput represents the input for classifying one text
type ClassifyInput struct {
	Text      string `json:"text"`
	Model     string `json:"model" binding:"required"`
	RequestID string `json:"-"`
}

// ClassifyBatchInput represents the input for classifying several texts with one model
type ClassifyBatchInput struct {
	Texts     []string `json:"texts" binding:"required,min=1,max=100"`
	Model     string   `json:"model" binding:"required"`
	RequestID string   `json:"-"`
}

// ListPredictionsInput filters the prediction history
type ListPredictionsInput struct {
	Model  string
	Limit  int
	Offset int
}

// PredictionOutput represents one classification
type PredictionOutput struct {
	PredictionID uuid.UUID       `json:"prediction_id"`
	Model        entity.ModelID  `json:"model"`
	ModelName    string          `json:"model_name"`
	Text         string          `json:"text"`
	RawLabel     entity.RawLabel `json:"raw_label"`
	Category     entity.Category `json:"category"`
	Cached       bool            `json:"cached"`
	LatencyMs    int64           `json:"latency_ms"`
	CreatedAt    string          `json:"created_at"`
}

// BatchOutput represents the result of a batch classification
type BatchOutput struct {
	Model       entity.ModelID      `json:"model"`
	ModelName   string              `json:"model_name"`
	Predictions []*PredictionOutput `json:"predictions"`
	Count       int                 `json:"count"`
}

// PredictionListOutput represents a page of prediction history
type PredictionListOutput struct {
	Predictions []*PredictionOutput `json:"predictions"`
	Total       int64               `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	HasMore     bool                `json:"has_more"`
}

// ModelsOutput lists the enumerated models and the label table
type ModelsOutput struct {
	Models     []service.ModelStatus `json:"models"`
	Categories []entity.LabelEntry   `json:"categories"`
}

// PredictionUsecase defines the interface for classification business logic
type PredictionUsecase interface {
	Classify(ctx context.Context, input *ClassifyInput) (*PredictionOutput, error)
	ClassifyBatch(ctx context.Context, input *ClassifyBatchInput) (*BatchOutput, error)
	ListModels(ctx context.Context) *ModelsOutput
	GetByID(ctx context.Context, id uuid.UUID) (*PredictionOutput, error)
	List(ctx context.Context, input *ListPredictionsInput) (*PredictionListOutput, error)
}

type predictionUsecase struct {
	dispatcher *service.Dispatcher
	history    repository.PredictionRepository
	cache      repository.PredictionCache
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// PredictionOption configures optional collaborators
type PredictionOption func(*predictionUsecase)

// WithHistory persists every prediction
func WithHistory(repo repository.PredictionRepository) PredictionOption {
	return func(u *predictionUsecase) {
		u.history = repo
	}
}

// WithCache reuses raw labels for texts seen before
func WithCache(cache repository.PredictionCache, ttl time.Duration) PredictionOption {
	return func(u *predictionUsecase) {
		u.cache = cache
		u.cacheTTL = ttl
	}
}

// WithMetrics records prediction counters
func WithMetrics(m *metrics.Metrics) PredictionOption {
	return func(u *predictionUsecase) {
		u.metrics = m
	}
}

// NewPredictionUsecase creates a new prediction usecase
func NewPredictionUsecase(dispatcher *service.Dispatcher, logger *zap.Logger, opts ...PredictionOption) PredictionUsecase {
	u := &predictionUsecase{
		dispatcher: dispatcher,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *predictionUsecase) Classify(ctx context.Context, input *ClassifyInput) (*PredictionOutput, error) {
	id, clf, err := u.selectModel(input.Model)
	if err != nil {
		return nil, err
	}

	prediction, err := u.classifyOne(ctx, id, clf, input.Text, input.RequestID)
	if err != nil {
		return nil, err
	}

	if u.history != nil {
		if err := u.history.Create(ctx, prediction); err != nil {
			u.logger.Warn("Failed to record prediction",
				zap.String("prediction_id", prediction.ID.String()),
				zap.Error(err),
			)
		}
	}

	return toPredictionOutput(prediction), nil
}

func (u *predictionUsecase) ClassifyBatch(ctx context.Context, input *ClassifyBatchInput) (*BatchOutput, error) {
	if len(input.Texts) == 0 || len(input.Texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch must hold between 1 and %d texts", service.ErrValidation, MaxBatchSize)
	}

	id, clf, err := u.selectModel(input.Model)
	if err != nil {
		return nil, err
	}

	predictions := make([]*entity.Prediction, 0, len(input.Texts))
	for i, text := range input.Texts {
		p, err := u.classifyOne(ctx, id, clf, text, input.RequestID)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		predictions = append(predictions, p)
	}

	if u.history != nil {
		if err := u.history.CreateBatch(ctx, predictions); err != nil {
			u.logger.Warn("Failed to record prediction batch",
				zap.Int("count", len(predictions)),
				zap.Error(err),
			)
		}
	}

	outputs := make([]*PredictionOutput, len(predictions))
	for i, p := range predictions {
		outputs[i] = toPredictionOutput(p)
	}
	return &BatchOutput{
		Model:       id,
		ModelName:   id.DisplayName(),
		Predictions: outputs,
		Count:       len(outputs),
	}, nil
}

func (u *predictionUsecase) ListModels(_ context.Context) *ModelsOutput {
	return &ModelsOutput{
		Models:     u.dispatcher.Registry().Models(),
		Categories: u.dispatcher.Labels().Entries(),
	}
}

func (u *predictionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*PredictionOutput, error) {
	if u.history == nil {
		return nil, ErrHistoryUnavailable
	}

	prediction, err := u.history.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prediction == nil {
		return nil, ErrPredictionNotFound
	}

	return toPredictionOutput(prediction), nil
}

func (u *predictionUsecase) List(ctx context.Context, input *ListPredictionsInput) (*PredictionListOutput, error) {
	if u.history == nil {
		return nil, ErrHistoryUnavailable
	}
	limit, offset := clampPage(input.Limit, input.Offset)

	var (
		predictions []*entity.Prediction
		total       int64
		err         error
	)
	if input.Model != "" {
		id, ok := entity.ParseModelID(input.Model)
		if !ok {
			return nil, fmt.Errorf("%w: unknown model %q", service.ErrValidation, input.Model)
		}
		predictions, total, err = u.history.ListByModel(ctx, id, limit, offset)
	} else {
		predictions, total, err = u.history.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	outputs := make([]*PredictionOutput, len(predictions))
	for i, p := range predictions {
		outputs[i] = toPredictionOutput(p)
	}

	return &PredictionListOutput{
		Predictions: outputs,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		HasMore:     int64(offset+limit) < total,
	}, nil
}

func (u *predictionUsecase) selectModel(model string) (entity.ModelID, service.Classifier, error) {
	id, ok := entity.ParseModelID(model)
	if !ok {
		u.observeFailure(entity.ModelID(model), service.ErrValidation)
		return "", nil, fmt.Errorf("%w: unknown model %q", service.ErrValidation, model)
	}

	clf, err := u.dispatcher.SelectModel(id)
	if err != nil {
		u.observeFailure(id, err)
		return "", nil, err
	}
	return id, clf, nil
}

func (u *predictionUsecase) classifyOne(ctx context.Context, id entity.ModelID, clf service.Classifier, text, requestID string) (*entity.Prediction, error) {
	start := time.Now()

	if err := u.dispatcher.ValidateText(text); err != nil {
		u.observeFailure(id, err)
		return nil, err
	}

	raw, cached := u.lookup(ctx, id, text)

	var (
		category entity.Category
		err      error
	)
	if cached {
		category, err = u.dispatcher.Resolve(raw)
	} else {
		inferStart := time.Now()
		raw, category, err = u.dispatcher.Classify(service.WithRequestID(ctx, requestID), text, clf)
		if err == nil && u.metrics != nil {
			u.metrics.ObserveInference(string(id), time.Since(inferStart))
		}
	}
	if err != nil {
		u.observeFailure(id, err)
		return nil, err
	}
	if !cached {
		u.store(ctx, id, text, raw)
	}

	elapsed := time.Since(start)
	if u.metrics != nil {
		u.metrics.ObservePrediction(string(id), string(category))
	}

	prediction := entity.NewPrediction(id, text, raw, category)
	prediction.SetTiming(elapsed.Milliseconds(), cached, requestID)
	prediction.CreatedAt = time.Now().UTC()
	return prediction, nil
}

func (u *predictionUsecase) lookup(ctx context.Context, id entity.ModelID, text string) (entity.RawLabel, bool) {
	if u.cache == nil {
		return "", false
	}

	raw, ok, err := u.cache.Get(ctx, id, text)
	if err != nil {
		u.logger.Warn("Prediction cache lookup failed", zap.String("model", string(id)), zap.Error(err))
		return "", false
	}
	if u.metrics != nil {
		u.metrics.ObserveCache(ok)
	}
	return raw, ok
}

func (u *predictionUsecase) store(ctx context.Context, id entity.ModelID, text string, raw entity.RawLabel) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, id, text, raw, u.cacheTTL); err != nil {
		u.logger.Warn("Prediction cache store failed", zap.String("model", string(id)), zap.Error(err))
	}
}

func (u *predictionUsecase) observeFailure(id entity.ModelID, err error) {
	if u.metrics == nil {
		return
	}
	model := string(id)
	if !id.IsValid() {
		model = "unknown"
	}
	u.metrics.ObserveFailure(model, FailureReason(err))
}

// FailureReason names the class of a classification error
func FailureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return "validation"
	case errors.Is(err, service.ErrArtifactNotFound):
		return "artifact_not_found"
	case errors.Is(err, service.ErrFeatureExtraction):
		return "feature_extraction"
	case errors.Is(err, service.ErrUnknownLabel):
		return "unknown_label"
	default:
		return "internal"
	}
}

func toPredictionOutput(p *entity.Prediction) *PredictionOutput {
	return &PredictionOutput{
		PredictionID: p.ID,
		Model:        p.ModelID,
		ModelName:    p.ModelID.DisplayName(),
		Text:         p.Text,
		RawLabel:     p.RawLabel,
		Category:     p.Category,
		Cached:       p.Cached,
		LatencyMs:    p.LatencyMs,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
