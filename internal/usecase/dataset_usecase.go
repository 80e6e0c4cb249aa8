package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
)

// SamplesInput filters the labelled dataset. Sentiment is a category name
// or a numeric code; empty means all.
type SamplesInput struct {
	Sentiment string
	Limit     int
	Offset    int
}

// SampleOutput is one labelled tweet
type SampleOutput struct {
	TweetID   string          `json:"tweet_id"`
	Sentiment int             `json:"sentiment"`
	Category  entity.Category `json:"category,omitempty"`
	Message   string          `json:"message"`
}

// SamplesOutput represents a page of samples
type SamplesOutput struct {
	Samples []*SampleOutput `json:"samples"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
	HasMore bool            `json:"has_more"`
}

// DistributionOutput is the per-category share of the dataset
type DistributionOutput struct {
	Total      int                    `json:"total"`
	Categories []entity.CategoryCount `json:"categories"`
}

// DatasetUsecase defines the interface for browsing the training data
type DatasetUsecase interface {
	Samples(ctx context.Context, input *SamplesInput) (*SamplesOutput, error)
	Distribution(ctx context.Context) (*DistributionOutput, error)
}

type datasetUsecase struct {
	samples repository.SampleRepository
	labels  *entity.LabelMap
}

// NewDatasetUsecase creates a new dataset usecase. A nil repository makes
// every operation fail with ErrDatasetUnavailable.
func NewDatasetUsecase(samples repository.SampleRepository, labels *entity.LabelMap) DatasetUsecase {
	return &datasetUsecase{
		samples: samples,
		labels:  labels,
	}
}

func (u *datasetUsecase) Samples(ctx context.Context, input *SamplesInput) (*SamplesOutput, error) {
	if u.samples == nil {
		return nil, ErrDatasetUnavailable
	}
	limit, offset := clampPage(input.Limit, input.Offset)

	filter := entity.SampleFilter{Limit: limit, Offset: offset}
	if input.Sentiment != "" {
		code, err := u.parseSentiment(input.Sentiment)
		if err != nil {
			return nil, err
		}
		filter.Sentiment = &code
	}

	samples, total, err := u.samples.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	outputs := make([]*SampleOutput, len(samples))
	for i, s := range samples {
		category, _ := u.labels.Category(s.Sentiment)
		outputs[i] = &SampleOutput{
			TweetID:   s.TweetID,
			Sentiment: s.Sentiment,
			Category:  category,
			Message:   s.Message,
		}
	}

	return &SamplesOutput{
		Samples: outputs,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

func (u *datasetUsecase) Distribution(ctx context.Context) (*DistributionOutput, error) {
	if u.samples == nil {
		return nil, ErrDatasetUnavailable
	}

	counts, err := u.samples.CountBySentiment(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	entries := u.labels.Entries()
	out := &DistributionOutput{
		Total:      total,
		Categories: make([]entity.CategoryCount, 0, len(entries)),
	}
	for _, e := range entries {
		c := entity.CategoryCount{Category: e.Name, Code: e.Code, Count: counts[e.Code]}
		if total > 0 {
			c.Percentage = math.Round(float64(c.Count)*10000/float64(total)) / 100
		}
		out.Categories = append(out.Categories, c)
	}
	return out, nil
}

func (u *datasetUsecase) parseSentiment(s string) (int, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		return code, nil
	}
	for _, e := range u.labels.Entries() {
		if strings.EqualFold(string(e.Name), s) {
			return e.Code, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown sentiment %q", service.ErrValidation, s)
}
