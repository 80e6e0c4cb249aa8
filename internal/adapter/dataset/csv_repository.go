package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
)

// Required CSV columns
const (
	columnSentiment = "sentiment"
	columnMessage   = "message"
	columnTweetID   = "tweetid"
)

// ErrMalformedDataset is returned when the CSV cannot be interpreted
var ErrMalformedDataset = errors.New("malformed dataset")

type csvRepository struct {
	samples []entity.Sample
	counts  map[int]int
}

// LoadFile reads a labelled dataset from path
func LoadFile(path string) (repository.SampleRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a labelled dataset. Columns are located by header name and
// may appear in any order; extra columns are ignored.
func Load(r io.Reader) (repository.SampleRepository, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %w", ErrMalformedDataset, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range []string{columnSentiment, columnMessage} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: no %q column", ErrMalformedDataset, name)
		}
	}
	idCol, hasID := cols[columnTweetID]

	repo := &csvRepository{counts: make(map[int]int)}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
		}
		if len(record) < len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedDataset, line, len(record))
		}

		sentiment, err := strconv.Atoi(strings.TrimSpace(record[cols[columnSentiment]]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: sentiment %q", ErrMalformedDataset, line, record[cols[columnSentiment]])
		}
		sample := entity.Sample{
			Sentiment: sentiment,
			Message:   record[cols[columnMessage]],
		}
		if hasID {
			sample.TweetID = strings.TrimSpace(record[idCol])
		}

		repo.samples = append(repo.samples, sample)
		repo.counts[sentiment]++
	}
	return repo, nil
}

func (r *csvRepository) List(_ context.Context, filter entity.SampleFilter) ([]entity.Sample, int, error) {
	matched := r.samples
	if filter.Sentiment != nil {
		matched = make([]entity.Sample, 0, r.counts[*filter.Sentiment])
		for _, s := range r.samples {
			if s.Sentiment == *filter.Sentiment {
				matched = append(matched, s)
			}
		}
	}

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}

	page := make([]entity.Sample, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (r *csvRepository) CountBySentiment(_ context.Context) (map[int]int, error) {
	out := make(map[int]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out, nil
}
