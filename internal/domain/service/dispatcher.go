package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// DefaultMaxTextLength bounds input to a single tweet
const DefaultMaxTextLength = 280

// Result is the outcome of one classification. Both the raw classifier
// output and the mapped category are returned.
type Result struct {
	Model    entity.ModelID  `json:"model"`
	Raw      entity.RawLabel `json:"raw_label"`
	Category entity.Category `json:"category"`
}

// Dispatcher vectorizes text, routes it to the selected classifier and maps
// the raw output back to a category.
type Dispatcher struct {
	registry      *Registry
	labels        *entity.LabelMap
	validate      bool
	maxTextLength int
}

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithValidation toggles input validation. It is on by default.
func WithValidation(enabled bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.validate = enabled
	}
}

// WithMaxTextLength sets the longest accepted text in characters; 0 disables the bound
func WithMaxTextLength(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.maxTextLength = n
	}
}

// NewDispatcher creates a dispatcher over an immutable registry
func NewDispatcher(registry *Registry, labels *entity.LabelMap, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:      registry,
		labels:        labels,
		validate:      true,
		maxTextLength: DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the artifact registry
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Labels returns the label map
func (d *Dispatcher) Labels() *entity.LabelMap {
	return d.labels
}

// SelectModel returns the classifier for id
func (d *Dispatcher) SelectModel(id entity.ModelID) (Classifier, error) {
	return d.registry.Select(id)
}

// ValidateText rejects input that must not reach the vectorizer.
// It is a no-op when validation is disabled.
func (d *Dispatcher) ValidateText(text string) error {
	if !d.validate {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is empty", ErrValidation)
	}
	if d.maxTextLength > 0 && utf8.RuneCountInString(text) > d.maxTextLength {
		return fmt.Errorf("%w: text exceeds %d characters", ErrValidation, d.maxTextLength)
	}
	return nil
}

// Predict runs text through the classifier and returns its raw output
func (d *Dispatcher) Predict(ctx context.Context, text string, clf Classifier) (entity.RawLabel, error) {
	if err := d.ValidateText(text); err != nil {
		return "", err
	}

	vec, err := d.registry.Vectorizer().Transform(text)
	if err != nil {
		if errors.Is(err, ErrFeatureExtraction) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrFeatureExtraction, err)
	}

	raw, err := clf.Predict(ctx, vec)
	if err != nil {
		return "", fmt.Errorf("%s prediction: %w", clf.Kind(), err)
	}
	return raw, nil
}

// Resolve maps a raw label to its category. An unmapped label is a hard
// error: it means the label map and the model disagree.
func (d *Dispatcher) Resolve(raw entity.RawLabel) (entity.Category, error) {
	category, ok := d.labels.Resolve(raw)
	if !ok {
		return "", fmt.Errorf("%w: classifier emitted %q", ErrUnknownLabel, raw)
	}
	return category, nil
}

// Classify predicts and resolves text with an already selected classifier
func (d *Dispatcher) Classify(ctx context.Context, text string, clf Classifier) (entity.RawLabel, entity.Category, error) {
	raw, err := d.Predict(ctx, text, clf)
	if err != nil {
		return "", "", err
	}
	category, err := d.Resolve(raw)
	if err != nil {
		return raw, "", err
	}
	return raw, category, nil
}

// Dispatch selects the model for id and classifies text with it
func (d *Dispatcher) Dispatch(ctx context.Context, text string, id entity.ModelID) (*Result, error) {
	clf, err := d.SelectModel(id)
	if err != nil {
		return nil, err
	}
	raw, category, err := d.Classify(ctx, text, clf)
	if err != nil {
		return nil, err
	}
	return &Result{Model: id, Raw: raw, Category: category}, nil
}
