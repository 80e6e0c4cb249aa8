package service

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// ModelStatus describes one enumerated model as offered to callers
type ModelStatus struct {
	ID         entity.ModelID `json:"id"`
	Name       string         `json:"name"`
	Configured bool           `json:"configured"`
	Loaded     bool           `json:"loaded"`
	Available  bool           `json:"available"`
	Kind       string         `json:"kind,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}

type registryEntry struct {
	once       sync.Once
	loaded     atomic.Bool
	load       func() (Classifier, error)
	classifier Classifier
	err        error
}

func (e *registryEntry) get() (Classifier, error) {
	e.once.Do(func() {
		e.classifier, e.err = e.load()
		e.loaded.Store(true)
	})
	return e.classifier, e.err
}

// Registry holds the loaded artifacts. It is built once and never mutated;
// lazily loaded classifiers are resolved at most once each.
type Registry struct {
	vectorizer Vectorizer
	entries    map[entity.ModelID]*registryEntry
}

type registryOptions struct {
	preload bool
	labels  *entity.LabelMap
}

// RegistryOption configures NewRegistry
type RegistryOption func(*registryOptions)

// WithPreload loads every classifier during construction instead of on first use
func WithPreload(preload bool) RegistryOption {
	return func(o *registryOptions) {
		o.preload = preload
	}
}

// WithLabelMap rejects classifiers that can emit a label outside labels
func WithLabelMap(labels *entity.LabelMap) RegistryOption {
	return func(o *registryOptions) {
		o.labels = labels
	}
}

// LabelledClassifier is implemented by classifiers that know their output set
type LabelledClassifier interface {
	Classes() []entity.RawLabel
}

// NewRegistry loads the vectorizer and registers a classifier entry for
// each model. Only a vectorizer failure is fatal; classifier failures
// surface from Select as ErrArtifactNotFound.
func NewRegistry(loader ArtifactLoader, models []entity.ModelID, opts ...RegistryOption) (*Registry, error) {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	vec, err := loader.LoadVectorizer()
	if err != nil {
		return nil, fmt.Errorf("%w: vectorizer: %w", ErrArtifactNotFound, err)
	}

	r := &Registry{
		vectorizer: vec,
		entries:    make(map[entity.ModelID]*registryEntry, len(models)),
	}
	for _, id := range models {
		if !id.IsValid() {
			return nil, fmt.Errorf("%w: unknown model %q", ErrValidation, id)
		}
		if _, ok := r.entries[id]; ok {
			continue
		}
		id := id
		r.entries[id] = &registryEntry{
			load: func() (Classifier, error) {
				return r.loadClassifier(loader, id, o.labels)
			},
		}
	}

	if o.preload {
		for _, e := range r.entries {
			_, _ = e.get()
		}
	}
	return r, nil
}

// NewStaticRegistry wraps already constructed artifacts
func NewStaticRegistry(vec Vectorizer, classifiers map[entity.ModelID]Classifier) *Registry {
	r := &Registry{
		vectorizer: vec,
		entries:    make(map[entity.ModelID]*registryEntry, len(classifiers)),
	}
	for id, c := range classifiers {
		c := c
		e := &registryEntry{
			load: func() (Classifier, error) { return c, nil },
		}
		_, _ = e.get()
		r.entries[id] = e
	}
	return r
}

func (r *Registry) loadClassifier(loader ArtifactLoader, id entity.ModelID, labels *entity.LabelMap) (Classifier, error) {
	c, err := loader.LoadClassifier(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactNotFound, id, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s: loader returned no classifier", ErrArtifactNotFound, id)
	}
	if d := c.Dimensions(); d > 0 && d != r.vectorizer.Dimensions() {
		return nil, fmt.Errorf("%w: %s expects %d features, vectorizer produces %d",
			ErrArtifactNotFound, id, d, r.vectorizer.Dimensions())
	}
	if lc, ok := c.(LabelledClassifier); ok && labels != nil {
		for _, raw := range lc.Classes() {
			if _, ok := labels.Resolve(raw); !ok {
				return nil, fmt.Errorf("%w: %s emits label %q missing from the label map",
					ErrArtifactNotFound, id, raw)
			}
		}
	}
	return c, nil
}

// Vectorizer returns the shared vectorizer
func (r *Registry) Vectorizer() Vectorizer {
	return r.vectorizer
}

// Select returns the classifier for id. It never substitutes another model.
func (r *Registry) Select(id entity.ModelID) (Classifier, error) {
	if !id.IsValid() {
		return nil, fmt.Errorf("%w: unknown model %q", ErrValidation, id)
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: no artifact configured for %s", ErrArtifactNotFound, id)
	}
	return e.get()
}

// Models reports every enumerated model in menu order. It never triggers a
// load: lazily registered models are reported as not loaded until selected.
func (r *Registry) Models() []ModelStatus {
	all := entity.AllModels()
	out := make([]ModelStatus, 0, len(all))
	for _, id := range all {
		st := ModelStatus{ID: id, Name: id.DisplayName()}
		if e, ok := r.entries[id]; ok {
			st.Configured = true
			if !e.loaded.Load() {
				st.Reason = "not loaded"
				out = append(out, st)
				continue
			}
			st.Loaded = true
			c, err := e.get()
			if err != nil {
				st.Reason = err.Error()
			} else {
				st.Available = true
				st.Kind = c.Kind()
			}
		} else {
			st.Reason = "not configured"
		}
		out = append(out, st)
	}
	return out
}

// Available returns the identifiers of usable models in menu order
func (r *Registry) Available() []entity.ModelID {
	var out []entity.ModelID
	for _, st := range r.Models() {
		if st.Available {
			out = append(out, st.ID)
		}
	}
	return out
}
