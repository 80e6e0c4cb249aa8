package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/exploretech/tweet-classifier/internal/domain/service"
)

// Decoding errors
var (
	ErrUnknownKind     = errors.New("unknown artifact kind")
	ErrInvalidArtifact = errors.New("invalid artifact")
)

// Envelope is the on-disk form of every artifact
type Envelope struct {
	Kind    string          `json:"kind"`
	Name    string          `json:"name,omitempty"`
	Version string          `json:"version,omitempty"`
	Params  json.RawMessage `json:"params"`
}

// VectorizerDecoder builds a vectorizer from its params
type VectorizerDecoder func(params json.RawMessage) (service.Vectorizer, error)

// ClassifierDecoder builds a classifier from its params
type ClassifierDecoder func(params json.RawMessage) (service.Classifier, error)

// VectorizerDecoders is keyed by envelope kind
var VectorizerDecoders = map[string]VectorizerDecoder{
	KindTfidf: func(p json.RawMessage) (service.Vectorizer, error) {
		v, err := decodeTextVectorizer(KindTfidf, p)
		if err != nil {
			return nil, err
		}
		return v, nil
	},
	KindCount: func(p json.RawMessage) (service.Vectorizer, error) {
		v, err := decodeTextVectorizer(KindCount, p)
		if err != nil {
			return nil, err
		}
		return v, nil
	},
}

// ClassifierDecoders is keyed by envelope kind
var ClassifierDecoders = map[string]ClassifierDecoder{
	KindLinear: func(p json.RawMessage) (service.Classifier, error) {
		c, err := decodeLinear(p)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
	KindKNN: func(p json.RawMessage) (service.Classifier, error) {
		c, err := decodeKNN(p)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
	KindTree: func(p json.RawMessage) (service.Classifier, error) {
		c, err := decodeTree(p)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
	KindRemote: func(p json.RawMessage) (service.Classifier, error) {
		c, err := decodeRemote(p)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
}

func readEnvelope(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if env.Kind == "" {
		return nil, fmt.Errorf("%w: missing kind", ErrInvalidArtifact)
	}
	if len(env.Params) == 0 {
		return nil, fmt.Errorf("%w: missing params", ErrInvalidArtifact)
	}
	return &env, nil
}

// DecodeVectorizer reads a vectorizer envelope
func DecodeVectorizer(r io.Reader) (service.Vectorizer, error) {
	env, err := readEnvelope(r)
	if err != nil {
		return nil, err
	}
	decode, ok := VectorizerDecoders[env.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, env.Kind)
	}
	return decode(env.Params)
}

// DecodeClassifier reads a classifier envelope
func DecodeClassifier(r io.Reader) (service.Classifier, error) {
	env, err := readEnvelope(r)
	if err != nil {
		return nil, err
	}
	decode, ok := ClassifierDecoders[env.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, env.Kind)
	}
	return decode(env.Params)
}

func unmarshalParams(params json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArtifact, fmt.Sprintf(format, args...))
}
