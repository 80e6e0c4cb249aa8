package service

import (
	"context"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// Vectorizer maps raw text into the feature space the classifiers were trained on
type Vectorizer interface {
	// Transform vectorizes a single text
	Transform(text string) (*entity.FeatureVector, error)

	// Dimensions returns the width of produced vectors
	Dimensions() int
}

// Classifier is a pre-trained model artifact
type Classifier interface {
	// Predict returns the raw label for a single-row feature vector
	Predict(ctx context.Context, vec *entity.FeatureVector) (entity.RawLabel, error)

	// Kind names the artifact family, e.g. "linear" or "knn"
	Kind() string

	// Dimensions returns the expected input width, or 0 when unknown
	Dimensions() int
}

// ArtifactLoader reads artifacts from persistent storage
type ArtifactLoader interface {
	LoadVectorizer() (Vectorizer, error)
	LoadClassifier(id entity.ModelID) (Classifier, error)
}
