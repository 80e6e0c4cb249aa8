package client

import (
	"context"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
)

// KindRemote names classifiers served by an external model server
const KindRemote = "remote"

// RemoteClassifier adapts ModelClient to the Classifier interface
type RemoteClassifier struct {
	client *ModelClient
	dim    int
}

// NewRemoteClassifier creates a new RemoteClassifier. dim is the expected
// input width, or 0 when the server does not advertise one.
func NewRemoteClassifier(client *ModelClient, dim int) *RemoteClassifier {
	return &RemoteClassifier{client: client, dim: dim}
}

// Predict classifies a single feature vector, forwarding the request id in ctx
func (c *RemoteClassifier) Predict(ctx context.Context, vec *entity.FeatureVector) (entity.RawLabel, error) {
	resp, err := c.client.Predict(ctx, vec, service.RequestIDFrom(ctx))
	if err != nil {
		return "", err
	}
	return resp.Label, nil
}

// Kind returns "remote"
func (c *RemoteClassifier) Kind() string {
	return KindRemote
}

// Dimensions returns the configured input width
func (c *RemoteClassifier) Dimensions() int {
	return c.dim
}

// Ready reports whether the model server can serve predictions
func (c *RemoteClassifier) Ready(ctx context.Context) error {
	return c.client.Ready(ctx)
}
