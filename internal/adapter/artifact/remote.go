package artifact

import (
	"encoding/json"
	"time"

	"github.com/exploretech/tweet-classifier/internal/adapter/client"
)

// KindRemote delegates prediction to an external model server
const KindRemote = client.KindRemote

const defaultRemoteTimeout = 5 * time.Second

type remoteParams struct {
	URL        string `json:"url"`
	Timeout    string `json:"timeout"`
	Dimensions int    `json:"dimensions"`
}

func decodeRemote(raw json.RawMessage) (*client.RemoteClassifier, error) {
	var p remoteParams
	if err := unmarshalParams(raw, &p); err != nil {
		return nil, err
	}

	if p.URL == "" {
		return nil, invalid("remote model needs a url")
	}
	if p.Dimensions < 0 {
		return nil, invalid("remote model has negative dimensions")
	}

	timeout := defaultRemoteTimeout
	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil || d <= 0 {
			return nil, invalid("remote timeout %q is not a positive duration", p.Timeout)
		}
		timeout = d
	}

	return client.NewRemoteClassifier(client.NewModelClient(p.URL, timeout), p.Dimensions), nil
}
