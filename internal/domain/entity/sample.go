package entity

// Sample is one labelled tweet from the training data
type Sample struct {
	TweetID   string `json:"tweet_id"`
	Sentiment int    `json:"sentiment"`
	Message   string `json:"message"`
}

// SampleFilter narrows a sample listing
type SampleFilter struct {
	Sentiment *int
	Limit     int
	Offset    int
}

// CategoryCount is the share of samples carrying one label
type CategoryCount struct {
	Category   Category `json:"category"`
	Code       int      `json:"code"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}
