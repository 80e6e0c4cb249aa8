package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is a recorded classification of one text
type Prediction struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ModelID   ModelID   `json:"model_id" gorm:"type:varchar(50);not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	RawLabel  RawLabel  `json:"raw_label" gorm:"type:varchar(50);not null"`
	Category  Category  `json:"category" gorm:"type:varchar(50);not null;index"`
	Cached    bool      `json:"cached" gorm:"default:false"`
	LatencyMs int64     `json:"latency_ms" gorm:"default:0"`
	RequestID string    `json:"request_id" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (Prediction) TableName() string {
	return "predictions"
}

// NewPrediction creates a new Prediction for a classified text
func NewPrediction(model ModelID, text string, raw RawLabel, category Category) *Prediction {
	return &Prediction{
		ID:       uuid.New(),
		ModelID:  model,
		Text:     text,
		RawLabel: raw,
		Category: category,
	}
}

// SetTiming records how the prediction was served
func (p *Prediction) SetTiming(latencyMs int64, cached bool, requestID string) {
	p.LatencyMs = latencyMs
	p.Cached = cached
	p.RequestID = requestID
}
