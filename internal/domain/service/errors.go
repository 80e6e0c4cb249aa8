package service

import "errors"

// Inference error taxonomy. Callers classify failures with errors.Is.
var (
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrValidation        = errors.New("validation failed")
	ErrFeatureExtraction = errors.New("feature extraction failed")
	ErrUnknownLabel      = errors.New("unknown label")
)
