package entity

import "strings"

// ModelID identifies one of the supported classifier kinds
type ModelID string

const (
	ModelLogisticRegression ModelID = "logistic_regression"
	ModelKNN                ModelID = "knn"
	ModelLinearSVC          ModelID = "linear_svc"
	ModelDecisionTree       ModelID = "decision_tree"
	ModelSVC                ModelID = "svc"
)

var allModels = []ModelID{
	ModelLogisticRegression,
	ModelKNN,
	ModelLinearSVC,
	ModelDecisionTree,
	ModelSVC,
}

var modelDisplayNames = map[ModelID]string{
	ModelLogisticRegression: "Logistic Regression",
	ModelKNN:                "KNN",
	ModelLinearSVC:          "Linear SVC",
	ModelDecisionTree:       "Decision Tree",
	ModelSVC:                "SVC",
}

// modelAliases maps normalized user-facing names to identifiers.
var modelAliases = map[string]ModelID{
	"logistic regression": ModelLogisticRegression,
	"logistic_regression": ModelLogisticRegression,
	"logistic":            ModelLogisticRegression,
	"knn":                 ModelKNN,
	"kneighbors":          ModelKNN,
	"k nearest neighbors": ModelKNN,
	"linear svc":          ModelLinearSVC,
	"linear_svc":          ModelLinearSVC,
	"linearsvc":           ModelLinearSVC,
	"decision tree":       ModelDecisionTree,
	"decision_tree":       ModelDecisionTree,
	"svc":                 ModelSVC,
}

// AllModels returns every enumerated model identifier in menu order
func AllModels() []ModelID {
	out := make([]ModelID, len(allModels))
	copy(out, allModels)
	return out
}

// ParseModelID resolves an identifier or display name to a ModelID.
// Matching ignores case and surrounding whitespace.
func ParseModelID(s string) (ModelID, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	id, ok := modelAliases[key]
	return id, ok
}

// IsValid reports whether m belongs to the enumerated set
func (m ModelID) IsValid() bool {
	_, ok := modelDisplayNames[m]
	return ok
}

// DisplayName returns the human-readable model name
func (m ModelID) DisplayName() string {
	if name, ok := modelDisplayNames[m]; ok {
		return name
	}
	return string(m)
}

func (m ModelID) String() string {
	return string(m)
}
