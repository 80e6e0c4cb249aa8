package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
)

// FileLoader reads artifact envelopes from a directory
type FileLoader struct {
	dir            string
	vectorizerFile string
	models         map[entity.ModelID]string
}

// NewFileLoader creates a loader. Relative file names are resolved against dir.
func NewFileLoader(dir, vectorizerFile string, models map[entity.ModelID]string) *FileLoader {
	m := make(map[entity.ModelID]string, len(models))
	for id, file := range models {
		m[id] = file
	}
	return &FileLoader{
		dir:            dir,
		vectorizerFile: vectorizerFile,
		models:         m,
	}
}

// Models returns the configured model identifiers in menu order
func (l *FileLoader) Models() []entity.ModelID {
	var ids []entity.ModelID
	for _, id := range entity.AllModels() {
		if _, ok := l.models[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// LoadVectorizer reads the shared vectorizer
func (l *FileLoader) LoadVectorizer() (service.Vectorizer, error) {
	f, err := l.open(l.vectorizerFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := DecodeVectorizer(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", service.ErrArtifactNotFound, l.vectorizerFile, err)
	}
	return v, nil
}

// LoadClassifier reads the artifact configured for id
func (l *FileLoader) LoadClassifier(id entity.ModelID) (service.Classifier, error) {
	file, ok := l.models[id]
	if !ok {
		return nil, fmt.Errorf("%w: no artifact configured for %s", service.ErrArtifactNotFound, id)
	}

	f, err := l.open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := DecodeClassifier(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", service.ErrArtifactNotFound, file, err)
	}
	return c, nil
}

func (l *FileLoader) open(file string) (*os.File, error) {
	if file == "" {
		return nil, fmt.Errorf("%w: empty artifact path", service.ErrArtifactNotFound)
	}
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, file)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrArtifactNotFound, err)
	}
	return f, nil
}
