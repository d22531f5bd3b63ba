package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starquake/quizapp/internal/logging"
	"github.com/starquake/quizapp/internal/quiz"
)

// FileFormatVersion is the version written into every YAML document.
const FileFormatVersion = 1

var (
	// ErrUnsupportedFileVersion is returned when a YAML document carries a version we cannot read.
	ErrUnsupportedFileVersion = errors.New("unsupported file version")
	// ErrDuplicateQuizName is returned when a YAML document lists the same quiz name twice.
	ErrDuplicateQuizName = errors.New("duplicate quiz name")
)

type fileDocument struct {
	Version int        `yaml:"version"`
	Quizzes []fileQuiz `yaml:"quizzes"`
}

type fileQuiz struct {
	Name      string         `yaml:"name"`
	CreatedAt time.Time      `yaml:"created_at"`
	Questions []fileQuestion `yaml:"questions"`
}

type fileQuestion struct {
	Text    string   `yaml:"text"`
	Options []string `yaml:"options"`
	Correct int      `yaml:"correct"`
}

// FileStore keeps the catalog in a single YAML file.
type FileStore struct {
	path   string
	logger *logging.Logger
}

// NewFileStore creates a new FileStore for the file at path.
func NewFileStore(path string, logger *logging.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the location of the YAML file.
func (s *FileStore) Path() string {
	return s.path
}

// Close does nothing, the file is only open while loading or saving.
func (*FileStore) Close() error {
	return nil
}

// Load reads and validates the YAML file.
func (s *FileStore) Load(ctx context.Context) (quiz.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}

	var doc fileDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse quiz file %s: %w", s.path, err)
	}
	if err = decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("parse quiz file %s: multiple documents are not supported", s.path)
		}

		return nil, fmt.Errorf("parse quiz file %s: %w", s.path, err)
	}
	if doc.Version != FileFormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFileVersion, doc.Version)
	}

	c := make(quiz.Catalog, len(doc.Quizzes))
	for _, fq := range doc.Quizzes {
		if _, ok := c[fq.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateQuizName, fq.Name)
		}
		qz := &quiz.Quiz{CreatedAt: fq.CreatedAt, Questions: make([]*quiz.Question, 0, len(fq.Questions))}
		for _, fqs := range fq.Questions {
			qz.Questions = append(qz.Questions, &quiz.Question{
				Text:         fqs.Text,
				Options:      fqs.Options,
				CorrectIndex: fqs.Correct,
			})
		}
		c[fq.Name] = qz
	}

	if err = validateCatalog(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "loaded quiz file", logging.String("path", s.path), logging.Int("quizzes", len(c)))

	return c, nil
}

// Save writes c to a temporary file next to the target and renames it into place,
// so readers only ever see the old or the new document.
func (s *FileStore) Save(ctx context.Context, c quiz.Catalog) error {
	if err := validateCatalog(ctx, c); err != nil {
		return err
	}

	doc := fileDocument{Version: FileFormatVersion, Quizzes: make([]fileQuiz, 0, len(c))}
	for _, name := range c.Names() {
		qz := c[name]
		fq := fileQuiz{Name: name, CreatedAt: qz.CreatedAt, Questions: make([]fileQuestion, 0, len(qz.Questions))}
		for _, qs := range qz.Questions {
			fq.Questions = append(fq.Questions, fileQuestion{Text: qs.Text, Options: qs.Options, Correct: qs.CorrectIndex})
		}
		doc.Quizzes = append(doc.Quizzes, fq)
	}

	payload, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode quiz file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create quiz directory: %w", err)
	}

	file, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary quiz file: %w", err)
	}
	tmpPath := file.Name()

	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	if err = errors.Join(writeErr, syncErr, closeErr); err != nil {
		s.removeTemp(ctx, tmpPath)

		return fmt.Errorf("write temporary quiz file: %w", err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		s.removeTemp(ctx, tmpPath)

		return fmt.Errorf("replace quiz file: %w", err)
	}

	s.logger.Debug(ctx, "saved quiz file", logging.String("path", s.path), logging.Int("quizzes", len(c)))

	return nil
}

func (s *FileStore) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn(ctx, "error removing temporary quiz file", logging.String("path", path), logging.ErrAttr(err))
	}
}
