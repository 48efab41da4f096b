package ingest

import (
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

type SinkInterface interface {
	Append(record any) error
	Close() error
}

// JsonlSink appends one JSON document per line to a file. Records are
// immutable once written; a failed append drops the record and leaves the
// file untouched past the last complete line.
type JsonlSink struct {
	mu   sync.Mutex
	file *os.File
	path string
}

func NewJsonlSink(path string) (*JsonlSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open sink %s: %w", path, err)
	}
	return &JsonlSink{file: file, path: path}, nil
}

func (s *JsonlSink) Append(record any) error {
	gson, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("cannot encode record for %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Write(append(gson, '\n')); err != nil {
		return fmt.Errorf("cannot append to %s: %w", s.path, err)
	}
	return nil
}

func (s *JsonlSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
