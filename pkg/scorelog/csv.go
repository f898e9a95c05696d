package scorelog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
)

// CSVSink writes one score_history_<method>.csv file per method under dir.
// A header is written when a file is created empty.
type CSVSink struct {
	dir string

	mu     sync.Mutex
	files  map[string]*csvFile
	closed bool
}

type csvFile struct {
	f *os.File
	w *csv.Writer
}

var _ election.ScoreSink = (*CSVSink)(nil)

func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create score dir %s: %w", dir, err)
	}
	return &CSVSink{dir: dir, files: make(map[string]*csvFile)}, nil
}

// Path returns the file a method's records are written to.
func (s *CSVSink) Path(method string) string {
	return filepath.Join(s.dir, "score_history_"+method+".csv")
}

func (s *CSVSink) AppendScoreRecord(_ context.Context, rec election.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	cf, err := s.fileLocked(rec.Method)
	if err != nil {
		return err
	}
	if err := cf.w.WriteAll(Rows(rec)); err != nil {
		return fmt.Errorf("write %s scores: %w", rec.Method, err)
	}
	return nil
}

func (s *CSVSink) fileLocked(method string) (*csvFile, error) {
	if cf, ok := s.files[method]; ok {
		return cf, nil
	}

	path := s.Path(method)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	cf := &csvFile{f: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := cf.w.Write(Header()); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write header %s: %w", path, err)
		}
		cf.w.Flush()
	}
	s.files[method] = cf
	return cf, nil
}

// Close flushes and closes every open file.
func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	for method, cf := range s.files {
		cf.w.Flush()
		if err := cf.w.Error(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("flush %s scores: %w", method, err)
		}
		if err := cf.f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s scores: %w", method, err)
		}
	}
	s.files = nil
	return firstErr
}
