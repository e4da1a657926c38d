package scaffold

import (
	"context"
	"sync"
)

// recordingSink keeps every operation in call order and can be told to
// fail on specific paths.
type recordingSink struct {
	mu    sync.Mutex
	ops   []string
	files map[string]string
	fail  map[string]error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		files: make(map[string]string),
		fail:  make(map[string]error),
	}
}

func (s *recordingSink) BuildPath(rel string) string { return rel }

func (s *recordingSink) EnsureDirectory(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[path]; err != nil {
		return err
	}
	s.ops = append(s.ops, "mkdir "+path)
	return nil
}

func (s *recordingSink) WriteFile(_ context.Context, path string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[path]; err != nil {
		return err
	}
	s.ops = append(s.ops, "write "+path)
	s.files[path] = string(content)
	return nil
}

func (s *recordingSink) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

func indexOf(ops []string, op string) int {
	for i, o := range ops {
		if o == op {
			return i
		}
	}
	return -1
}
