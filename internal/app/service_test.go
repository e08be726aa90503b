package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/catalogkit/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu      sync.Mutex
	stopped bool
	release chan struct{}
}

func newFakeService(name string, block bool, startErr error) *fakeService {
	return &fakeService{name: name, block: block, startErr: startErr, release: make(chan struct{})}
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-s.release
	}
	return s.startErr
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.release)
	}
	return nil
}

func (s *fakeService) wasStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func TestRunnerStopsAllOnContextCancel(t *testing.T) {
	a := newFakeService("a", true, nil)
	b := newFakeService("b", true, nil)
	closed := false
	runner := NewRunner(a, b)
	runner.onStop = func() { closed = true }

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should end cleanly, got %v", err)
	}
	if !a.wasStopped() || !b.wasStopped() {
		t.Fatalf("all services should be stopped")
	}
	if !closed {
		t.Fatalf("onStop should run after services exit")
	}
}

func TestRunnerPropagatesServiceError(t *testing.T) {
	boom := errors.New("listen failed")
	failing := newFakeService("failing", false, boom)
	blocking := newFakeService("blocking", true, nil)

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want service error got %v", err)
	}
	if !blocking.wasStopped() {
		t.Fatalf("sibling service should be stopped on failure")
	}
}

func TestRunnerRejectsEmptyAndNil(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("empty runner should fail")
	}
	if err := NewRunner(nil).Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("nil service should fail")
	}
}

func TestBuildRunnerValidatesInput(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
	if _, err := BuildRunner(&config.Config{}, "batch"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
