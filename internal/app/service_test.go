package app

import (
	"context"
	"testing"
	"time"
)

type blockingService struct {
	name    string
	started chan struct{}
	stopped chan struct{}
}

func newBlockingService(name string) *blockingService {
	return &blockingService{
		name:    name,
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *blockingService) Name() string { return s.name }

func (s *blockingService) Start(ctx context.Context) error {
	close(s.started)
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) Stop(ctx context.Context) error {
	close(s.stopped)
	return nil
}

func TestNewRunnerDropsNilServices(t *testing.T) {
	runner := NewRunner(nil, newBlockingService("api"), nil)
	if len(runner.services) != 1 {
		t.Fatalf("services want 1 got %d", len(runner.services))
	}
}

func TestRunStopsServicesOnContextCancel(t *testing.T) {
	svc := newBlockingService("api")
	runner := NewRunner(svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, time.Second, nil)
	}()

	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("service did not start")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run after cancel want nil got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	select {
	case <-svc.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("service was not stopped")
	}
}

func TestRunWithNoServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatal("run with no services should fail")
	}
}
