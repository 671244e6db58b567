package scheduler

import (
	"context"
	"testing"

	"PMFSimulator/internal/model"
	"PMFSimulator/internal/store"
)

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Send(text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func TestRegisterAll_ValidCronExpression(t *testing.T) {
	s := NewScheduler(context.Background(), model.Default(), 10, nil, store.NewNoopStore(), &fakeNotifier{})
	if err := s.RegisterAll("0 0 6 * * *"); err != nil {
		t.Fatalf("unexpected error registering valid cron expression: %v", err)
	}
	if len(s.Cron.Entries()) != 1 {
		t.Fatalf("expected 1 registered entry, got %d", len(s.Cron.Entries()))
	}
}

func TestRegisterAll_InvalidCronExpressionErrors(t *testing.T) {
	s := NewScheduler(context.Background(), model.Default(), 10, nil, store.NewNoopStore(), &fakeNotifier{})
	if err := s.RegisterAll("not a cron expression"); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestRunBatchNow_RecordsAndNotifies(t *testing.T) {
	fn := &fakeNotifier{}
	seed := int64(3)
	s := NewScheduler(context.Background(), model.Default(), 50, &seed, store.NewNoopStore(), fn)
	s.RunBatchNow()

	if len(fn.sent) != 1 {
		t.Fatalf("expected exactly 1 report sent, got %d", len(fn.sent))
	}
	if fn.sent[0] == "" {
		t.Error("expected non-empty report text")
	}
}
