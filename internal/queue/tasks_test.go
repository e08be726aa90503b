package queue

import (
	"testing"

	"github.com/catalogkit/internal/config"
)

func TestComboStockAuditTaskRoundTrip(t *testing.T) {
	task, err := NewComboStockAuditTask(ComboStockAuditPayload{ComboID: 42})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskComboStockAudit {
		t.Fatalf("task type want %s got %s", TaskComboStockAudit, task.Type())
	}
	payload, err := ParseComboStockAuditPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.ComboID != 42 {
		t.Fatalf("combo id want 42 got %d", payload.ComboID)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueComboStockAudit(ComboStockAuditPayload{ComboID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("addr want 127.0.0.1:6379 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[AuditQueue] != 1 || cfg.Queues[DefaultQueue] != 3 {
		t.Fatalf("unexpected queues %v", cfg.Queues)
	}
}
