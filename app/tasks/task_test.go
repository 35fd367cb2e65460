package tasks

import (
	"testing"
	"time"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask(TaskTypeRefreshWatch, "watch-1")

	if task.GetID() == "" {
		t.Error("expected non-empty task id")
	}
	if task.GetType() != TaskTypeRefreshWatch {
		t.Errorf("expected type %q, got %q", TaskTypeRefreshWatch, task.GetType())
	}
	if task.GetSubject() != "watch-1" {
		t.Errorf("expected subject 'watch-1', got %q", task.GetSubject())
	}
	if task.GetRetryCount() != 0 {
		t.Errorf("expected retry count 0, got %d", task.GetRetryCount())
	}
	if task.GetMaxRetries() != DefaultMaxRetries {
		t.Errorf("expected max retries %d, got %d", DefaultMaxRetries, task.GetMaxRetries())
	}
}

func TestTaskRetryLimit(t *testing.T) {
	task := NewTask(TaskTypeEnrichFavorite, "pending")

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("expected retries to be exhausted")
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeRefreshWatch, "watch-1")

	if task.GetDuration() != 0 {
		t.Error("expected zero duration before start")
	}

	task.Start()
	time.Sleep(time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("expected positive duration after start")
	}
}

func TestTaskIDsUnique(t *testing.T) {
	a := NewTask(TaskTypeRefreshWatch, "watch-1")
	b := NewTask(TaskTypeRefreshWatch, "watch-1")

	if a.GetID() == b.GetID() {
		t.Error("expected distinct task ids")
	}
}
