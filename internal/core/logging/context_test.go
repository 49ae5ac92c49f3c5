package logging

import (
	"context"
	"testing"
)

func TestWithCategory(t *testing.T) {
	ctx := WithCategory(context.Background(), "download-progress")

	if got := GetCategory(ctx); got != "download-progress" {
		t.Errorf("GetCategory() = %q, want %q", got, "download-progress")
	}
}

func TestWithOperation(t *testing.T) {
	ctx := WithOperation(context.Background(), "cancel")

	if got := GetOperation(ctx); got != "cancel" {
		t.Errorf("GetOperation() = %q, want %q", got, "cancel")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetCategory(ctx); got != "" {
		t.Errorf("GetCategory() = %q, want empty string", got)
	}
	if got := GetOperation(ctx); got != "" {
		t.Errorf("GetOperation() = %q, want empty string", got)
	}
}
