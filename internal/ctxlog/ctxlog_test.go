package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Errorf("Expected attached logger, got %v", got)
	}
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Errorf("Expected default logger, got %v", got)
	}
}
