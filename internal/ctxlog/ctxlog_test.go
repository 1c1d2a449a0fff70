package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	FromContext(ctx).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "k=v")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
	assert.Same(t, slog.Default(), FromContext(WithLogger(context.Background(), nil)))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx, logger := With(WithLogger(context.Background(), base), "file", "index.html")
	assert.Same(t, logger, FromContext(ctx))

	FromContext(ctx).Info("parsed", "nodes", 3)
	assert.Contains(t, buf.String(), "file=index.html")
	assert.Contains(t, buf.String(), "nodes=3")
}
