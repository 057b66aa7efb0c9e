package logging

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithComponent(t *testing.T) {
	var buf strings.Builder
	log := zerolog.New(&buf)

	ctx := WithContext(context.Background(), log)
	ctx = WithComponent(ctx, "config")

	FromContext(ctx).Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"config"`) {
		t.Fatalf("missing component field: %q", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("missing message: %q", out)
	}
}

func TestFromContextWithoutLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log == nil {
		t.Fatal("expected a usable logger")
	}
	// Must be a no-op, not a panic.
	log.Info().Msg("dropped")
}
