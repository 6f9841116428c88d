package context_test

import (
	"context"
	"testing"

	"github.com/mkrupp/gys-mockauth/internal/domain"
	context_ "github.com/mkrupp/gys-mockauth/internal/infra/context"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if _, ok := context_.TraceIDFromContext(ctx); ok {
		t.Fatal("TraceIDFromContext() ok on empty context")
	}

	if _, ok := context_.TraceIDFromContext(context_.WithTraceID(ctx, "")); ok {
		t.Error("TraceIDFromContext() ok for empty trace id")
	}

	got, ok := context_.TraceIDFromContext(context_.WithTraceID(ctx, "abc"))
	if !ok || got != "abc" {
		t.Errorf("TraceIDFromContext() = %q, %v, want %q, true", got, ok, "abc")
	}
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	want := domain.Identity{ID: "1", Name: "Mock User", Email: "mockuser@gyssteel.com"}

	if _, ok := context_.IdentityFromContext(ctx); ok {
		t.Fatal("IdentityFromContext() ok on empty context")
	}

	got, ok := context_.IdentityFromContext(context_.WithIdentity(ctx, want))
	if !ok || got != want {
		t.Errorf("IdentityFromContext() = %+v, %v, want %+v, true", got, ok, want)
	}
}
