package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/heartmarshall/glossary/internal/config"
)

func TestNewPool_RequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := NewPool(context.Background(), config.DatabaseConfig{})
	if !errors.Is(err, ErrNoDSN) {
		t.Fatalf("expected ErrNoDSN, got %v", err)
	}
}

func TestNewPool_InvalidDSN(t *testing.T) {
	t.Parallel()

	_, err := NewPool(context.Background(), config.DatabaseConfig{DSN: "postgres://%zz"})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}
