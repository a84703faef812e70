package strategy

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gw12s/Stonks/internal/domain"
)

// stubGenerator is a minimal SignalGenerator implementation used in registry
// tests.
type stubGenerator struct {
	name string
}

func (s *stubGenerator) Name() string { return s.name }
func (s *stubGenerator) Generate(_ []domain.Bar) ([]domain.SignalPoint, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	g := &stubGenerator{name: "test-rule"}

	r.Register(g)

	got, ok := r.Get("test-rule")
	if !ok {
		t.Fatal("Get returned false for registered generator")
	}
	if got.Name() != "test-rule" {
		t.Errorf("Get returned generator with Name() = %q, want %q", got.Name(), "test-rule")
	}
}

func TestRegistryGet_NotFound(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("nonexistent")
	if ok {
		t.Error("Get returned true for unregistered generator")
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubGenerator{name: "beta"})
	r.Register(&stubGenerator{name: "alpha"})

	names := r.List()
	if len(names) != 2 {
		t.Fatalf("List returned %d names, want 2", len(names))
	}
	// List returns sorted names.
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("List returned %v, want [alpha beta]", names)
	}
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// barsFromCloses builds a daily bar series from close prices, one bar per
// weekday-agnostic calendar day starting 2024-01-01.
func barsFromCloses(closes []float64) []domain.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = domain.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}
