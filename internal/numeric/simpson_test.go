package numeric

import (
	"errors"
	"math"
	"testing"

	"github.com/bohounsoun/thermosim/internal/thermo"
)

func TestSimpsonExactForCubics(t *testing.T) {
	s := &Simpson{Subintervals: 4}

	got, err := s.Integrate(func(x float64) float64 { return x * x }, 0, 2)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	want := 8.0 / 3.0
	if got != want {
		t.Errorf("expected exactly %v, got %v", want, got)
	}
}

func TestSimpsonSine(t *testing.T) {
	s := NewSimpson()

	got, err := s.Integrate(math.Sin, 0, math.Pi)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("expected 2, got %v", got)
	}
}

func TestSimpsonInvalidInterval(t *testing.T) {
	tests := []struct {
		name string
		n    int
		a, b float64
	}{
		{"odd subintervals", 5, 0, 1},
		{"zero subintervals", 0, 0, 1},
		{"negative subintervals", -2, 0, 1},
		{"equal bounds", 4, 1, 1},
		{"reversed bounds", 4, 2, 1},
	}

	f := func(x float64) float64 { return x }
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Simpson{Subintervals: tt.n}
			_, err := s.Integrate(f, tt.a, tt.b)
			if !errors.Is(err, thermo.ErrInvalidInterval) {
				t.Errorf("expected ErrInvalidInterval, got %v", err)
			}
		})
	}
}
