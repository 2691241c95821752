package sense

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/gridsense/geom"
)

// TestNewSenseSourceValidation verifies construction fails fast on bad input.
func TestNewSenseSourceValidation(t *testing.T) {
	tests := []struct {
		name      string
		algo      Algorithm
		radius    float64
		intensity float64
		want      error
	}{
		{"negative radius", Shadow, -0.5, 1, ErrNegativeRadius},
		{"infinite radius", Ripple, math.Inf(1), 1, ErrInvalidRadius},
		{"nan radius", Ripple, math.NaN(), 1, ErrInvalidRadius},
		{"zero intensity", Shadow, 3, 0, ErrInvalidIntensity},
		{"unknown algorithm", Algorithm(42), 3, 1, ErrUnknownAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSenseSource(tt.algo, geom.Pt(0, 0), tt.radius, geom.Circle, tt.intensity)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestSenseSourceRestrict verifies cone bounds are enforced and rejected calls keep state.
func TestSenseSourceRestrict(t *testing.T) {
	s, err := NewSenseSource(Shadow, geom.Pt(0, 0), 5, geom.Circle, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.IsAngleRestricted() || s.Span() != 360 {
		t.Error("Expected a new source to be unrestricted")
	}
	if err := s.Restrict(90, 45); err != nil {
		t.Fatal(err)
	}

	bad := []struct {
		angle, span float64
		want        error
	}{
		{-1, 45, ErrInvalidAngle},
		{360, 45, ErrInvalidAngle},
		{math.NaN(), 45, ErrInvalidAngle},
		{10, 0, ErrInvalidSpan},
		{10, 360.5, ErrInvalidSpan},
	}
	for _, b := range bad {
		if err := s.Restrict(b.angle, b.span); !errors.Is(err, b.want) {
			t.Errorf("Restrict(%v, %v): expected %v, got %v", b.angle, b.span, b.want, err)
		}
	}
	if s.Angle() != 90 || s.Span() != 45 {
		t.Errorf("Expected rejected calls to keep 90/45, got %v/%v", s.Angle(), s.Span())
	}

	if err := s.Restrict(0, 360); err != nil {
		t.Errorf("Expected a full circle span to be accepted, got %v", err)
	}
	s.Unrestrict()
	if s.IsAngleRestricted() {
		t.Error("Expected Unrestrict to clear the cone")
	}
}

// TestSenseSourceAdjacency verifies adjacency rules must suit the shape.
func TestSenseSourceAdjacency(t *testing.T) {
	s, err := NewSenseSource(Ripple, geom.Pt(0, 0), 5, geom.Circle, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.Adjacency() != geom.EightWay {
		t.Errorf("Expected circles to default to eight-way, got %s", s.Adjacency())
	}
	if err := s.SetAdjacency(geom.Cardinals); !errors.Is(err, geom.ErrIncompatibleAdjacency) {
		t.Errorf("Expected ErrIncompatibleAdjacency, got %v", err)
	}

	if err := s.SetShape(geom.Diamond); err != nil {
		t.Fatal(err)
	}
	if s.Adjacency() != geom.Cardinals {
		t.Errorf("Expected diamonds to follow with cardinals, got %s", s.Adjacency())
	}
	if err := s.SetAdjacency(geom.Cardinals); err != nil {
		t.Fatal(err)
	}
	if err := s.SetShape(geom.Square); !errors.Is(err, geom.ErrIncompatibleAdjacency) {
		t.Errorf("Expected explicit cardinals to refuse squares, got %v", err)
	}
	if s.Shape() != geom.Diamond {
		t.Errorf("Expected shape to stay diamond, got %s", s.Shape())
	}
}

// TestParseAlgorithm checks configuration names round-trip.
func TestParseAlgorithm(t *testing.T) {
	for _, a := range Algorithms() {
		got, err := ParseAlgorithm(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got, err := ParseAlgorithm(" Ripple-Very-Loose "); err != nil || got != RippleVeryLoose {
		t.Errorf("Expected dashed name to parse, got %v, %v", got, err)
	}
	if _, err := ParseAlgorithm("sonar"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
	if Shadow.IsRipple() || !RippleTight.IsRipple() {
		t.Error("IsRipple misclassifies algorithms")
	}
}
