package sense

import (
	"errors"
	"fmt"
	"math"
)

// Configuration errors. Callers test for them with errors.Is; returned errors
// usually wrap one of these with the offending value.
var (
	ErrNegativeRadius    = errors.New("radius must be non-negative")
	ErrInvalidRadius     = errors.New("radius must be finite")
	ErrInvalidAngle      = errors.New("angle must be within [0, 360)")
	ErrInvalidSpan       = errors.New("span must be within (0, 360]")
	ErrInvalidIntensity  = errors.New("intensity must be positive and finite")
	ErrOriginOutOfBounds = errors.New("origin outside resistance grid")
	ErrNilResistance     = errors.New("nil resistance view")
	ErrNilSource         = errors.New("nil sense source")
	ErrDuplicateSource   = errors.New("sense source already registered")
	ErrUnknownSource     = errors.New("sense source not registered")
	ErrUnknownAlgorithm  = errors.New("unknown sense algorithm")
	ErrInvalidProfile    = errors.New("invalid ripple profile")
)

func checkRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, r)
	}
	if r < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, r)
	}
	return nil
}

func checkCone(angle, span float64) error {
	if math.IsNaN(angle) || angle < 0 || angle >= 360 {
		return fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	if math.IsNaN(span) || span <= 0 || span > 360 {
		return fmt.Errorf("%w: %v", ErrInvalidSpan, span)
	}
	return nil
}
