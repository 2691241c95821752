package sense

import (
	"fmt"
	"strings"
)

// Algorithm selects how a SenseSource spreads.
type Algorithm uint8

const (
	// Shadow lights only cells in direct line of sight, like the FOV engine.
	Shadow Algorithm = iota
	// Ripple floods outward and bends moderately around obstacles.
	Ripple
	// RippleLoose bends more than Ripple.
	RippleLoose
	// RippleTight bends less than Ripple.
	RippleTight
	// RippleVeryLoose bends the most.
	RippleVeryLoose
)

var algorithmNames = [...]string{
	Shadow:          "shadow",
	Ripple:          "ripple",
	RippleLoose:     "ripple_loose",
	RippleTight:     "ripple_tight",
	RippleVeryLoose: "ripple_very_loose",
}

// Algorithms lists every algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{Shadow, Ripple, RippleLoose, RippleTight, RippleVeryLoose}
}

// Valid reports whether a names a known algorithm.
func (a Algorithm) Valid() bool {
	return int(a) < len(algorithmNames)
}

// IsRipple reports whether a uses the ripple engine.
func (a Algorithm) IsRipple() bool {
	return a != Shadow && a.Valid()
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm converts a configuration name into an Algorithm.
// Dashes and underscores are interchangeable; case is ignored.
func ParseAlgorithm(s string) (Algorithm, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range algorithmNames {
		if name == key {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}
