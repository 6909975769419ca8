// internal/grid/size.go
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Size is the declared extent of a dashlet on one axis. Positive values are a
// fixed number of grid units; Grow and Max are sizing modes.
type Size int

const (
	// Grow starts at one grid unit and expands greedily while space remains.
	Grow Size = 0
	// Max occupies everything from the anchor to the opposite raster edge.
	Max Size = -1
)

// ErrInvalidSize is returned for negative sizes other than Max.
var ErrInvalidSize = errors.New("invalid size")

// Fixed reports whether s is a fixed grid-unit size.
func (s Size) Fixed() bool {
	return s > 0
}

// Valid reports whether s is Grow, Max, or a positive fixed size.
func (s Size) Valid() bool {
	return s >= Max
}

// Mode names the sizing mode: "abs", "grow" or "max".
func (s Size) Mode() string {
	switch s {
	case Grow:
		return "grow"
	case Max:
		return "max"
	}
	return "abs"
}

// String renders the text form accepted by ParseSize.
func (s Size) String() string {
	switch s {
	case Grow:
		return "grow"
	case Max:
		return "max"
	}
	return strconv.Itoa(int(s))
}

// ParseSize accepts "grow", "max" or a positive integer.
func ParseSize(str string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "grow":
		return Grow, nil
	case "max":
		return Max, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is neither grow, max nor an integer", ErrInvalidSize, str)
	}
	s := Size(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so configuration files can
// say `w: grow` as well as `w: 12`.
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML writes fixed sizes as plain integers and the modes by name.
func (s Size) MarshalYAML() (interface{}, error) {
	if s.Fixed() {
		return int(s), nil
	}
	return s.String(), nil
}

// UnmarshalYAML accepts the same scalars as ParseSize.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected a scalar, got yaml kind %d", ErrInvalidSize, node.Kind)
	}
	return s.UnmarshalText([]byte(node.Value))
}
