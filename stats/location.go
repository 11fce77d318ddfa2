package stats

import (
	"fmt"
	"strings"
)

// Location is a per-group location statistic.
type Location int

const (
	LocMean Location = iota
	LocMedian
)

// String returns the statistic name.
func (l Location) String() string {
	switch l {
	case LocMean:
		return "mean"
	case LocMedian:
		return "median"
	default:
		return fmt.Sprintf("Location(%d)", int(l))
	}
}

// Apply reduces xs to its location.
func (l Location) Apply(xs []float64) float64 {
	if l == LocMedian {
		return Median(xs)
	}
	return Mean(xs)
}

// ParseLocation parses a location statistic name ("mean" or "median").
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "":
		return LocMean, nil
	case "median":
		return LocMedian, nil
	}
	return LocMean, fmt.Errorf("unknown location statistic %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	loc, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = loc
	return nil
}
