package models

import (
	"math"
	"strconv"
	"strings"
)

// VehicleID is a supplier identifier parsed as a number. Integral values are
// held exactly in Int so large identifiers never collide; fractional values
// and values past the int64 range are held in Float. VehicleID is comparable.
type VehicleID struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// IntID returns the identifier for an integer.
func IntID(n int64) VehicleID {
	return VehicleID{Int: n}
}

// ParseVehicleID parses the text of an identifier. Integer text is parsed
// exactly. A float without a fractional part that fits in int64 takes the
// integer form, so "5" and "5.0" name the same vehicle. NaN and infinities
// are rejected.
func ParseVehicleID(raw string) (VehicleID, bool) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return VehicleID{Int: n}, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return VehicleID{}, false
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return VehicleID{Int: int64(f)}, true
	}
	return VehicleID{Float: f, IsFloat: true}, true
}

// Less orders identifiers numerically.
func (id VehicleID) Less(other VehicleID) bool {
	switch {
	case !id.IsFloat && !other.IsFloat:
		return id.Int < other.Int
	case id.IsFloat && other.IsFloat:
		return id.Float < other.Float
	}
	return id.float() < other.float()
}

func (id VehicleID) float() float64 {
	if id.IsFloat {
		return id.Float
	}
	return float64(id.Int)
}

// String renders the identifier without a trailing ".0".
func (id VehicleID) String() string {
	if id.IsFloat {
		return strconv.FormatFloat(id.Float, 'f', -1, 64)
	}
	return strconv.FormatInt(id.Int, 10)
}
