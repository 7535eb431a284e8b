package mind

import (
	"errors"
	"fmt"
	"strings"
)

// TemperatureVector maps every [Role] to a completion temperature in [0, 1].
//
// A vector has two lifecycles within a turn: the "current" vector is read
// from the settings store at turn start and parameterises that turn's
// completion calls; the "next" vector is computed from the turn's emotional
// self-analysis and written back at turn end.
type TemperatureVector map[Role]float64

// Baseline returns a fresh vector holding every role's baseline temperature.
// It is used at initialisation and as the fallback for degenerate or
// unrecognised emotional input.
func Baseline() TemperatureVector {
	v := make(TemperatureVector, len(Roles))
	for _, r := range Roles {
		v[r] = r.BaselineTemperature()
	}
	return v
}

// Clone returns an independent copy of v.
func (v TemperatureVector) Clone() TemperatureVector {
	out := make(TemperatureVector, len(v))
	for r, t := range v {
		out[r] = t
	}
	return out
}

// Clamped returns a copy of v with every component forced into [0, 1].
// Blending over the authored emotion table should never leave the range, but
// stored vectors pass through here at every trust boundary anyway.
func (v TemperatureVector) Clamped() TemperatureVector {
	out := make(TemperatureVector, len(v))
	for r, t := range v {
		out[r] = Clamp(t, 0, 1)
	}
	return out
}

// Validate checks that every role is present and every component lies in
// [0, 1]. It returns a joined error listing all violations.
func (v TemperatureVector) Validate() error {
	var errs []error
	for _, r := range Roles {
		t, ok := v[r]
		if !ok {
			errs = append(errs, fmt.Errorf("temperature vector: missing role %q", r))
			continue
		}
		if t < 0 || t > 1 {
			errs = append(errs, fmt.Errorf("temperature vector: role %q value %.3f out of range [0, 1]", r, t))
		}
	}
	return errors.Join(errs...)
}

// String renders the vector in canonical role order, e.g.
// "cortex=0.70 seer=0.60 …". Useful in logs and the appended reply summary.
func (v TemperatureVector) String() string {
	var sb strings.Builder
	for i, r := range Roles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%.2f", r, v[r])
	}
	return sb.String()
}

// Clamp forces x into [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
