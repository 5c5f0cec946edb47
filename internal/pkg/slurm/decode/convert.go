// Package decode turns raw field values from Slurm command output into typed
// values. Every decoder in this package is total: malformed, unexpected, or
// sentinel input degrades to a nil result, never a panic. The canonical shape
// of a scalar decoder is sentinel check, then type cast, then negative clip;
// each decoder documents which of the stages it applies.
package decode

import "strconv"

// Sentinel literals with special meaning in Slurm command output.
const (
	NotAvailable = "N/A"
	NotSupported = "n/s"
	DontCare     = "*"
	Unlimited    = "UNLIMITED"

	yesLiteral = "yes"
	noLiteral  = "no"
)

// NAString maps the "N/A" sentinel to nil and keeps any other string,
// including the empty string. Stages: sentinel.
func NAString(v string) *string {
	if v == NotAvailable {
		return nil
	}
	return &v
}

// NSInt maps the "n/s" (not supported) sentinel to nil, then casts.
// Stages: sentinel, cast.
func NSInt(v string) *int64 {
	if v == NotSupported {
		return nil
	}
	return castInt(v)
}

// DontCareInt maps the "*" sentinel to nil, casts, and clips negative values
// to nil. Stages: sentinel, cast, clip.
func DontCareInt(v string) *int64 {
	if v == DontCare {
		return nil
	}
	return clipNegative(castInt(v))
}

// UnlimitedInt maps the "UNLIMITED" sentinel to nil, casts, and clips
// negative values to nil. Stages: sentinel, cast, clip.
func UnlimitedInt(v string) *int64 {
	if v == Unlimited {
		return nil
	}
	return clipNegative(castInt(v))
}

// YesNoBool maps "yes" to true and "no" to false; anything else is nil.
func YesNoBool(v string) *bool {
	return literalBool(yesLiteral, noLiteral, v)
}

// IntBool maps "0" to true and "1" to false; anything else is nil. The sense
// is inverted relative to YesNoBool on purpose: it preserves the literal
// mapping observed in live scontrol output for flag fields such as Reboot
// and Requeue.
func IntBool(v string) *bool {
	return literalBool("0", "1", v)
}

// Int is a bare safe cast: nil on failure. Stages: cast.
func Int(v string) *int64 {
	return castInt(v)
}

// Float is a bare safe cast: nil on failure. Stages: cast.
func Float(v string) *float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func castInt(v string) *int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func clipNegative(v *int64) *int64 {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}

func literalBool(trueLit, falseLit, v string) *bool {
	var b bool
	switch v {
	case trueLit:
		b = true
	case falseLit:
		b = false
	default:
		return nil
	}
	return &b
}
