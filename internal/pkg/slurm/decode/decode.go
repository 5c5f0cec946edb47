package decode

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyValue is one key=value token from a delimited list.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DelimitedList splits v on delim. Note that the empty string splits to a
// single empty element, not an empty list; callers decoding optional lists
// must special-case "" themselves.
func DelimitedList(delim, v string) []string {
	return strings.Split(v, delim)
}

// CommaSeparatedList splits v on commas.
func CommaSeparatedList(v string) []string {
	return DelimitedList(",", v)
}

// SeparatedKeyValue splits v once on the first occurrence of sep. A missing
// separator is the one hard failure a composite decoder is allowed to
// surface, because this function is only applied to inputs already known to
// contain the separator.
func SeparatedKeyValue(sep, v string) (KeyValue, error) {
	k, val, found := strings.Cut(v, sep)
	if !found {
		return KeyValue{}, fmt.Errorf("token %q does not contain %q", v, sep)
	}
	return KeyValue{Key: k, Value: val}, nil
}

// CommaSeparatedKeyValueList decodes "k1=v1,k2=v2,..." into ordered pairs.
func CommaSeparatedKeyValueList(v string) ([]KeyValue, error) {
	items := CommaSeparatedList(v)
	out := make([]KeyValue, 0, len(items))
	for _, item := range items {
		kv, err := SeparatedKeyValue("=", item)
		if err != nil {
			return nil, err
		}
		out = append(out, kv)
	}
	return out, nil
}

// Ranged splits "x-y" into ("x", "y"). A token without the separator yields
// ("x", "").
func Ranged(sep, v string) (string, string) {
	lo, hi, _ := strings.Cut(v, sep)
	return lo, hi
}

// Enclosed returns the payload of v between the left and right brackets, or
// nil when v is not bracketed.
func Enclosed(left, right byte, v string) *string {
	if len(v) < 2 || v[0] != left || v[len(v)-1] != right {
		return nil
	}
	payload := v[1 : len(v)-1]
	return &payload
}

// IntRange is an inclusive integer range. Lo == Hi represents one value.
type IntRange struct {
	Lo int64 `json:"lo"`
	Hi int64 `json:"hi"`
}

// IntRangeList is an ordered list of inclusive integer ranges decoded from
// comma/hyphen notation such as "0,2-4,7".
type IntRangeList []IntRange

// ParseIntRangeList decodes comma-separated tokens that are either a bare
// integer or two integers joined by "-". A one-sided token like "5-" or "-5"
// collapses to a single-value range; anything else fails the whole list.
func ParseIntRangeList(v string) IntRangeList {
	items := CommaSeparatedList(v)
	out := make(IntRangeList, 0, len(items))
	for _, item := range items {
		loStr, hiStr := Ranged("-", item)
		lo := castInt(loStr)
		hi := castInt(hiStr)
		switch {
		case lo != nil && hi != nil:
			out = append(out, IntRange{Lo: *lo, Hi: *hi})
		case lo != nil:
			out = append(out, IntRange{Lo: *lo, Hi: *lo})
		case hi != nil:
			out = append(out, IntRange{Lo: *hi, Hi: *hi})
		default:
			return nil
		}
	}
	return out
}

// String reconstructs the comma/hyphen notation: single-value ranges render
// without the hyphen.
func (l IntRangeList) String() string {
	items := make([]string, 0, len(l))
	for _, r := range l {
		if r.Lo == r.Hi {
			items = append(items, strconv.FormatInt(r.Lo, 10))
		} else {
			items = append(items, fmt.Sprintf("%d-%d", r.Lo, r.Hi))
		}
	}
	return strings.Join(items, ",")
}

// HyphenatedRangeToList expands one token into the explicit list of integers
// it covers: "0-3" becomes [0 1 2 3], "7" becomes [7], "" becomes an empty
// list. Malformed tokens yield nil.
func HyphenatedRangeToList(v string) []int64 {
	if v == "" {
		return []int64{}
	}
	if n := castInt(v); n != nil {
		return []int64{*n}
	}
	loStr, hiStr := Ranged("-", v)
	lo := castInt(loStr)
	hi := castInt(hiStr)
	if lo == nil || hi == nil {
		return nil
	}
	min, max := *lo, *hi
	if max < min {
		min, max = max, min
	}
	out := make([]int64, 0, max-min+1)
	for n := min; n <= max; n++ {
		out = append(out, n)
	}
	return out
}

// HyphenatedCSLToList expands a comma-separated list of integers and
// hyphenated ranges into the explicit list of integers it covers.
// "" yields an empty list; any malformed token yields nil.
func HyphenatedCSLToList(v string) []int64 {
	if v == "" {
		return []int64{}
	}
	out := []int64{}
	for _, item := range CommaSeparatedList(v) {
		expanded := HyphenatedRangeToList(item)
		if expanded == nil {
			return nil
		}
		out = append(out, expanded...)
	}
	return out
}
