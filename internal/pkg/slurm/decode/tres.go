package decode

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TRES vocabularies. The key set is closed: an unrecognized key is a hard
// decode failure for the whole value, not a silent skip.
const tresGres = "gres"

var tresNumericKeys = map[string]bool{
	"billing": true,
	"cpu":     true,
	"energy":  true,
	"mem":     true,
	"node":    true,
	"pages":   true,
	"vmem":    true,
}

var tresListKeys = map[string]bool{
	"bb":      true,
	"fs":      true,
	"ic":      true,
	"license": true,
}

// TresSpec is a decoded trackable-resource specification such as
// "cpu=1,mem=2,gres/gpu=3,license=ansys". Generic resources nest under a
// gres sub-mapping, numeric keys sum across repeats, and list keys append.
// First-appearance key order is preserved so String round-trips.
type TresSpec struct {
	order     []string
	numeric   map[string]*int64
	rawLast   map[string]string
	lists     map[string][]string
	gres      map[string]*int64
	gresRaw   map[string]string
	gresOrder []string
}

// ParseTres decodes a comma-separated key=value TRES string. Unlike every
// other decoder family this one returns an error: the key vocabulary is
// closed and an unknown key means the caller's mapping tables are stale, a
// condition worth surfacing rather than smoothing over.
func ParseTres(v string) (*TresSpec, error) {
	t := &TresSpec{
		numeric: make(map[string]*int64),
		rawLast: make(map[string]string),
		lists:   make(map[string][]string),
		gres:    make(map[string]*int64),
		gresRaw: make(map[string]string),
	}
	for _, token := range CommaSeparatedList(v) {
		kv, err := SeparatedKeyValue("=", token)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(kv.Key)
		switch {
		case strings.HasPrefix(key, tresGres):
			name := key
			if _, after, found := strings.Cut(key, "/"); found {
				name = after
			}
			if _, seen := t.gres[name]; !seen {
				t.gresOrder = append(t.gresOrder, name)
			}
			t.gres[name] = castInt(kv.Value)
			t.gresRaw[name] = kv.Value
			t.noteKey(tresGres)
		case tresListKeys[key]:
			t.lists[key] = append(t.lists[key], kv.Value)
			t.noteKey(key)
		case tresNumericKeys[key]:
			prev, seen := t.numeric[key]
			n := castInt(kv.Value)
			if !seen || prev == nil || n == nil {
				t.numeric[key] = n
			} else {
				sum := *prev + *n
				t.numeric[key] = &sum
			}
			t.rawLast[key] = kv.Value
			t.noteKey(key)
		default:
			return nil, fmt.Errorf("unrecognized tres key %q", key)
		}
	}
	return t, nil
}

func (t *TresSpec) noteKey(key string) {
	for _, k := range t.order {
		if k == key {
			return
		}
	}
	t.order = append(t.order, key)
}

// Keys returns the top-level keys in first-appearance order; generic
// resources appear once as "gres".
func (t *TresSpec) Keys() []string {
	return append([]string(nil), t.order...)
}

// Numeric returns the accumulated value of a numeric key. The value is nil
// when the key is absent or its raw value was not an integer (e.g.
// "mem=400G").
func (t *TresSpec) Numeric(key string) *int64 {
	return t.numeric[key]
}

// List returns the accumulated values of a list key.
func (t *TresSpec) List(key string) []string {
	return t.lists[key]
}

// GresCount returns the count of a generic resource by name, nil when the
// resource is absent or its count was not an integer.
func (t *TresSpec) GresCount(name string) *int64 {
	return t.gres[name]
}

// GresNames returns generic-resource names in first-appearance order.
func (t *TresSpec) GresNames() []string {
	return append([]string(nil), t.gresOrder...)
}

// String reconstructs the comma-separated key=value form in first-appearance
// order. Numeric and gres values whose integer cast failed render their raw
// string so the reconstruction stays faithful.
func (t *TresSpec) String() string {
	tokens := []string{}
	for _, key := range t.order {
		switch {
		case key == tresGres:
			for _, name := range t.gresOrder {
				tokens = append(tokens, fmt.Sprintf("%s/%s=%s", tresGres, name, t.gresValue(name)))
			}
		case tresListKeys[key]:
			tokens = append(tokens, fmt.Sprintf("%s=%s", key, strings.Join(t.lists[key], ",")))
		default:
			tokens = append(tokens, fmt.Sprintf("%s=%s", key, t.numericValue(key)))
		}
	}
	return strings.Join(tokens, ",")
}

func (t *TresSpec) gresValue(name string) string {
	if n := t.gres[name]; n != nil {
		return strconv.FormatInt(*n, 10)
	}
	return t.gresRaw[name]
}

func (t *TresSpec) numericValue(key string) string {
	if n := t.numeric[key]; n != nil {
		return strconv.FormatInt(*n, 10)
	}
	return t.rawLast[key]
}

// MarshalJSON renders the spec as a flat object with a nested gres object.
func (t *TresSpec) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.order))
	for _, key := range t.order {
		switch {
		case key == tresGres:
			gres := make(map[string]any, len(t.gresOrder))
			for _, name := range t.gresOrder {
				if n := t.gres[name]; n != nil {
					gres[name] = *n
				} else {
					gres[name] = t.gresRaw[name]
				}
			}
			out[tresGres] = gres
		case tresListKeys[key]:
			out[key] = t.lists[key]
		default:
			if n := t.numeric[key]; n != nil {
				out[key] = *n
			} else {
				out[key] = t.rawLast[key]
			}
		}
	}
	return json.Marshal(out)
}

var gresSpecRE = regexp.MustCompile(`^((?:[^:()]+:)+)([0-9]+)(?:\(S:([0-9,-]*)\))?$`)

// GresSpec is a node Gres token such as "gpu:a100:4" or "gpu:a100:4(S:0-1)":
// a colon-joined resource name, a count, and an optional socket range list.
type GresSpec struct {
	Name    string       `json:"name"`
	Count   int64        `json:"count"`
	Sockets IntRangeList `json:"sockets,omitempty"`
}

// ParseGresSpec decodes one node Gres token.
func ParseGresSpec(v string) *GresSpec {
	match := gresSpecRE.FindStringSubmatch(v)
	if match == nil {
		return nil
	}
	count := castInt(match[2])
	if count == nil {
		return nil
	}
	spec := &GresSpec{
		Name:  strings.TrimSuffix(match[1], ":"),
		Count: *count,
	}
	if match[3] != "" {
		spec.Sockets = ParseIntRangeList(match[3])
		if spec.Sockets == nil {
			return nil
		}
	}
	return spec
}

func (g GresSpec) String() string {
	if g.Sockets == nil {
		return fmt.Sprintf("%s:%d", g.Name, g.Count)
	}
	return fmt.Sprintf("%s:%d(S:%s)", g.Name, g.Count, g.Sockets)
}
