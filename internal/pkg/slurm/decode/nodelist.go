package decode

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nodeSpecRE      = regexp.MustCompile(`^(.+?)([0-9]+)$`)
	nodeSpecRangeRE = regexp.MustCompile(`^(.+?)\[([0-9]+)-([0-9]+)\]$`)
)

// NodeSpec is one compact node-name token: a prefix, a zero-padded digit
// width, and an inclusive numeric range. "c0007" has width 4 and range
// (7, 7); "c[0001-0010]" has width 4 and range (1, 10). The width is
// inferred from the endpoints as written so String reproduces the padding.
type NodeSpec struct {
	Prefix string `json:"prefix"`
	Digits int    `json:"digits"`
	Lo     int64  `json:"lo"`
	Hi     int64  `json:"hi"`
}

// ParseNodeSpec decodes a single node-spec token.
func ParseNodeSpec(v string) *NodeSpec {
	if match := nodeSpecRE.FindStringSubmatch(v); match != nil {
		return nodeSpecFromParts(match[1], match[2], match[2])
	}
	if match := nodeSpecRangeRE.FindStringSubmatch(v); match != nil {
		return nodeSpecFromParts(match[1], match[2], match[3])
	}
	return nil
}

func nodeSpecFromParts(prefix, lo, hi string) *NodeSpec {
	loN := castInt(lo)
	hiN := castInt(hi)
	if loN == nil || hiN == nil {
		return nil
	}
	digits := len(lo)
	if len(hi) > digits {
		digits = len(hi)
	}
	return &NodeSpec{Prefix: prefix, Digits: digits, Lo: *loN, Hi: *hiN}
}

// Span is the number of nodes covered beyond the first.
func (n NodeSpec) Span() int64 {
	return n.Hi - n.Lo
}

// Count is the number of node names the spec expands to.
func (n NodeSpec) Count() int64 {
	return n.Span() + 1
}

func (n NodeSpec) String() string {
	if n.Span() == 0 {
		return fmt.Sprintf("%s%0*d", n.Prefix, n.Digits, n.Lo)
	}
	return fmt.Sprintf("%s[%0*d-%0*d]", n.Prefix, n.Digits, n.Lo, n.Digits, n.Hi)
}

// Names expands the spec into individual node names.
func (n NodeSpec) Names() []string {
	out := make([]string, 0, n.Count())
	for i := n.Lo; i <= n.Hi; i++ {
		out = append(out, fmt.Sprintf("%s%0*d", n.Prefix, n.Digits, i))
	}
	return out
}

// NodeList is an ordered sequence of node specs as found in NodeList,
// ReqNodeList, and partition Nodes fields.
type NodeList []NodeSpec

// ParseNodeList decodes a comma-separated list of node-spec tokens. Any
// malformed token fails the whole list.
func ParseNodeList(v string) *NodeList {
	tokens := CommaSeparatedList(v)
	out := make(NodeList, 0, len(tokens))
	for _, token := range tokens {
		spec := ParseNodeSpec(token)
		if spec == nil {
			return nil
		}
		out = append(out, *spec)
	}
	return &out
}

func (l NodeList) String() string {
	items := make([]string, 0, len(l))
	for _, spec := range l {
		items = append(items, spec.String())
	}
	return strings.Join(items, ",")
}

// Count is the total number of node names across all specs.
func (l NodeList) Count() int64 {
	var total int64
	for _, spec := range l {
		total += spec.Count()
	}
	return total
}

// Names expands the list into individual node names in order.
func (l NodeList) Names() []string {
	out := make([]string, 0, l.Count())
	for _, spec := range l {
		out = append(out, spec.Names()...)
	}
	return out
}
