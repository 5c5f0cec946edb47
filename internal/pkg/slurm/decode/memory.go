package decode

import (
	"fmt"
	"regexp"
)

// SI prefix codes used by Slurm memory fields. All prefixes are powers of
// 1024 despite the SI-style letters.
const (
	Kibi = "k"
	Mebi = "m"
	Gibi = "g"
	Tebi = "t"
)

var byteConversions = map[string]int64{
	Kibi: 1 << 10,
	Mebi: 1 << 20,
	Gibi: 1 << 30,
	Tebi: 1 << 40,
}

// Multiplier codes: memory is requested per core or per node.
const (
	MemPerCore = "c"
	MemPerNode = "n"
)

var memorySpecRE = regexp.MustCompile(`^([1-9][0-9]*)([kmgt])([cn])$`)

// MemorySpec is a unit-suffixed memory request such as "8gn" (8 GiB per
// node) or "500mc" (500 MiB per core). The originating SI prefix is kept so
// String can reconstruct the input exactly.
type MemorySpec struct {
	MultiplierCode string `json:"multiplier_code"`
	Bytes          int64  `json:"bytes"`
	Prefix         string `json:"prefix"`
}

// ParseMemorySpec decodes "<count><k|m|g|t><c|n>" values.
func ParseMemorySpec(v string) *MemorySpec {
	match := memorySpecRE.FindStringSubmatch(v)
	if match == nil {
		return nil
	}
	count := castInt(match[1])
	if count == nil {
		return nil
	}
	prefix := match[2]
	return &MemorySpec{
		MultiplierCode: match[3],
		Bytes:          *count * byteConversions[prefix],
		Prefix:         prefix,
	}
}

// Resolve computes the absolute byte count of the request for a job with
// the given core and node counts.
func (m MemorySpec) Resolve(coreCount, nodeCount int64) int64 {
	if m.MultiplierCode == MemPerCore {
		return coreCount * m.Bytes
	}
	return nodeCount * m.Bytes
}

func (m MemorySpec) String() string {
	return fmt.Sprintf("%d%s%s", m.Bytes/byteConversions[m.Prefix], m.Prefix, m.MultiplierCode)
}

// MemoryMBToBytes decodes a bare MiB count ("192000") to bytes.
// Stages: cast.
func MemoryMBToBytes(v string) *int64 {
	return mbToBytes(castInt(v))
}

// UnlimitedMemoryMBToBytes decodes a MiB count to bytes with the "UNLIMITED"
// sentinel mapping to nil. Stages: sentinel, cast, clip.
func UnlimitedMemoryMBToBytes(v string) *int64 {
	return mbToBytes(UnlimitedInt(v))
}

func mbToBytes(mb *int64) *int64 {
	if mb == nil {
		return nil
	}
	b := *mb * byteConversions[Mebi]
	return &b
}
