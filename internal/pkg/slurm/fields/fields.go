// Package fields correlates raw field names from Slurm command output with
// the decoder to apply. One table exists per entity type and command
// variant; each entry is a tagged rule so "decode with this function",
// "pass through unchanged", "write-only, never reported", and "recognized
// but not yet implemented" stay distinct cases instead of ad hoc sentinels.
package fields

import (
	"encoding/json"
	"strings"

	"github.com/wwarriner/slurm-status-tools/internal/pkg/slurm/parse"
)

// DecodeFunc decodes one raw value. ok reports whether the value decoded;
// a decoded value may still be a typed nil pointer when the input was a
// legitimate "unknown/not applicable" sentinel.
type DecodeFunc func(string) (value any, ok bool)

// Kind tags a table entry.
type Kind int

const (
	// KindDecode applies the rule's decode function.
	KindDecode Kind = iota
	// KindPassThrough stores the raw string unchanged.
	KindPassThrough
	// KindWriteOnly marks a field accepted on input forms but never
	// reported; its value is dropped from decoded records.
	KindWriteOnly
	// KindNotImplemented marks a recognized field whose decoding is
	// intentionally deferred; the raw string is retained and flagged.
	KindNotImplemented
)

// Rule is one table entry.
type Rule struct {
	Kind Kind
	Fn   DecodeFunc
}

// Decode builds a decoding rule.
func Decode(fn DecodeFunc) Rule { return Rule{Kind: KindDecode, Fn: fn} }

var (
	// PassThrough stores the raw string as the decoded value.
	PassThrough = Rule{Kind: KindPassThrough}
	// WriteOnly drops the field from decoded records.
	WriteOnly = Rule{Kind: KindWriteOnly}
	// NotImplemented keeps the raw string and flags the field as pending.
	NotImplemented = Rule{Kind: KindNotImplemented}
)

// Table maps a lower-cased field name to its rule. Fields absent from a
// table are treated as pass-through.
type Table map[string]Rule

// Merge overlays tables left to right into a new table. Used to combine the
// show- and update-command vocabularies of one entity, which Slurm documents
// separately but reports together.
func Merge(tables ...Table) Table {
	out := make(Table)
	for _, t := range tables {
		for key, rule := range t {
			out[key] = rule
		}
	}
	return out
}

// Status describes how one field of a record was handled.
type Status int

const (
	// StatusDecoded means the registered decoder ran; Value holds the
	// result, which may be a typed nil for sentinel input.
	StatusDecoded Status = iota
	// StatusRaw means the field passed through; Value holds the raw string.
	StatusRaw
	// StatusPending means the field is recognized but decoding is deferred;
	// Value holds the raw string.
	StatusPending
	// StatusFailed means the registered decoder rejected the value; the raw
	// string is retained.
	StatusFailed
)

var statusNames = map[Status]string{
	StatusDecoded: "decoded",
	StatusRaw:     "raw",
	StatusPending: "pending",
	StatusFailed:  "failed",
}

func (s Status) String() string { return statusNames[s] }

// MarshalJSON renders the status by name.
func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Field is one decoded field of a record.
type Field struct {
	Raw    string `json:"raw"`
	Value  any    `json:"value"`
	Status Status `json:"status"`
}

// DecodedRecord is the best-effort union of decoded fields of one record.
// Write-only fields are absent.
type DecodedRecord map[string]Field

// Raw returns the raw string for a field, "" when absent.
func (r DecodedRecord) Raw(key string) string {
	return r[key].Raw
}

// Apply dispatches every field of a raw record through the table. A decode
// failure for one field never aborts the rest of the record.
func Apply(t Table, rec parse.Record) DecodedRecord {
	out := make(DecodedRecord, len(rec))
	for key, raw := range rec {
		rule, known := t[strings.ToLower(key)]
		if !known {
			rule = PassThrough
		}
		switch rule.Kind {
		case KindDecode:
			value, ok := rule.Fn(raw)
			if !ok {
				out[key] = Field{Raw: raw, Status: StatusFailed}
				continue
			}
			out[key] = Field{Raw: raw, Value: value, Status: StatusDecoded}
		case KindPassThrough:
			out[key] = Field{Raw: raw, Value: raw, Status: StatusRaw}
		case KindWriteOnly:
			// dropped
		case KindNotImplemented:
			out[key] = Field{Raw: raw, Value: raw, Status: StatusPending}
		}
	}
	return out
}

// ApplyAll dispatches a batch of records.
func ApplyAll(t Table, recs []parse.Record) []DecodedRecord {
	out := make([]DecodedRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Apply(t, rec))
	}
	return out
}
