// Package parse splits raw Slurm command output into records: ordered
// field/value pairs for the one-line-per-record `scontrol --oneliner` format
// and positional rows for pipe-delimited `--parsable2` tables.
package parse

import "strings"

const (
	pairDelimiter  = " "
	pairSeparator  = "="
	duplicateJoint = ","
)

// Pair is one field=value token recovered from a line.
type Pair struct {
	Field string
	Value string
}

// Record maps a case-normalized (lower-cased) field name to its value.
// Within one record field names are unique; duplicates from the source line
// are joined before the record is built.
type Record map[string]string

// TokenizeLine tokenizes one line of `scontrol -o show` output. Lines carry
// quasi-flag-style tokens:
//
//	a=foo b=bar c=hello world d=something=actual value
//
// Values may contain any characters, including spaces and "=", but never a
// leading space; a value containing the pattern "<space><field>=" makes
// tokenization ill-posed and is a documented input precondition violation,
// not a case this function tries to recover from.
//
// The line is split on spaces and scanned in reverse, accumulating parts
// that contain no "=". When a part with "=" is found it is split at the
// first "=": the left half is the field name, the right half joins the
// accumulated parts (restored to line order) to form the value. Pairs are
// returned in the order the reverse scan finds them, so reversing the result
// and re-joining with "="/" " reconstructs the line. Duplicate field names
// are preserved as repeated pairs; stray parts before the first "=" of the
// line are dropped.
func TokenizeLine(line string) []Pair {
	if line == "" {
		return nil
	}
	parts := strings.Split(line, pairDelimiter)
	pairs := make([]Pair, 0, len(parts))
	var valueParts []string
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		field, rest, found := strings.Cut(part, pairSeparator)
		if !found {
			valueParts = append(valueParts, part)
			continue
		}
		valueParts = append(valueParts, rest)
		reverse(valueParts)
		// No trimming: trailing spaces in a value survive the split as empty
		// parts and must rejoin losslessly for exact line reconstruction.
		pair := Pair{
			Field: field,
			Value: strings.Join(valueParts, pairDelimiter),
		}
		valueParts = nil
		if pair.Field == "" {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// ParseOnelinerLine assembles one tokenized line into a record. Duplicate
// fields (Nodes and GRES_IDX in `scontrol -o show jobs`, possibly others)
// keep every occurrence: their values are joined with "," in line order.
func ParseOnelinerLine(line string) Record {
	pairs := TokenizeLine(line)
	values := make(map[string][]string, len(pairs))
	order := make([]string, 0, len(pairs))
	// Pairs arrive in reverse line order; walk them backward so duplicate
	// values join in the order they appear in the source.
	for i := len(pairs) - 1; i >= 0; i-- {
		key := strings.ToLower(pairs[i].Field)
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = append(values[key], pairs[i].Value)
	}
	record := make(Record, len(order))
	for _, key := range order {
		record[key] = strings.Join(values[key], duplicateJoint)
	}
	return record
}

// ParseOneliner parses a whole block of `scontrol -o show` output, one
// record per non-empty line.
func ParseOneliner(text string) []Record {
	lines := strings.Split(text, "\n")
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		record := ParseOnelinerLine(line)
		if len(record) == 0 {
			continue
		}
		records = append(records, record)
	}
	return records
}

// ParseDelimited parses table-style output with a header line naming the
// fields and delimiter-separated rows giving values positionally, as emitted
// by `sacctmgr --parsable2`. Field names are lower-cased. Rows shorter than
// the header leave the trailing fields absent; extra cells are dropped.
func ParseDelimited(text, delim string) []Record {
	header, body, found := strings.Cut(text, "\n")
	if !found {
		return nil
	}
	keys := strings.Split(header, delim)
	for i, key := range keys {
		keys[i] = strings.ToLower(key)
	}
	var records []Record
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		cells := strings.Split(line, delim)
		record := make(Record, len(keys))
		for i, key := range keys {
			if i >= len(cells) {
				break
			}
			record[key] = cells[i]
		}
		records = append(records, record)
	}
	return records
}

func reverse(parts []string) {
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
}
