package parse

import (
	"strings"
	"testing"
)

const sampleJobLine = `JobId=101 JobName=my job UserId=user1(1000) GroupId=group1(1000) ` +
	`JobState=RUNNING Reason=None Dependency=(null) Comment=priority=high for now ` +
	`Command=/home/user1/run.sh NodeList=c[0001-0004] NumNodes=4 NumCPUs=16 ExitCode=0:0`

func TestTokenizeLine(t *testing.T) {
	pairs := TokenizeLine(sampleJobLine)

	byField := map[string]string{}
	for _, p := range pairs {
		byField[p.Field] = p.Value
	}
	if byField["JobId"] != "101" {
		t.Errorf("JobId expected 101, got %q", byField["JobId"])
	}
	if byField["JobName"] != "my job" {
		t.Errorf("embedded space lost: JobName = %q", byField["JobName"])
	}
	if byField["Comment"] != "priority=high for now" {
		t.Errorf("embedded separator lost: Comment = %q", byField["Comment"])
	}
	if byField["NodeList"] != "c[0001-0004]" {
		t.Errorf("NodeList = %q", byField["NodeList"])
	}

	// pairs arrive in reverse line order
	if pairs[0].Field != "ExitCode" {
		t.Errorf("first pair expected ExitCode, got %q", pairs[0].Field)
	}
	if pairs[len(pairs)-1].Field != "JobId" {
		t.Errorf("last pair expected JobId, got %q", pairs[len(pairs)-1].Field)
	}
}

// Reversing the pairs and re-joining them must reconstruct the line exactly.
func TestTokenizeLineRoundTrip(t *testing.T) {
	pairs := TokenizeLine(sampleJobLine)
	tokens := make([]string, 0, len(pairs))
	for i := len(pairs) - 1; i >= 0; i-- {
		tokens = append(tokens, pairs[i].Field+"="+pairs[i].Value)
	}
	if got := strings.Join(tokens, " "); got != sampleJobLine {
		t.Errorf("round trip failed:\n got %q\nwant %q", got, sampleJobLine)
	}
}

// Trailing whitespace is part of the value and must survive tokenization.
func TestTokenizeLineRoundTripTrailingSpace(t *testing.T) {
	for _, line := range []string{
		"JobName=foo ",
		"JobName=foo  Comment=bar   ",
		"a=1 b= ",
	} {
		pairs := TokenizeLine(line)
		tokens := make([]string, 0, len(pairs))
		for i := len(pairs) - 1; i >= 0; i-- {
			tokens = append(tokens, pairs[i].Field+"="+pairs[i].Value)
		}
		if got := strings.Join(tokens, " "); got != line {
			t.Errorf("round trip: got %q, want %q", got, line)
		}
	}
}

func TestTokenizeLineEdgeCases(t *testing.T) {
	if pairs := TokenizeLine(""); pairs != nil {
		t.Errorf("empty line expected no pairs, got %v", pairs)
	}
	// stray tokens before the first field are dropped
	pairs := TokenizeLine("stray words a=1")
	if len(pairs) != 1 || pairs[0].Field != "a" || pairs[0].Value != "1" {
		t.Errorf("stray prefix handling wrong: %v", pairs)
	}
	// a pair with an empty field name is dropped
	pairs = TokenizeLine("=orphan a=1")
	if len(pairs) != 1 || pairs[0].Field != "a" {
		t.Errorf("empty field handling wrong: %v", pairs)
	}
	// empty values survive
	pairs = TokenizeLine("a= b=2")
	if len(pairs) != 2 || pairs[1].Field != "a" || pairs[1].Value != "" {
		t.Errorf("empty value handling wrong: %v", pairs)
	}
}

func TestParseOnelinerLine(t *testing.T) {
	rec := ParseOnelinerLine("JobId=7 Nodes=c0001 GRES_IDX=gpu(IDX:0) Nodes=c0002 GRES_IDX=gpu(IDX:1)")
	if rec["jobid"] != "7" {
		t.Errorf("jobid = %q", rec["jobid"])
	}
	// duplicate fields join with "," in line order
	if rec["nodes"] != "c0001,c0002" {
		t.Errorf("duplicate join wrong: nodes = %q", rec["nodes"])
	}
	if rec["gres_idx"] != "gpu(IDX:0),gpu(IDX:1)" {
		t.Errorf("duplicate join wrong: gres_idx = %q", rec["gres_idx"])
	}
}

func TestParseOneliner(t *testing.T) {
	text := "JobId=1 JobState=RUNNING\n\nJobId=2 JobState=PENDING\n"
	records := ParseOneliner(text)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["jobid"] != "1" || records[1]["jobid"] != "2" {
		t.Errorf("records wrong: %v", records)
	}
	if records[1]["jobstate"] != "PENDING" {
		t.Errorf("jobstate = %q", records[1]["jobstate"])
	}
}

func TestParseDelimited(t *testing.T) {
	text := "Name|Priority|MaxWall\nnormal|0|\ngpu|10|2-00:00:00\n"
	records := ParseDelimited(text, "|")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["name"] != "normal" || records[0]["priority"] != "0" {
		t.Errorf("first record wrong: %v", records[0])
	}
	if records[0]["maxwall"] != "" {
		t.Errorf("empty trailing cell should be empty string, got %q", records[0]["maxwall"])
	}
	if records[1]["maxwall"] != "2-00:00:00" {
		t.Errorf("maxwall = %q", records[1]["maxwall"])
	}

	// short rows leave trailing fields absent
	records = ParseDelimited("A|B|C\n1|2\n", "|")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if _, present := records[0]["c"]; present {
		t.Error("short row should leave trailing field absent")
	}

	if ParseDelimited("HeaderOnlyNoNewline", "|") != nil {
		t.Error("header without newline should yield nil")
	}
}
