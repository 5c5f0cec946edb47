package decode

import (
	"testing"
	"time"
)

func TestScalarSentinels(t *testing.T) {
	if NAString("N/A") != nil {
		t.Error(`NAString("N/A") expected nil`)
	}
	if got := NAString("n/a"); got == nil || *got != "n/a" {
		t.Error(`NAString is case sensitive, "n/a" should pass through`)
	}
	if got := NAString(""); got == nil || *got != "" {
		t.Error(`NAString("") should keep the empty string`)
	}

	if NSInt("n/s") != nil {
		t.Error(`NSInt("n/s") expected nil`)
	}
	// NSInt has no negative clip stage
	if got := NSInt("-2"); got == nil || *got != -2 {
		t.Errorf(`NSInt("-2") expected -2, got %v`, got)
	}

	if DontCareInt("*") != nil {
		t.Error(`DontCareInt("*") expected nil`)
	}
	if DontCareInt("-1") != nil {
		t.Error(`DontCareInt("-1") expected nil after clip`)
	}
	if got := DontCareInt("0"); got == nil || *got != 0 {
		t.Errorf(`DontCareInt("0") expected 0, got %v`, got)
	}

	if UnlimitedInt("UNLIMITED") != nil {
		t.Error(`UnlimitedInt("UNLIMITED") expected nil`)
	}
	if got := UnlimitedInt("36"); got == nil || *got != 36 {
		t.Errorf(`UnlimitedInt("36") expected 36, got %v`, got)
	}
}

func TestBoolDecoders(t *testing.T) {
	if got := YesNoBool("yes"); got == nil || !*got {
		t.Error(`YesNoBool("yes") expected true`)
	}
	if got := YesNoBool("no"); got == nil || *got {
		t.Error(`YesNoBool("no") expected false`)
	}
	if YesNoBool("YES") != nil {
		t.Error(`YesNoBool("YES") expected nil, literals are lower case`)
	}

	// IntBool sense is inverted: "0" is true.
	if got := IntBool("0"); got == nil || !*got {
		t.Error(`IntBool("0") expected true`)
	}
	if got := IntBool("1"); got == nil || *got {
		t.Error(`IntBool("1") expected false`)
	}
	if IntBool("2") != nil {
		t.Error(`IntBool("2") expected nil`)
	}
}

func TestCastDecoders(t *testing.T) {
	if got := Int("42"); got == nil || *got != 42 {
		t.Errorf(`Int("42") expected 42, got %v`, got)
	}
	if Int("4.2") != nil {
		t.Error(`Int("4.2") expected nil`)
	}
	if got := Float("12.03"); got == nil || *got != 12.03 {
		t.Errorf(`Float("12.03") expected 12.03, got %v`, got)
	}
	if Float("N/A") != nil {
		t.Error(`Float("N/A") expected nil`)
	}
}

func TestCommaSeparatedKeyValueList(t *testing.T) {
	kvs, err := CommaSeparatedKeyValueList("DefMemPerCPU=4096,DefCpuPerGPU=2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kvs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(kvs))
	}
	if kvs[0].Key != "DefMemPerCPU" || kvs[0].Value != "4096" {
		t.Errorf("first pair wrong: %+v", kvs[0])
	}
	if kvs[1].Key != "DefCpuPerGPU" || kvs[1].Value != "2" {
		t.Errorf("second pair wrong: %+v", kvs[1])
	}

	if _, err := CommaSeparatedKeyValueList("(null)"); err == nil {
		t.Error("expected error for token without separator")
	}
}

func TestIntRangeList(t *testing.T) {
	l := ParseIntRangeList("0,2-4,7")
	if len(l) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(l))
	}
	if l[0] != (IntRange{Lo: 0, Hi: 0}) {
		t.Errorf("range 0 wrong: %+v", l[0])
	}
	if l[1] != (IntRange{Lo: 2, Hi: 4}) {
		t.Errorf("range 1 wrong: %+v", l[1])
	}
	if got := l.String(); got != "0,2-4,7" {
		t.Errorf("String expected 0,2-4,7, got %q", got)
	}

	// one-sided tokens collapse to a single value
	l = ParseIntRangeList("5-")
	if len(l) != 1 || l[0] != (IntRange{Lo: 5, Hi: 5}) {
		t.Errorf(`ParseIntRangeList("5-") expected single value 5, got %+v`, l)
	}

	if ParseIntRangeList("0,x") != nil {
		t.Error("malformed token should fail the whole list")
	}
}

func TestHyphenatedRangeToList(t *testing.T) {
	cases := []struct {
		in   string
		want []int64
	}{
		{"", []int64{}},
		{"7", []int64{7}},
		{"0-3", []int64{0, 1, 2, 3}},
		{"3-0", []int64{0, 1, 2, 3}},
		{"0-x", nil},
	}
	for _, c := range cases {
		got := HyphenatedRangeToList(c.in)
		if len(got) != len(c.want) || (got == nil) != (c.want == nil) {
			t.Errorf("HyphenatedRangeToList(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("HyphenatedRangeToList(%q)[%d] = %d, want %d", c.in, i, got[i], c.want[i])
			}
		}
	}

	got := HyphenatedCSLToList("1,4-6,9")
	want := []int64{1, 4, 5, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("HyphenatedCSLToList length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("HyphenatedCSLToList[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if HyphenatedCSLToList("1,bad") != nil {
		t.Error("malformed token should fail the whole list")
	}
}

func TestParseExitCode(t *testing.T) {
	ec := ParseExitCode("127:0")
	if ec == nil || ec.Code != 127 || ec.Signal != 0 {
		t.Fatalf(`ParseExitCode("127:0") = %+v`, ec)
	}
	if got := ec.String(); got != "127:0" {
		t.Errorf("round trip expected 127:0, got %q", got)
	}
	for _, bad := range []string{"127", "1:2:3", "-1:0", "0:-9", "a:b", ""} {
		if ParseExitCode(bad) != nil {
			t.Errorf("ParseExitCode(%q) expected nil", bad)
		}
	}
}

func TestDontCareTuples(t *testing.T) {
	nt := ParseNTasksPerNBSC("0:*:*:24")
	if nt == nil {
		t.Fatal("expected decode")
	}
	if nt.PerNode == nil || *nt.PerNode != 0 {
		t.Errorf("PerNode wrong: %v", nt.PerNode)
	}
	if nt.PerBaseboard != nil || nt.PerSocket != nil {
		t.Error("don't-care slots should be nil")
	}
	if nt.PerCore == nil || *nt.PerCore != 24 {
		t.Errorf("PerCore wrong: %v", nt.PerCore)
	}
	if got := nt.String(); got != "0:*:*:24" {
		t.Errorf("round trip expected 0:*:*:24, got %q", got)
	}

	rq := ParseReqBSCT("0:*:*:1")
	if rq == nil || rq.ThreadsPerCore == nil || *rq.ThreadsPerCore != 1 {
		t.Fatalf(`ParseReqBSCT("0:*:*:1") = %+v`, rq)
	}
	if got := rq.String(); got != "0:*:*:1" {
		t.Errorf("round trip expected 0:*:*:1, got %q", got)
	}
	if ParseReqBSCT("0:*:*") != nil {
		t.Error("three slots should fail")
	}
	if ParseReqBSCT("0:*:*:1:2") != nil {
		t.Error("five slots should fail")
	}
}

func TestMemorySpec(t *testing.T) {
	m := ParseMemorySpec("12gn")
	if m == nil {
		t.Fatal("expected decode")
	}
	if m.Bytes != 12*(1<<30) || m.MultiplierCode != MemPerNode || m.Prefix != Gibi {
		t.Errorf("12gn decoded wrong: %+v", m)
	}
	if got := m.Resolve(4, 2); got != 2*12*(1<<30) {
		t.Errorf("per-node Resolve expected node scaling, got %d", got)
	}
	if got := m.String(); got != "12gn" {
		t.Errorf("round trip expected 12gn, got %q", got)
	}

	m = ParseMemorySpec("8mc")
	if m == nil || m.Bytes != 8*(1<<20) || m.MultiplierCode != MemPerCore {
		t.Fatalf("8mc decoded wrong: %+v", m)
	}
	if got := m.Resolve(4, 2); got != 4*8*(1<<20) {
		t.Errorf("per-core Resolve expected core scaling, got %d", got)
	}
	if got := m.String(); got != "8mc" {
		t.Errorf("round trip expected 8mc, got %q", got)
	}

	for _, bad := range []string{"0gn", "12g", "12xn", "gn", "12GN", ""} {
		if ParseMemorySpec(bad) != nil {
			t.Errorf("ParseMemorySpec(%q) expected nil", bad)
		}
	}
}

func TestMemoryMBToBytes(t *testing.T) {
	if got := MemoryMBToBytes("192000"); got == nil || *got != 192000*(1<<20) {
		t.Errorf(`MemoryMBToBytes("192000") = %v`, got)
	}
	if MemoryMBToBytes("N/A") != nil {
		t.Error(`MemoryMBToBytes("N/A") expected nil`)
	}
	if UnlimitedMemoryMBToBytes("UNLIMITED") != nil {
		t.Error(`UnlimitedMemoryMBToBytes("UNLIMITED") expected nil`)
	}
	if got := UnlimitedMemoryMBToBytes("4096"); got == nil || *got != 4096*(1<<20) {
		t.Errorf(`UnlimitedMemoryMBToBytes("4096") = %v`, got)
	}
}

func TestParseSlurmDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"15", 15 * time.Minute},
		{"02:30", 2*time.Minute + 30*time.Second},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"2-03", 2*24*time.Hour + 3*time.Hour},
		{"2-03:04", 2*24*time.Hour + 3*time.Hour + 4*time.Minute},
		{"2-03:04:05", 2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second},
	}
	for _, c := range cases {
		got := ParseSlurmDuration(c.in)
		if got == nil || *got != c.want {
			t.Errorf("ParseSlurmDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"UNLIMITED", "NONE", "", "1:2:3:4", "Partial"} {
		if ParseSlurmDuration(bad) != nil {
			t.Errorf("ParseSlurmDuration(%q) expected nil", bad)
		}
	}
}

func TestScaledDurations(t *testing.T) {
	if got := SecondsDuration("90"); got == nil || *got != 90*time.Second {
		t.Errorf(`SecondsDuration("90") = %v`, got)
	}
	if got := MinutesDuration("90"); got == nil || *got != 90*time.Minute {
		t.Errorf(`MinutesDuration("90") = %v`, got)
	}
	if SecondsDuration("NONE") != nil {
		t.Error(`SecondsDuration("NONE") expected nil`)
	}
}

func TestParseTimepoint(t *testing.T) {
	got := ParseTimepoint("2023-01-02T15:04:05")
	if got == nil {
		t.Fatal("expected decode")
	}
	want := time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimepoint = %v, want %v", got, want)
	}
	if FormatTimepoint(*got) != "2023-01-02T15:04:05" {
		t.Errorf("FormatTimepoint round trip failed: %q", FormatTimepoint(*got))
	}
	for _, bad := range []string{"Unknown", "N/A", "2023-01-02 15:04:05", ""} {
		if ParseTimepoint(bad) != nil {
			t.Errorf("ParseTimepoint(%q) expected nil", bad)
		}
	}
}

func TestNodeSpec(t *testing.T) {
	single := ParseNodeSpec("c0007")
	if single == nil {
		t.Fatal("expected decode")
	}
	if single.Prefix != "c" || single.Digits != 4 || single.Lo != 7 || single.Hi != 7 {
		t.Errorf("c0007 decoded wrong: %+v", single)
	}
	if got := single.String(); got != "c0007" {
		t.Errorf("round trip expected c0007, got %q", got)
	}

	ranged := ParseNodeSpec("c[0001-0010]")
	if ranged == nil {
		t.Fatal("expected decode")
	}
	if ranged.Count() != 10 {
		t.Errorf("expected 10 nodes, got %d", ranged.Count())
	}
	if got := ranged.String(); got != "c[0001-0010]" {
		t.Errorf("round trip expected c[0001-0010], got %q", got)
	}
	names := ranged.Names()
	if names[0] != "c0001" || names[9] != "c0010" {
		t.Errorf("Names padding wrong: %v", names)
	}

	for _, bad := range []string{"login", "c[1-]", "c[]", ""} {
		if ParseNodeSpec(bad) != nil {
			t.Errorf("ParseNodeSpec(%q) expected nil", bad)
		}
	}
}

func TestNodeList(t *testing.T) {
	l := ParseNodeList("c0001,c[0101-0103],gpu01")
	if l == nil {
		t.Fatal("expected decode")
	}
	if l.Count() != 5 {
		t.Errorf("expected 5 nodes, got %d", l.Count())
	}
	if got := l.String(); got != "c0001,c[0101-0103],gpu01" {
		t.Errorf("round trip failed: %q", got)
	}
	names := l.Names()
	if len(names) != 5 || names[1] != "c0101" || names[4] != "gpu01" {
		t.Errorf("Names wrong: %v", names)
	}
	if ParseNodeList("c0001,login") != nil {
		t.Error("malformed token should fail the whole list")
	}
}

func TestParseTres(t *testing.T) {
	spec, err := ParseTres("cpu=1,mem=2,gres/gpu=3,license=ansys")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := spec.Numeric("cpu"); n == nil || *n != 1 {
		t.Errorf("cpu = %v", n)
	}
	if n := spec.GresCount("gpu"); n == nil || *n != 3 {
		t.Errorf("gres gpu = %v", n)
	}
	if l := spec.List("license"); len(l) != 1 || l[0] != "ansys" {
		t.Errorf("license = %v", l)
	}
	if got := spec.String(); got != "cpu=1,mem=2,gres/gpu=3,license=ansys" {
		t.Errorf("round trip failed: %q", got)
	}

	// numeric keys sum across repeats
	spec, err = ParseTres("cpu=2,cpu=3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := spec.Numeric("cpu"); n == nil || *n != 5 {
		t.Errorf("summed cpu = %v", n)
	}

	// non-integer numeric values keep the raw string for reconstruction
	spec, err = ParseTres("mem=400G")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Numeric("mem") != nil {
		t.Error("mem=400G should not cast")
	}
	if got := spec.String(); got != "mem=400G" {
		t.Errorf("raw fallback round trip failed: %q", got)
	}

	if _, err := ParseTres("bogus=1"); err == nil {
		t.Error("unknown key should error")
	}
	if _, err := ParseTres("cpu"); err == nil {
		t.Error("token without separator should error")
	}
}

func TestParseGresSpec(t *testing.T) {
	g := ParseGresSpec("gpu:a100:4")
	if g == nil || g.Name != "gpu:a100" || g.Count != 4 || g.Sockets != nil {
		t.Fatalf(`ParseGresSpec("gpu:a100:4") = %+v`, g)
	}
	if got := g.String(); got != "gpu:a100:4" {
		t.Errorf("round trip failed: %q", got)
	}

	g = ParseGresSpec("gpu:a100:4(S:0-1)")
	if g == nil || len(g.Sockets) != 1 || g.Sockets[0] != (IntRange{Lo: 0, Hi: 1}) {
		t.Fatalf(`ParseGresSpec("gpu:a100:4(S:0-1)") = %+v`, g)
	}
	if got := g.String(); got != "gpu:a100:4(S:0-1)" {
		t.Errorf("round trip failed: %q", got)
	}

	for _, bad := range []string{"gpu", "gpu:x", "(null)", ""} {
		if ParseGresSpec(bad) != nil {
			t.Errorf("ParseGresSpec(%q) expected nil", bad)
		}
	}
}

// Every decoder must degrade to nil on garbage, never panic.
func TestDecodersNeverPanic(t *testing.T) {
	inputs := []string{"", " ", "=", "==", "=1", "***", "N/A", "n/s",
		"UNLIMITED", "gres/", "gres/=", "\x00", "🙂", strings100()}
	for _, v := range inputs {
		NAString(v)
		NSInt(v)
		DontCareInt(v)
		UnlimitedInt(v)
		YesNoBool(v)
		IntBool(v)
		Int(v)
		Float(v)
		ParseExitCode(v)
		ParseNTasksPerNBSC(v)
		ParseReqBSCT(v)
		ParseMemorySpec(v)
		MemoryMBToBytes(v)
		UnlimitedMemoryMBToBytes(v)
		ParseSlurmDuration(v)
		SecondsDuration(v)
		MinutesDuration(v)
		ParseTimepoint(v)
		ParseNodeSpec(v)
		ParseNodeList(v)
		ParseGresSpec(v)
		ParseTres(v)
		ParseIntRangeList(v)
		HyphenatedRangeToList(v)
		HyphenatedCSLToList(v)
	}
}

func strings100() string {
	out := make([]byte, 100)
	for i := range out {
		out[i] = byte('a' + i%26)
	}
	return string(out)
}
