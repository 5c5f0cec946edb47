package decode

import (
	"regexp"
	"time"
)

// Slurm duration grammar. Order matters and follows the sbatch --time
// documentation: minutes, minutes:seconds, hours:minutes:seconds, days-hours,
// days-hours:minutes, days-hours:minutes:seconds.
var durationREs = []*regexp.Regexp{
	regexp.MustCompile(`^(?P<minutes>\d{2})$`),
	regexp.MustCompile(`^(?P<minutes>\d{2}):(?P<seconds>\d{2})$`),
	regexp.MustCompile(`^(?P<hours>\d{2}):(?P<minutes>\d{2}):(?P<seconds>\d{2})$`),
	regexp.MustCompile(`^(?P<days>\d+)-(?P<hours>\d{2})$`),
	regexp.MustCompile(`^(?P<days>\d+)-(?P<hours>\d{2}):(?P<minutes>\d{2})$`),
	regexp.MustCompile(`^(?P<days>\d+)-(?P<hours>\d{2}):(?P<minutes>\d{2}):(?P<seconds>\d{2})$`),
}

// ParseSlurmDuration decodes Slurm duration values such as "2-03:04:05".
// Sentinels like "UNLIMITED" and "NONE" fall out of the grammar and decode
// to nil.
func ParseSlurmDuration(v string) *time.Duration {
	for _, re := range durationREs {
		match := re.FindStringSubmatch(v)
		if match == nil {
			continue
		}
		var d time.Duration
		for i, name := range re.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			n := castInt(match[i])
			if n == nil {
				return nil
			}
			switch name {
			case "days":
				d += time.Duration(*n) * 24 * time.Hour
			case "hours":
				d += time.Duration(*n) * time.Hour
			case "minutes":
				d += time.Duration(*n) * time.Minute
			case "seconds":
				d += time.Duration(*n) * time.Second
			}
		}
		return &d
	}
	return nil
}

// SecondsDuration decodes a bare integer second count.
func SecondsDuration(v string) *time.Duration {
	return scaledDuration(v, time.Second)
}

// MinutesDuration decodes a bare integer minute count.
func MinutesDuration(v string) *time.Duration {
	return scaledDuration(v, time.Minute)
}

func scaledDuration(v string, unit time.Duration) *time.Duration {
	n := castInt(v)
	if n == nil {
		return nil
	}
	d := time.Duration(*n) * unit
	return &d
}

const timepointLayout = "2006-01-02T15:04:05"

// ParseTimepoint decodes absolute timestamps such as "2023-01-02T15:04:05".
// The "N/A" and "Unknown" sentinels fall out of the layout and decode to nil.
func ParseTimepoint(v string) *time.Time {
	t, err := time.Parse(timepointLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

// FormatTimepoint is the inverse of ParseTimepoint.
func FormatTimepoint(t time.Time) string {
	return t.Format(timepointLayout)
}
