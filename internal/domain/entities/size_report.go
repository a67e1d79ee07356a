package entities

// BytesPerMB is the multiplier used for every megabyte threshold
const BytesPerMB int64 = 1024 * 1024

// SizeReport is the outcome of an archive size check
type SizeReport struct {
	Path           string
	Exists         bool
	SizeBytes      int64
	MinSizeMB      int
	ThresholdBytes int64
	Passed         bool
}

// SizeMB returns the measured size in megabytes
func (r *SizeReport) SizeMB() float64 {
	return float64(r.SizeBytes) / float64(BytesPerMB)
}

// ExitCode maps the report to the process exit status
func (r *SizeReport) ExitCode() int {
	if r.Passed {
		return 0
	}
	return 1
}
