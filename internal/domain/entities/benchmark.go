package entities

// BenchmarkConfiguration is the analyzer configuration written before a configured run.
// Field names are fixed by the analyzer's configuration schema.
type BenchmarkConfiguration struct {
	ConfigurationRoot string                   `json:"configurationRoot"`
	Diagnostics       DiagnosticsConfiguration `json:"diagnostics"`
}

// DiagnosticsConfiguration selects which checks the analyzer runs
type DiagnosticsConfiguration struct {
	Mode       string          `json:"mode"`       // observed value: "except"
	Parameters map[string]bool `json:"parameters"` // check name -> enabled
}

// DefaultBenchmarkConfiguration returns the configuration used by the CI benchmark
func DefaultBenchmarkConfiguration() BenchmarkConfiguration {
	return BenchmarkConfiguration{
		ConfigurationRoot: "./src",
		Diagnostics: DiagnosticsConfiguration{
			Mode:       "except",
			Parameters: map[string]bool{"Typo": false},
		},
	}
}

// BenchmarkReport is the result document of a benchmark run.
// The layout follows pytest-benchmark so existing consumers keep reading
// benchmarks[0].stats.mean.
type BenchmarkReport struct {
	RunID      string           `json:"run_id"`
	Datetime   string           `json:"datetime"`
	Version    string           `json:"version"`
	CommitInfo *CommitInfo      `json:"commit_info,omitempty"`
	Benchmarks []BenchmarkEntry `json:"benchmarks"`
}

// BenchmarkEntry is a single named benchmark inside a report
type BenchmarkEntry struct {
	Group    *string          `json:"group"`
	Name     string           `json:"name"`
	Fullname string           `json:"fullname"`
	Params   map[string]any   `json:"params"`
	Options  BenchmarkOptions `json:"options"`
	Stats    BenchmarkStats   `json:"stats"`
}

// BenchmarkOptions records how the rounds were executed
type BenchmarkOptions struct {
	Timer          string   `json:"timer"`
	Warmup         int      `json:"warmup"`
	Rounds         int      `json:"rounds"`
	Command        []string `json:"command"`
	IgnoreExitCode bool     `json:"ignore_exit_code"`
}

// BenchmarkStats holds timing statistics in seconds
type BenchmarkStats struct {
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"stddev"`
	Median float64   `json:"median"`
	Q1     float64   `json:"q1"`
	Q3     float64   `json:"q3"`
	IQR    float64   `json:"iqr"`
	Rounds int       `json:"rounds"`
	Total  float64   `json:"total"`
	Ops    float64   `json:"ops"`
	Data   []float64 `json:"data"`
}

// CommitInfo identifies the source revision a benchmark was run against
type CommitInfo struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Branch string `json:"branch"`
	Dirty  bool   `json:"dirty"`
	Author string `json:"author_name"`
}
