package entities

// Pipeline holds every setting the CI helpers read from the config file
type Pipeline struct {
	Artifacts ArtifactSettings
	Package   PackageSettings
	Benchmark BenchmarkSettings
	Badge     BadgeSettings
}

// ArtifactSettings controls how the executable jar is located
type ArtifactSettings struct {
	Dir     string   // build output directory, relative to the working directory
	Pattern string   // regular expression searched in the full path
	Require []string // substrings every match must contain
	Exclude []string // substrings that disqualify a match
}

// PackageSettings configures the native packaging tool
type PackageSettings struct {
	Tool           string
	ImageName      string
	Type           string
	JavaOptions    []string
	TimeoutMinutes int
	Platform       string // target OS; empty means the host OS
	Checksum       bool
}

// BenchmarkSettings configures the benchmark runner
type BenchmarkSettings struct {
	Name           string
	Runtime        string
	SrcDir         string
	Variant        string // "plain" or "configured"
	Rounds         int
	Warmup         int
	ConfigFile     string // file name written next to the source root for configured runs
	Configuration  BenchmarkConfiguration
	Output         string
	TimeoutMinutes int
	IgnoreExitCode bool
}

// BadgeSettings configures the rendered benchmark badge
type BadgeSettings struct {
	Label  string
	Color  string
	Format string
	Input  string
	Output string
}

// Benchmark variants
const (
	VariantPlain      = "plain"
	VariantConfigured = "configured"
)

// DefaultPipeline returns the settings used when no config file overrides them
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		Artifacts: ArtifactSettings{
			Dir:     "build/libs",
			Pattern: `bsl.+\.jar`,
			Require: []string{"exec.jar"},
			Exclude: []string{"-sources", "-javadoc"},
		},
		Package: PackageSettings{
			Tool:           "jpackage",
			ImageName:      "bsl-language-server",
			Type:           "app-image",
			JavaOptions:    []string{"-Xmx2g"},
			TimeoutMinutes: 30,
			Checksum:       true,
		},
		Benchmark: BenchmarkSettings{
			Name:           "test_analyze_ssl31",
			Runtime:        "java",
			SrcDir:         "ssl31/src",
			Variant:        VariantPlain,
			Rounds:         5,
			Warmup:         0,
			ConfigFile:     ".bsl-language-server.json",
			Configuration:  DefaultBenchmarkConfiguration(),
			Output:         "output.json",
			TimeoutMinutes: 30,
		},
		Badge: BadgeSettings{
			Label:  "Benchmark",
			Color:  "#007ec6",
			Format: "%.2f s",
			Input:  "output.json",
			Output: "benchmark.svg",
		},
	}
}
