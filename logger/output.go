package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Verbosity Levels:
//
//	0 (default) - Plan output, errors with hints, final status
//	1 (-v)      - + One line per file written or skipped
//	2 (-vv)     - + Level buckets, config sources, timing
//	3 (-vvv)    - + Rendered file bodies

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	OutputResults OutputCategory = iota // Plans, history, config dumps
	OutputErrors                        // Errors with hints
	OutputStatus                        // Final success/failure line

	OutputFiles  // Per-file create/append/skip lines
	OutputLevels // Depth assignment buckets
	OutputConfig // Config files consulted
	OutputTiming // Run duration

	OutputContents // Rendered file bodies
)

var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,
	OutputStatus:  VerbosityUser,

	OutputFiles: VerbosityInfo,

	OutputLevels: VerbosityDebug,
	OutputConfig: VerbosityDebug,
	OutputTiming: VerbosityDebug,

	OutputContents: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
