package batch

// Test-only exports for internal helper functions.

//nolint:gochecknoglobals // Test-only exports
var (
	MatchInputs      = matchInputs
	OutputPath       = outputPath
	ResolveOutputDir = resolveOutputDir
)
