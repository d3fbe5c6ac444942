package app

// Build information for genbuildnum itself, populated via -ldflags at build
// time. Defaults are meaningful for local development and tests.
var (
	// BuildVersion is the semantic version of the built binary.
	BuildVersion = "0.0.0-dev"
	// BuildCommit is the VCS commit SHA associated with the build.
	BuildCommit  = "unknown"
)

// VersionString returns the tool's own version for --version output.
func VersionString() string {
	if BuildCommit == "" || BuildCommit == "unknown" {
		return "genbuildnum " + BuildVersion
	}
	return "genbuildnum " + BuildVersion + " (" + BuildCommit + ")"
}
