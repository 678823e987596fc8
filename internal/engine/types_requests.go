package engine

// InitRequest represents a request to provision the toolkit into a project.
type InitRequest struct {
	// ProjectDir is the absolute path of the target project
	ProjectDir string

	// Force proceeds even without manifest.yml
	Force bool

	// NoGit skips repository detection and initialization
	NoGit bool
}

// CheckRequest represents a request to check installed tools.
type CheckRequest struct {
	// SkipDefaults checks only the configured tools
	SkipDefaults bool
}
