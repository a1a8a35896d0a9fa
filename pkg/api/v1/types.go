package v1

// WorkingMode selects how the package index is acquired.
type WorkingMode string

const (
	ModeLocal  WorkingMode = "local"
	ModeRemote WorkingMode = "remote"
	ModeTest   WorkingMode = "test"
)

// Config is the validated configuration consumed by the pipeline.
// RepositoryURL is an http(s) base URL in remote mode and a
// filesystem path otherwise. Distribution, Component and
// Architecture are only required in remote mode.
type Config struct {
	PackageName     string      `json:"package_name" toml:"package_name"`
	RepositoryURL   string      `json:"repository_url" toml:"repository_url"`
	WorkingMode     WorkingMode `json:"working_mode" toml:"working_mode"`
	Distribution    string      `json:"distribution" toml:"distribution"`
	Component       string      `json:"component" toml:"component"`
	Architecture    string      `json:"architecture" toml:"architecture"`
	MaxDepth        int         `json:"max_depth" toml:"max_depth"`
	FilterSubstring string      `json:"filter_substring" toml:"filter_substring"`
}
