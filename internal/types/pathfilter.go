package types

type (
	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		IgnoredPatterns   []string `json:"ignoredPatterns" yaml:"ignored_patterns"`
		AllowedExtensions []string `json:"allowedExtensions" yaml:"allowed_extensions"`
	}
)
