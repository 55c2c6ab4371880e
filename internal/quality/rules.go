// Package quality runs document heuristics and fixes superficial formatting.
package quality

// Rules configures the checks. Zero values disable the numeric thresholds.
type Rules struct {
	RequiredSections    []string `mapstructure:"required_sections" yaml:"required_sections"`
	MinSections         int      `mapstructure:"min_sections" yaml:"min_sections"`
	MinCodeExamples     int      `mapstructure:"min_code_examples" yaml:"min_code_examples"`
	MinWordCount        int      `mapstructure:"min_word_count" yaml:"min_word_count"`
	MaxLineLength       int      `mapstructure:"max_line_length" yaml:"max_line_length"`
	RequireTOC          bool     `mapstructure:"require_toc" yaml:"require_toc"`
	RequireAbstract     bool     `mapstructure:"require_abstract" yaml:"require_abstract"`
	RequireCodeLanguage bool     `mapstructure:"require_code_language" yaml:"require_code_language"`
	CheckLinks          bool     `mapstructure:"check_links" yaml:"check_links"`
}

// DefaultRules mirrors the thresholds the documentation set was written against.
func DefaultRules() Rules {
	return Rules{
		MinSections:         5,
		MinCodeExamples:     2,
		MinWordCount:        500,
		MaxLineLength:       120,
		RequireTOC:          true,
		RequireAbstract:     true,
		RequireCodeLanguage: true,
		CheckLinks:          true,
	}
}
