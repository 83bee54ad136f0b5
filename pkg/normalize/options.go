package normalize

// DefaultWrapWidth is the wrap column used when none is configured.
const DefaultWrapWidth = 60

// Options configures a normalization run. The zero value is not
// usable; construct with DefaultOptions and override.
type Options struct {
	// Rules selects which normalization rules are active.
	Rules *RuleSet

	// WrapWidth is the column at which paragraph lines wrap. Values
	// below 20 are clamped to 20.
	WrapWidth int

	// ReverseEmphasis swaps the canonical emphasis markers: bold
	// becomes ** and italic becomes _.
	ReverseEmphasis bool

	// SkipEmDash leaves "--" untouched when typography is on.
	SkipEmDash bool

	// SkipGuillemet leaves << and >> untouched when typography is on.
	SkipGuillemet bool
}

// DefaultOptions returns the default run configuration.
func DefaultOptions() Options {
	return Options{
		Rules:     DefaultRuleSet(),
		WrapWidth: DefaultWrapWidth,
	}
}

func (o *Options) normalize() {
	if o.Rules == nil {
		o.Rules = DefaultRuleSet()
	}
	if o.WrapWidth <= 0 {
		o.WrapWidth = DefaultWrapWidth
	}
	if o.WrapWidth < 20 {
		o.WrapWidth = 20
	}
}
