package brex

import (
	"fmt"

	"github.com/brexlang/brex/ast"
	"github.com/brexlang/brex/matcher"
	"github.com/brexlang/brex/parser"
)

// Config controls compilation behavior: which references a pattern may
// use, what they resolve to, and how aggressively the matcher prefilters
// candidates before running its NFA.
type Config struct {
	// AllowEnvRefs gates whether env["KEY"] references are accepted at
	// parse time at all.
	AllowEnvRefs bool

	// Environment supplies the literal values env[...] references resolve
	// to, keyed by the quoted key text.
	Environment map[string]string

	// Named supplies the BREX source text other regexes' ${qualified.name}
	// references resolve to, keyed by qualified name. Every value is parsed
	// on each compile, with env references not accepted; ${...} references
	// inside a value are inlined against Named in turn.
	Named map[string]string

	// MaxRecursionDepth bounds both parenthesized-group nesting at parse
	// time and named-reference inlining chain length at resolve time. 0
	// uses each stage's own built-in default.
	MaxRecursionDepth int

	// MinPrefilterLiteralLen discards an extracted prefilter literal
	// shorter than this many bytes, since very short literals tend to
	// screen out little. 0 uses matcher.DefaultOptions's value.
	MinPrefilterLiteralLen int

	// MaxPrefilterLiterals bounds how many AnyOf alternatives the matcher
	// will expand into a literal prefilter before giving up and deferring
	// straight to the NFA. 0 uses matcher.DefaultOptions's value.
	MaxPrefilterLiterals int

	// EnableAhoCorasickPrefilter gates literal-based prefiltering
	// (byte/substring search, or an Aho-Corasick automaton for multiple
	// alternatives) entirely. Defaults to true; set false to always run
	// the NFA directly.
	EnableAhoCorasickPrefilter *bool

	// EnableDigitPrefilter enables a fallback digit-class prefilter for
	// entry bodies that require an ASCII digit but offer no extractable
	// literal. Defaults to false.
	EnableDigitPrefilter bool
}

// DefaultConfig returns a Config with no environment or named references
// and env refs disabled — the most restrictive, most reproducible setting.
func DefaultConfig() Config {
	return Config{}
}

// matcherOptions translates the Config's prefilter knobs into
// matcher.Options, filling in matcher.DefaultOptions for anything left at
// its zero value.
func (c Config) matcherOptions() matcher.Options {
	o := matcher.DefaultOptions()
	if c.MinPrefilterLiteralLen > 0 {
		o.MinPrefilterLiteralLen = c.MinPrefilterLiteralLen
	}
	if c.MaxPrefilterLiterals > 0 {
		o.MaxPrefilterLiterals = c.MaxPrefilterLiterals
	}
	if c.EnableAhoCorasickPrefilter != nil {
		o.EnableAhoCorasickPrefilter = *c.EnableAhoCorasickPrefilter
	}
	o.EnableDigitPrefilter = c.EnableDigitPrefilter
	return o
}

// Validate reports a ConfigError if the configuration is internally
// inconsistent (e.g. Environment entries provided without AllowEnvRefs).
func (c Config) Validate() error {
	if len(c.Environment) > 0 && !c.AllowEnvRefs {
		return &ConfigError{Message: "Environment entries were provided but AllowEnvRefs is false"}
	}
	return nil
}

// ConfigError reports an invalid Config.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("brex: invalid config: %s", e.Message) }

func (c Config) envLiterals(domain ast.Domain) map[string]ast.Literal {
	out := make(map[string]ast.Literal, len(c.Environment))
	for k, v := range c.Environment {
		out[k] = ast.Literal{Codes: []rune(v), Domain: domain}
	}
	return out
}

// namedRegexes parses every configured named-reference source up front.
// A source that fails to parse cleanly is simply omitted; the reference
// then surfaces as an UnresolvedError when something tries to use it.
func (c Config) namedRegexes() map[string]ast.Regex {
	out := make(map[string]ast.Regex, len(c.Named))
	for name, src := range c.Named {
		parsed, errs := parser.Parse([]byte(src), parser.Options{})
		if hasErrorSeverity(errs) {
			continue
		}
		out[name] = parsed
	}
	return out
}
