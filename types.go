package jsonkit

// DuplicatePolicy controls what Parse does when an object repeats a key.
type DuplicatePolicy int

const (
	DuplicateKeepFirst DuplicatePolicy = iota // Keep the first occurrence; later ones are dropped.
	DuplicateKeepLast                         // Later occurrences overwrite earlier ones.
	DuplicateError                            // Reject the document with CodeBadKey.
)

// String returns the config spelling of p ("first", "last", "error").
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateKeepLast:
		return "last"
	case DuplicateError:
		return "error"
	default:
		return "first"
	}
}

// ParseDuplicatePolicy maps "first", "last" or "error" to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch s {
	case "", "first":
		return DuplicateKeepFirst, true
	case "last":
		return DuplicateKeepLast, true
	case "error":
		return DuplicateError, true
	}
	return DuplicateKeepFirst, false
}

// ParseOpt bundles parsing options. The zero value parses without limits.
type ParseOpt struct {
	MaxDepth       int   // Maximum container nesting; 0 means unlimited.
	MaxBytes       int64 // Maximum input size in bytes; 0 means unlimited.
	OnDuplicateKey DuplicatePolicy
}

// FormatOptions controls Build output. IndentSize 0 produces compact text.
type FormatOptions struct {
	IndentChar byte
	IndentSize int
}

// Compact is the FormatOptions used by Minimize.
var Compact = FormatOptions{}

// Pretty returns FormatOptions indenting with n spaces.
func Pretty(n int) FormatOptions { return FormatOptions{IndentChar: ' ', IndentSize: n} }
