// Package fallback defines the policy that decides whether incomplete input is
// replaced with a placeholder or rejected with an error.
//
// The widget extractor and the bridge default to Permissive, so that partially
// written widgets still extract and render during iterative development. The
// Node to View converter defaults to Strict, so that malformed trees are never
// silently rendered. Each of them accepts an explicit Policy so that either
// behavior can be forced.
package fallback

// Policy is a fallback policy.
type Policy uint8

const (
	// Default lets each component use its own default policy.
	Default Policy = iota
	// Strict rejects incomplete input with an error.
	Strict
	// Permissive substitutes a placeholder for incomplete input.
	Permissive
)

// Or returns p if it is not Default, and def otherwise.
func (p Policy) Or(def Policy) Policy {
	if p == Default {
		return def
	}
	return p
}

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	default:
		return "default"
	}
}

// Parse parses the name of a policy. It returns Default and false for unknown
// names.
func Parse(s string) (Policy, bool) {
	switch s {
	case "strict":
		return Strict, true
	case "permissive":
		return Permissive, true
	case "", "default":
		return Default, true
	}
	return Default, false
}
