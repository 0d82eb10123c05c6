// Package filter defines the typed predicate selecting computer objects by name.
package filter

import (
	"fmt"
	"strings"
)

// Computer is a prefix-based allow/deny predicate over computer-object names.
// A name qualifies when it starts with the allow prefix and does not start
// with any deny prefix. Every deny prefix extends the allow prefix, so the
// deny list carves exclusions out of the allowed namespace.
type Computer struct {
	allowPrefix  string
	denyPrefixes []string
}

// NewComputer validates and creates a Computer filter.
func NewComputer(allowPrefix string, denyPrefixes []string) (Computer, error) {
	if allowPrefix == "" {
		return Computer{}, fmt.Errorf("allow prefix is required")
	}
	for _, d := range denyPrefixes {
		if !strings.HasPrefix(d, allowPrefix) || d == allowPrefix {
			return Computer{}, fmt.Errorf(
				"deny prefix %q must extend allow prefix %q", d, allowPrefix)
		}
	}
	deny := make([]string, len(denyPrefixes))
	copy(deny, denyPrefixes)
	return Computer{allowPrefix: allowPrefix, denyPrefixes: deny}, nil
}

// Default returns the production filter: hostnames under the SG namespace,
// excluding the six sub-ranges owned by other teams.
func Default() Computer {
	f, err := NewComputer("SG", []string{"SGD", "SGG", "SGSAH", "SGSI", "SGSR", "SGT"})
	if err != nil {
		panic(err)
	}
	return f
}

// AllowPrefix returns the prefix a name must start with.
func (c Computer) AllowPrefix() string { return c.allowPrefix }

// DenyPrefixes returns the prefixes that disqualify a name.
func (c Computer) DenyPrefixes() []string {
	out := make([]string, len(c.denyPrefixes))
	copy(out, c.denyPrefixes)
	return out
}

// Matches reports whether name qualifies. Prefix semantics, not substring:
// "XSG01" does not match allow prefix "SG".
func (c Computer) Matches(name string) bool {
	if !strings.HasPrefix(name, c.allowPrefix) {
		return false
	}
	for _, d := range c.denyPrefixes {
		if strings.HasPrefix(name, d) {
			return false
		}
	}
	return true
}
