// Package locator validates and parses workflow bundle locators.
//
// A locator is the single point where untrusted input enters cwkit: it is
// later interpolated into a remote URL and into the staging directory name,
// so the accepted character set is deliberately strict.
package locator

import (
	"regexp"
	"strings"

	"github.com/cloudai-x/cwkit/pkg/errors"
)

// locatorPattern matches the owner/name shape restricted to word
// characters, dot, and hyphen, with exactly one separating slash.
var locatorPattern = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// Locator identifies a remote workflow bundle as owner/name.
type Locator struct {
	Owner string
	Name  string
}

// String returns the canonical owner/name form.
func (l Locator) String() string {
	return l.Owner + "/" + l.Name
}

// Validate reports whether s is a well-formed bundle locator.
// A negative result is a hard stop: no network or filesystem work
// may happen for an invalid locator.
func Validate(s string) error {
	if !locatorPattern.MatchString(s) {
		return errors.Newf(errors.ErrLocatorInvalid,
			"invalid bundle locator %q: expected owner/name with letters, digits, '_', '-' or '.'", s)
	}
	// The pattern admits dot-only segments; "." and ".." are path
	// traversal, not repository names.
	for _, segment := range strings.SplitN(s, "/", 2) {
		if strings.Trim(segment, ".") == "" {
			return errors.Newf(errors.ErrLocatorInvalid,
				"invalid bundle locator %q: segment %q is not a repository name", s, segment)
		}
	}
	return nil
}

// Parse validates s and splits it into its owner and name parts.
func Parse(s string) (Locator, error) {
	if err := Validate(s); err != nil {
		return Locator{}, err
	}
	parts := strings.SplitN(s, "/", 2)
	return Locator{Owner: parts[0], Name: parts[1]}, nil
}
