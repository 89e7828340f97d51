package transcode

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/u2t/core/errors"
)

// Policy decides what happens to a non-ASCII character that has no accent macro.
type Policy int

const (
	// PolicyDrop removes the character from the output. This is the default.
	PolicyDrop Policy = iota
	// PolicyPreserve copies the character to the output unchanged.
	PolicyPreserve
	// PolicyFail aborts the conversion of the whole file.
	PolicyFail
)

// PolicyNames lists the accepted policy names in declaration order.
var PolicyNames = []string{"drop", "preserve", "fail"}

func (p Policy) String() string {
	if p >= 0 && int(p) < len(PolicyNames) {
		return PolicyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy converts a policy name to a Policy. The empty string selects PolicyDrop.
func ParsePolicy(s string) (Policy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return PolicyDrop, nil
	}
	for i, n := range PolicyNames {
		if n == name {
			return Policy(i), nil
		}
	}
	return PolicyDrop, errors.NewValidation("policy", fmt.Sprintf("unknown policy %q (want one of %s)", s, strings.Join(PolicyNames, ", ")))
}
