package recovery

import (
	"strings"

	dErrors "ledgerd/pkg/domain-errors"
)

// Policy selects which recovery endpoints must pass compliance.
type Policy string

const (
	PolicyNone   Policy = "none"
	PolicySource Policy = "source"
	PolicyBoth   Policy = "both"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyNone, nil
	case PolicyNone, PolicySource, PolicyBoth:
		return p, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown recovery compliance policy %q", s)
	}
}

func (p Policy) ChecksSource() bool {
	return p == PolicySource || p == PolicyBoth
}

func (p Policy) ChecksDestination() bool {
	return p == PolicyBoth
}
