// Package auth is the single place mutating operations are authorized.
// Every gated entry point (status update, bulk replace, reset) consults the
// same Authorizer rather than comparing a secret inline.
package auth

import (
	"crypto/subtle"

	"github.com/GolpiraElmiA/OSRTickets/internal/errs"
)

// LegacyOperator is the operator name reported when the shared admin secret
// is used instead of a personal token.
const LegacyOperator = "admin"

type Authorizer struct {
	operators    map[string]string
	legacySecret string
}

// New builds an authorizer from per-operator tokens plus the legacy shared
// secret. An empty legacySecret disables the shared-secret path.
func New(operators map[string]string, legacySecret string) *Authorizer {
	ops := make(map[string]string, len(operators))
	for name, token := range operators {
		ops[name] = token
	}
	return &Authorizer{operators: ops, legacySecret: legacySecret}
}

// Authorize checks a presented credential and returns the operator it
// belongs to. Failures are a generic ErrAccessDenied with no detail about
// which credential was wrong. Comparisons are constant-time.
func (a *Authorizer) Authorize(credential string) (string, error) {
	if credential == "" {
		return "", errs.ErrAccessDenied
	}
	for name, token := range a.operators {
		if equal(credential, token) {
			return name, nil
		}
	}
	if a.legacySecret != "" && equal(credential, a.legacySecret) {
		return LegacyOperator, nil
	}
	return "", errs.ErrAccessDenied
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
