// Package domain holds cross-cutting domain types.
package domain

// Principal captures the authenticated caller identity extracted from a
// verified bearer token. The Subject is the identity provider's stable user
// identifier and scopes every persisted row.
type Principal struct {
	Subject  string
	Email    string
	Name     string
	Nickname string
	Picture  string
	Scopes   []string
}

// HasScope checks if the principal possesses a scope.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
