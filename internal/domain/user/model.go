package user

import "fmt"

// Principal is the opaque identity supplied by the external identity
// provider. The core trusts it as the admission and ledger key.
type Principal struct {
	UserID string
	Email  string
}

// Profile holds display-only contact fields. None of the core invariants
// depend on it.
type Profile struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

func (p Profile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}

	return nil
}
