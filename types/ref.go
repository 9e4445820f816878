package types

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmptyRef is returned when a VM reference argument is present but blank.
var ErrEmptyRef = errors.New("empty VM reference")

// VMRef selects exactly one VM for an operation. It is either an identifier
// (a UUID assigned by the daemon) or a case-sensitive name; never both.
// Resolution to a single VM happens daemon-side — an ambiguous or unknown
// reference comes back as an error, never as a silent first match.
type VMRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ParseVMRef classifies a user-supplied reference string. A string that
// parses as a UUID is treated as an identifier, anything else as a name.
func ParseVMRef(s string) (VMRef, error) {
	if s == "" {
		return VMRef{}, ErrEmptyRef
	}
	if u, err := uuid.Parse(s); err == nil {
		return VMRef{ID: u.String()}, nil
	}
	return VMRef{Name: s}, nil
}

// ByID returns a reference to the VM with the given daemon-assigned ID.
func ByID(id string) VMRef { return VMRef{ID: id} }

// ByName returns a reference to the VM with the given name.
func ByName(name string) VMRef { return VMRef{Name: name} }

func (r VMRef) IsZero() bool { return r.ID == "" && r.Name == "" }

func (r VMRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Name
}

// Validate checks the exactly-one-of invariant.
func (r VMRef) Validate() error {
	switch {
	case r.IsZero():
		return ErrEmptyRef
	case r.ID != "" && r.Name != "":
		return fmt.Errorf("VM reference has both ID %q and name %q", r.ID, r.Name)
	}
	return nil
}
