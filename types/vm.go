package types

import "time"

// PowerState is the daemon-owned lifecycle state of a VM. The client never
// constructs transitions between states; it only interprets what the daemon
// reports.
type PowerState string

const (
	PowerStateHalted    PowerState = "halted"    // registered, no domain exists
	PowerStateRunning   PowerState = "running"   // domain built, guest executing
	PowerStatePaused    PowerState = "paused"    // domain built, vCPUs frozen
	PowerStateSuspended PowerState = "suspended" // memory image written out, domain destroyed
)

// VM is the daemon's record of a registered VM as reported over the control
// channel. `list` returns a trimmed view; `inspect` returns the full record.
type VM struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	PowerState PowerState `json:"power_state"`

	VCPUs  int   `json:"vcpus,omitempty"`
	Memory int64 `json:"memory,omitempty"` // bytes

	// Populated only on inspect.
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitzero"`
	UpdatedAt time.Time      `json:"updated_at,omitzero"`
}
