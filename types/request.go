package types

// Action is a power transition requested from the daemon.
type Action string

const (
	ActionStart    Action = "start"
	ActionShutdown Action = "shutdown"
	ActionReboot   Action = "reboot"
	ActionSuspend  Action = "suspend"
	ActionResume   Action = "resume"
	ActionPause    Action = "pause"
	ActionUnpause  Action = "unpause"
)

// TransitionRequest describes one requested power-state change for one VM.
// It is built per invocation and sent as a single RPC; the daemon owns all
// waiting and any graceful→forced fallback.
type TransitionRequest struct {
	Ref    VMRef  `json:"ref"`
	Action Action `json:"-"` // selects the RPC path, not part of the body

	// TimeoutSeconds bounds the graceful phase of shutdown/reboot. nil means
	// no graceful phase: the daemon forces the transition immediately. The
	// daemon, not the client, escalates to force when the timeout elapses.
	TimeoutSeconds *int `json:"timeout_seconds,omitempty"`

	// Paused asks start to leave the VM in Paused instead of Running.
	Paused bool `json:"paused,omitempty"`

	// BlockDevice is the suspend/resume image target. Empty lets the daemon
	// pick its default.
	BlockDevice string `json:"block_device,omitempty"`
}
