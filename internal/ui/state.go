package ui

// Phase is the dashboard's view of the loop lifecycle.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseRunning
	PhaseStopping
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "Starting"
	case PhaseRunning:
		return "Running"
	case PhaseStopping:
		return "Stopping"
	case PhaseDone:
		return "Done"
	default:
		return "Unknown"
	}
}
