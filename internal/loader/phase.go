package loader

// Phase is the status line shown under the progress bar.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseLoadingAssets
	PhaseCheckingMemory
	PhaseInserting
	PhaseReady
)

type threshold struct {
	below float64
	phase Phase
}

// thresholds are checked in order; the first bound the ratio sits under wins.
var thresholds = []threshold{
	{0.2, PhaseInitializing},
	{0.5, PhaseLoadingAssets},
	{0.8, PhaseCheckingMemory},
	{1.0, PhaseInserting},
}

// PhaseFor maps a ratio in [0,1] to its phase.
func PhaseFor(ratio float64) Phase {
	for _, t := range thresholds {
		if ratio < t.below {
			return t.phase
		}
	}
	return PhaseReady
}

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseLoadingAssets:
		return "loading assets"
	case PhaseCheckingMemory:
		return "checking memory"
	case PhaseInserting:
		return "inserting"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}

// Label is the marquee text for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseInitializing:
		return "INITIALIZING SYSTEM"
	case PhaseLoadingAssets:
		return "LOADING ASSETS..."
	case PhaseCheckingMemory:
		return "CHECKING MEMORY..."
	case PhaseInserting:
		return "INSERTING CARTRIDGE..."
	case PhaseReady:
		return "READY!"
	}
	return ""
}
