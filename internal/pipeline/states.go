package pipeline

import "fmt"

// State is the processing state of one URL inside the orchestrator.
type State string

// States of the per-URL machine. Success, FetchFailed, and ParseFailed are
// terminal; no state is revisited once terminal.
const (
	StatePending     State = "pending"
	StateFetching    State = "fetching"
	StateFetched     State = "fetched"
	StateExtracting  State = "extracting"
	StateSuccess     State = "success"
	StateFetchFailed State = "fetch_failed"
	StateParseFailed State = "parse_failed"
)

// validTransitions encodes the allowed edges of the state machine.
var validTransitions = map[State][]State{
	StatePending:    {StateFetching},
	StateFetching:   {StateFetched, StateFetchFailed},
	StateFetched:    {StateExtracting},
	StateExtracting: {StateSuccess, StateParseFailed},
}

// Terminal reports whether no further transitions are allowed from s.
func (s State) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// transition validates and applies a state change.
func transition(from, to State) (State, error) {
	for _, next := range validTransitions[from] {
		if next == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("invalid transition %s -> %s", from, to)
}
