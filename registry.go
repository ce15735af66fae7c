package main

import (
	"sync"
)

// State pins down where a chat identity currently sits in the
// conversational protocol. It is stored explicitly per identity rather
// than inferred from index membership, which keeps the transitions
// testable and the illegal combinations visible.
type State int

const (
	// Unaffiliated identities have never touched a game.
	Unaffiliated State = iota
	// AwaitingRoster organizers have a code reserved and owe a
	// participant list.
	AwaitingRoster
	// Organizing organizers have a live game.
	Organizing
	// AwaitingCode participants tried a code that didn't match.
	AwaitingCode
	// AwaitingName participants joined a game but haven't claimed a
	// roster name yet.
	AwaitingName
	// Bound participants have claimed a roster name and may request
	// their recipient.
	Bound
)

func (s State) String() string {
	switch s {
	case AwaitingRoster:
		return "awaiting_roster"
	case Organizing:
		return "organizing"
	case AwaitingCode:
		return "awaiting_code"
	case AwaitingName:
		return "awaiting_name"
	case Bound:
		return "bound"
	default:
		return "unaffiliated"
	}
}

// Registry is the process-wide game state. Everything lives in memory
// for the lifetime of the process; a restart forgets all games, which
// is accepted. All mutation funnels through mu, one coarse lock held
// for the whole of each inbound message.
type Registry struct {
	mu sync.Mutex

	games   map[string]*Game  // game code → game
	pending map[string]string // organizer identity → code awaiting a roster
	active  map[string]string // organizer identity → code of their live game
	joined  map[string]string // participant identity → code they joined
	states  map[string]State  // chat identity → protocol state
}

func newRegistry() *Registry {
	return &Registry{
		games:   make(map[string]*Game),
		pending: make(map[string]string),
		active:  make(map[string]string),
		joined:  make(map[string]string),
		states:  make(map[string]State),
	}
}

// stateOf reports the protocol state for a chat identity.
func (r *Registry) stateOf(id string) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.states[id]
}

// setStateLocked records the new state for id, dropping the entry when
// the identity returns to Unaffiliated. Assumes r.mu is held.
func (r *Registry) setStateLocked(id string, s State) {
	if s == Unaffiliated {
		delete(r.states, id)

		return
	}

	r.states[id] = s
}
