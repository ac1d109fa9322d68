// Package dialog drives the per-party conversation state machine that
// sequences pool withdrawals and directory searches.
package dialog

import "sync"

// State describes where one party currently is in the dialog.
type State int

const (
	// StateUnspecified represents an invalid state value.
	StateUnspecified State = iota
	// StateMenu waits for one of the menu actions.
	StateMenu
	// StateAskCount waits for the number of pool entries to withdraw.
	StateAskCount
	// StateAskQuery waits for a directory search query.
	StateAskQuery
)

// Inbound is one user-originated message entering the controller.
type Inbound struct {
	PartyID int64
	Text    string
}

// Effect is one outgoing reply produced by a dialog turn.
type Effect interface {
	isEffect()
}

// SendText is a plain or lightly-marked-up reply. MenuHint attaches the
// fixed action menu; when false the transport clears any visible menu.
type SendText struct {
	Body     string
	MenuHint bool
}

func (SendText) isEffect() {}

// SendFile delivers the withdrawal result as a downloadable document.
type SendFile struct {
	Filename string
	Content  []byte
	Caption  string
}

func (SendFile) isEffect() {}

// SessionStore tracks each party's dialog position across turns. A party
// with no stored state has no active session: the implicit ended state.
type SessionStore interface {
	Get(partyID int64) (State, bool)
	Put(partyID int64, state State)
	Delete(partyID int64)
}

// MemorySessions is the in-memory SessionStore. Sessions do not survive
// a restart; parties begin again with /start.
type MemorySessions struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewMemorySessions creates an empty session store.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{states: make(map[int64]State)}
}

// Get returns the party's current state, if any.
func (m *MemorySessions) Get(partyID int64) (State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[partyID]
	return state, ok
}

// Put stores the party's current state.
func (m *MemorySessions) Put(partyID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[partyID] = state
}

// Delete ends the party's session.
func (m *MemorySessions) Delete(partyID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, partyID)
}
