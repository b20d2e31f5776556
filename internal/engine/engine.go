package engine

import (
	"errors"
	"slices"
	"time"

	"github.com/strikerapp/striker-backend/internal/catalog"
)

var ErrUnknownStage = errors.New("unknown stage")
var ErrAlreadyBanned = errors.New("stage already banned")
var ErrStageBanned = errors.New("stage is banned")
var ErrAlreadyPicked = errors.New("stage already picked")
var ErrWrongPhase = errors.New("action not legal in current phase")
var ErrNoBansLeft = errors.New("ban quota exhausted")
var ErrNothingToUndo = errors.New("nothing to undo")
var ErrInvalidMode = errors.New("invalid mode")
var ErrCannotAdvance = errors.New("cannot advance phase")

type Mode string

const (
	ModeFirstGame Mode = "first_game"
	ModeLaterGame Mode = "later_game"
)

// ParseMode maps a wire mode string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeFirstGame:
		return ModeFirstGame, true
	case ModeLaterGame:
		return ModeLaterGame, true
	default:
		return "", false
	}
}

type Phase string

const (
	PhaseWinnerBan  Phase = "winner_ban"
	PhaseLoserBan   Phase = "loser_ban"
	PhaseWinnerPick Phase = "winner_pick"
	PhaseLoserPick  Phase = "loser_pick"
	PhaseDone       Phase = "done"
)

// Ban quotas are accumulated totals. The winner always strikes 3; in a first
// game the loser then strikes until 7 are gone.
const (
	winnerBanQuota = 3
	firstGameTotal = 7
	laterGameTotal = 3
)

type ActionKind string

const (
	ActionBan     ActionKind = "ban"
	ActionPick    ActionKind = "pick"
	ActionAdvance ActionKind = "advance"
)

// HistoryEntry records one reversible action: what happened, which stage it
// touched (empty for a forced advance), and the phase to restore on undo.
type HistoryEntry struct {
	Kind      ActionKind
	StageID   string
	PrevPhase Phase
}

type EventType string

const (
	EvtBan  EventType = "BAN"
	EvtPick EventType = "PICK"
)

// Event is a discrete notification emitted by a successful ban or pick,
// broadcast separately from the persistent state view.
type Event struct {
	Type      EventType `json:"type"`
	StageID   string    `json:"stageId"`
	Timestamp int64     `json:"timestamp"`
}

// Machine is one match's striking state. Phase is authoritative stored
// state: each operation advances it explicitly rather than re-deriving it on
// read, which keeps ForceAdvance and Undo simple.
//
// A Machine is not safe for concurrent use; the hub goroutine owns it.
type Machine struct {
	Mode    Mode
	Phase   Phase
	Bans    []string
	Pick    string // empty until picked
	History []HistoryEntry

	cat *catalog.Catalog
}

// New returns a fresh machine in the winner's ban phase.
func New(cat *catalog.Catalog, mode Mode) *Machine {
	return &Machine{
		Mode:  mode,
		Phase: PhaseWinnerBan,
		Bans:  []string{},
		cat:   cat,
	}
}

// Ban strikes a stage. On success the phase advances once the current quota
// is met and a BAN event is returned.
func (m *Machine) Ban(stageID string) (Event, error) {
	if !m.cat.Has(stageID) {
		return Event{}, ErrUnknownStage
	}
	if slices.Contains(m.Bans, stageID) {
		return Event{}, ErrAlreadyBanned
	}
	if m.Phase != PhaseWinnerBan && m.Phase != PhaseLoserBan {
		return Event{}, ErrWrongPhase
	}
	if len(m.Bans) >= m.banQuota() {
		return Event{}, ErrNoBansLeft
	}

	prev := m.Phase
	m.Bans = append(m.Bans, stageID)
	m.History = append(m.History, HistoryEntry{Kind: ActionBan, StageID: stageID, PrevPhase: prev})
	m.advanceAfterBan()

	return Event{Type: EvtBan, StageID: stageID, Timestamp: time.Now().UnixMilli()}, nil
}

// PickStage locks in the final stage and ends the ritual.
func (m *Machine) PickStage(stageID string) (Event, error) {
	if !m.cat.Has(stageID) {
		return Event{}, ErrUnknownStage
	}
	if slices.Contains(m.Bans, stageID) {
		return Event{}, ErrStageBanned
	}
	if m.Phase != PhaseWinnerPick && m.Phase != PhaseLoserPick {
		return Event{}, ErrWrongPhase
	}
	if m.Pick != "" {
		return Event{}, ErrAlreadyPicked
	}

	prev := m.Phase
	m.Pick = stageID
	m.History = append(m.History, HistoryEntry{Kind: ActionPick, StageID: stageID, PrevPhase: prev})
	m.Phase = PhaseDone

	return Event{Type: EvtPick, StageID: stageID, Timestamp: time.Now().UnixMilli()}, nil
}

// Undo reverses the most recent ban, pick, or forced advance, restoring the
// phase recorded when that action ran. Strictly backward; no redo.
func (m *Machine) Undo() error {
	if len(m.History) == 0 {
		return ErrNothingToUndo
	}

	entry := m.History[len(m.History)-1]
	m.History = m.History[:len(m.History)-1]

	switch entry.Kind {
	case ActionBan:
		if i := slices.Index(m.Bans, entry.StageID); i >= 0 {
			m.Bans = slices.Delete(m.Bans, i, i+1)
		}
	case ActionPick:
		m.Pick = ""
	case ActionAdvance:
		// no data effect to reverse
	}
	m.Phase = entry.PrevPhase
	return nil
}

// ForceAdvance moves to the next phase without the usual counts being met.
// Arbitration override; Undo restores the prior phase like any other action.
func (m *Machine) ForceAdvance() error {
	next, ok := nextPhase[m.Mode][m.Phase]
	if !ok {
		return ErrCannotAdvance
	}
	m.History = append(m.History, HistoryEntry{Kind: ActionAdvance, PrevPhase: m.Phase})
	m.Phase = next
	return nil
}

// SetMode discards all progress and starts over in the given mode.
func (m *Machine) SetMode(mode Mode) error {
	if mode != ModeFirstGame && mode != ModeLaterGame {
		return ErrInvalidMode
	}
	*m = *New(m.cat, mode)
	return nil
}

// Reset discards all progress, preserving the current mode.
func (m *Machine) Reset() {
	*m = *New(m.cat, m.Mode)
}

// banQuota is the accumulated-ban ceiling for the current phase.
func (m *Machine) banQuota() int {
	switch m.Phase {
	case PhaseWinnerBan:
		return winnerBanQuota
	case PhaseLoserBan:
		return firstGameTotal
	}
	return 0
}

func (m *Machine) advanceAfterBan() {
	switch m.Mode {
	case ModeFirstGame:
		if m.Phase == PhaseWinnerBan && len(m.Bans) >= winnerBanQuota {
			m.Phase = PhaseLoserBan
		} else if m.Phase == PhaseLoserBan && len(m.Bans) >= firstGameTotal {
			m.Phase = PhaseWinnerPick
		}
	case ModeLaterGame:
		if m.Phase == PhaseWinnerBan && len(m.Bans) >= laterGameTotal {
			m.Phase = PhaseLoserPick
		}
	}
}
