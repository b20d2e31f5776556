package engine

import "slices"

// View is the read-only projection sent to observers. It is computed on
// demand and never stored; the Machine stays the single source of truth.
type View struct {
	MatchID        string   `json:"matchId"`
	Mode           Mode     `json:"mode"`
	Phase          Phase    `json:"phase"`
	Bans           []string `json:"bans"`
	Pick           *string  `json:"pick"`
	Available      []string `json:"available"`
	BansRemaining  int      `json:"bansRemaining"`
	PicksRemaining int      `json:"picksRemaining"`
	CanUndo        bool     `json:"canUndo"`
}

// View projects the machine for a given match id.
func (m *Machine) View(matchID string) View {
	available := make([]string, 0, m.cat.Len()-len(m.Bans))
	for _, id := range m.cat.IDs() {
		if !slices.Contains(m.Bans, id) {
			available = append(available, id)
		}
	}

	var pick *string
	if m.Pick != "" {
		p := m.Pick
		pick = &p
	}

	return View{
		MatchID:        matchID,
		Mode:           m.Mode,
		Phase:          m.Phase,
		Bans:           slices.Clone(m.Bans),
		Pick:           pick,
		Available:      available,
		BansRemaining:  m.bansRemaining(),
		PicksRemaining: m.picksRemaining(),
		CanUndo:        len(m.History) > 0,
	}
}

func (m *Machine) bansRemaining() int {
	quota := m.banQuota()
	if quota == 0 {
		return 0
	}
	if r := quota - len(m.Bans); r > 0 {
		return r
	}
	return 0
}

func (m *Machine) picksRemaining() int {
	if (m.Phase == PhaseWinnerPick || m.Phase == PhaseLoserPick) && m.Pick == "" {
		return 1
	}
	return 0
}
