package engine

// nextPhase is the forced-advance successor table. A (mode, phase) pair
// missing here has no successor and cannot be advanced past.
var nextPhase = map[Mode]map[Phase]Phase{
	ModeFirstGame: {
		PhaseWinnerBan:  PhaseLoserBan,
		PhaseLoserBan:   PhaseWinnerPick,
		PhaseWinnerPick: PhaseDone,
	},
	ModeLaterGame: {
		PhaseWinnerBan: PhaseLoserPick,
		PhaseLoserPick: PhaseDone,
	},
}
