package mines

// CheckWin is true once every safe tile is open. Mines may be flagged or
// left hidden; flags are not checked for correctness.
func CheckWin(b *Board) bool {
	for t := range b.All() {
		if t.Status == Number {
			continue
		}
		if t.Mine && (t.Status == Hidden || t.Status == Marked) {
			continue
		}
		return false
	}
	return true
}

func CheckLose(b *Board) bool {
	for t := range b.All() {
		if t.Status == Mine {
			return true
		}
	}
	return false
}

// LossSweep exposes the board after an explosion: wrong flags are crossed
// out and every hidden tile is revealed without cascading.
func LossSweep(b *Board) {
	for t := range b.All() {
		switch {
		case t.Status == Marked && !t.Mine:
			t.Status = MarkedWrong
			t.Adjacent = b.AdjacentMineCount(t.Pos)
		case t.Status == Hidden && t.Mine:
			t.Status = Mine
		case t.Status == Hidden:
			t.Status = Number
			t.Adjacent = b.AdjacentMineCount(t.Pos)
		}
	}
}

// WinSweep flags the mines that are still hidden after a win.
func WinSweep(b *Board) {
	for t := range b.All() {
		t.Mark()
	}
}
