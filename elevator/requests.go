package elevator

// Pending-floor queries and the SCAN next-floor rule. All functions in
// this file require u.mu to be held.

func (u *Unit) pendingAbove() bool {
	for f := u.floor + 1; f <= u.cfg.NumFloors; f++ {
		if u.pending[f] {
			return true
		}
	}
	return false
}

func (u *Unit) pendingBelow() bool {
	for f := 1; f < u.floor; f++ {
		if u.pending[f] {
			return true
		}
	}
	return false
}

func (u *Unit) minAbove() (int, bool) {
	for f := u.floor + 1; f <= u.cfg.NumFloors; f++ {
		if u.pending[f] {
			return f, true
		}
	}
	return 0, false
}

func (u *Unit) maxBelow() (int, bool) {
	for f := u.floor - 1; f >= 1; f-- {
		if u.pending[f] {
			return f, true
		}
	}
	return 0, false
}

// nextFloor picks the next floor to serve. Sweeping up (or idle) it takes
// the lowest pending floor above, falling back to the highest below when
// nothing lies ahead; sweeping down it is symmetric. The current floor
// wins outright when it is itself pending.
func (u *Unit) nextFloor() (int, bool) {
	if u.npending == 0 {
		return 0, false
	}
	if u.pending[u.floor] {
		return u.floor, true
	}
	switch u.direction {
	case Down:
		if f, ok := u.maxBelow(); ok {
			return f, true
		}
		return u.minAbove()
	default: // Up or None
		if f, ok := u.minAbove(); ok {
			return f, true
		}
		return u.maxBelow()
	}
}

// recomputeDirection re-derives the sweep direction from the pending set
// after a floor has been served. Keeps going the same way while anything
// lies ahead, otherwise reverses, and drops to None on an empty set.
func (u *Unit) recomputeDirection() {
	switch u.direction {
	case Up:
		if u.pendingAbove() {
			u.direction = Up
		} else if u.pendingBelow() {
			u.direction = Down
		} else {
			u.direction = None
		}
	case Down:
		if u.pendingBelow() {
			u.direction = Down
		} else if u.pendingAbove() {
			u.direction = Up
		} else {
			u.direction = None
		}
	default:
		if u.pendingAbove() {
			u.direction = Up
		} else if u.pendingBelow() {
			u.direction = Down
		} else {
			u.direction = None
		}
	}
}

func (u *Unit) addPending(floor int) {
	if !u.pending[floor] {
		u.pending[floor] = true
		u.npending++
	}
}

func (u *Unit) clearPending(floor int) {
	if u.pending[floor] {
		u.pending[floor] = false
		u.npending--
	}
}

func (u *Unit) clearAllPending() {
	for f := 1; f <= u.cfg.NumFloors; f++ {
		u.pending[f] = false
	}
	u.npending = 0
}
