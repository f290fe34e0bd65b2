package combat

// Threshold fires once, the first time a unit's health falls to or below
// Ratio of its maximum.
type Threshold struct {
	Ratio float64
	fired bool
}

func (t *Threshold) Fired() bool { return t.fired }

func (t *Threshold) Check(u *Unit) bool {
	if t.fired || u == nil || u.MaxHP <= 0 {
		return false
	}
	if float64(u.HP) <= t.Ratio*float64(u.MaxHP) {
		t.fired = true
		return true
	}
	return false
}
