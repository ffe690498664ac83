package profile

// XPPerLevel is the XP span shown by the level progress bar.
const XPPerLevel = 100

// Profile is the learner's mock profile.
type Profile struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
	XP     int      `json:"xp"`
	Streak int      `json:"streak"`
	Level  int      `json:"level"`
}

// Default returns the demo learner every fresh start and reset begins with.
func Default() Profile {
	return Profile{
		Name:   "Alex Chen",
		Skills: []string{"productivity", "mindfulness", "language", "finance", "fitness"},
		XP:     245,
		Streak: 14,
		Level:  7,
	}
}

// Credit returns a copy with xp added and the streak bumped by one.
// Negative amounts are ignored so XP never decreases.
func (p Profile) Credit(xp int) Profile {
	next := p.Clone()
	if xp > 0 {
		next.XP += xp
	}
	next.Streak++
	return next
}

// LevelProgress is the fraction of the current XP span filled, in [0, 1).
func (p Profile) LevelProgress() float64 {
	if p.XP <= 0 {
		return 0
	}
	return float64(p.XP%XPPerLevel) / XPPerLevel
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	p.Skills = append([]string(nil), p.Skills...)
	return p
}
