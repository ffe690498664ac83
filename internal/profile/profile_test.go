package profile

import "testing"

func TestDefault(t *testing.T) {
	p := Default()
	if p.Name != "Alex Chen" {
		t.Errorf("Name = %q, want Alex Chen", p.Name)
	}
	if len(p.Skills) != 5 {
		t.Errorf("len(Skills) = %d, want 5", len(p.Skills))
	}
	if p.XP != 245 || p.Streak != 14 || p.Level != 7 {
		t.Errorf("got xp=%d streak=%d level=%d, want 245/14/7", p.XP, p.Streak, p.Level)
	}
}

func TestCredit(t *testing.T) {
	p := Default()
	got := p.Credit(25)
	if got.XP != 270 || got.Streak != 15 {
		t.Errorf("Credit(25) = xp %d streak %d, want 270/15", got.XP, got.Streak)
	}
	if p.XP != 245 || p.Streak != 14 {
		t.Error("Credit mutated the receiver")
	}
}

func TestCredit_IgnoresNegative(t *testing.T) {
	got := Default().Credit(-50)
	if got.XP != 245 {
		t.Errorf("XP = %d, want 245", got.XP)
	}
	if got.Streak != 15 {
		t.Errorf("Streak = %d, want 15", got.Streak)
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		xp   int
		want float64
	}{
		{0, 0},
		{245, 0.45},
		{300, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		got := Profile{XP: tt.xp}.LevelProgress()
		if got != tt.want {
			t.Errorf("LevelProgress(xp=%d) = %v, want %v", tt.xp, got, tt.want)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	p := Default()
	c := p.Clone()
	c.Skills[0] = "changed"
	if p.Skills[0] != "productivity" {
		t.Error("Clone shares Skills backing array")
	}
}
