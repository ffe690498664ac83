package catalog

// Lesson is a short, self-contained learning snippet.
// Lessons are defined by the embedded catalog and never change at runtime.
type Lesson struct {
	ID    string   `yaml:"id" json:"id"`
	Title string   `yaml:"title" json:"title"`
	Tags  []string `yaml:"tags" json:"tags"`
	Body  string   `yaml:"body" json:"body"`
	XP    int      `yaml:"xp" json:"xp"`

	// Cosmetic only.
	Icon  string `yaml:"icon" json:"icon"`
	Color string `yaml:"color" json:"color"`
}

// HasAnyTag reports whether at least one of the lesson's tags is in set.
// Matching is exact and case-sensitive.
func (l Lesson) HasAnyTag(set map[string]bool) bool {
	for _, t := range l.Tags {
		if set[t] {
			return true
		}
	}
	return false
}
