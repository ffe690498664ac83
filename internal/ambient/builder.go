package ambient

// Config holds the probabilities used when simulating situational signals.
type Config struct {
	IdleProbability     float64
	WaitingProbability  float64
	LocationProbability float64
}

// DefaultConfig returns the standard signal probabilities.
func DefaultConfig() Config {
	return Config{
		IdleProbability:     0.4,
		WaitingProbability:  0.3,
		LocationProbability: 0.2,
	}
}

// Builder produces Contexts for automatic and manual triggers.
type Builder struct {
	clock Clock
	rand  Rand
	cfg   Config
}

// NewBuilder creates a Builder. Nil sources fall back to the system ones.
func NewBuilder(clock Clock, r Rand, cfg Config) *Builder {
	if clock == nil {
		clock = SystemClock{}
	}
	if r == nil {
		r = SystemRand{}
	}
	return &Builder{clock: clock, rand: r, cfg: cfg}
}

// Auto builds a context for a periodic tick. The resulting tags are the base
// tags followed by the appended signal tags in this order: idle, waiting,
// time of day, nearby, mood. Random draws happen in the order mood, idle,
// waiting, nearby.
func (b *Builder) Auto(baseTags []string, coords *Coordinates) Context {
	tod := TimeOfDayForHour(b.clock.Now().Hour())
	mood := b.drawMood()
	idle := b.rand.Float64() < b.cfg.IdleProbability
	waiting := b.rand.Float64() < b.cfg.WaitingProbability

	tags := make([]string, 0, len(baseTags)+5)
	tags = append(tags, baseTags...)
	if idle {
		tags = append(tags, TagIdle)
	}
	if waiting {
		tags = append(tags, TagWaiting)
	}
	if tod == Morning || tod == Evening {
		tags = append(tags, string(tod))
	}
	if coords != nil && b.rand.Float64() < b.cfg.LocationProbability {
		tags = append(tags, TagNearby)
	}
	tags = append(tags, mood)

	return Context{
		TimeOfDay: tod,
		Tags:      tags,
		Coords:    copyCoords(coords),
		Mood:      mood,
	}
}

// Manual builds a context for a user-requested trigger scoped to one tag.
func (b *Builder) Manual(tag string, coords *Coordinates) Context {
	return Context{
		TimeOfDay: Manual,
		Tags:      []string{tag, TagManual},
		Coords:    copyCoords(coords),
		Mood:      b.drawMood(),
	}
}

// Clock returns the builder's clock so callers stamp items consistently.
func (b *Builder) Clock() Clock {
	return b.clock
}

func (b *Builder) drawMood() string {
	return Moods[b.rand.IntN(len(Moods))]
}

func copyCoords(c *Coordinates) *Coordinates {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
