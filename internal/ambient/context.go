package ambient

// TimeOfDay buckets the wall-clock hour.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Manual    TimeOfDay = "manual"
)

// Situational tags appended by the builder.
const (
	TagIdle    = "idle"
	TagWaiting = "waiting"
	TagNearby  = "nearby"
	TagManual  = "manual"
)

// Moods is the fixed mood vocabulary. A mood is drawn uniformly from it.
var Moods = []string{"focused", "curious", "tired", "relaxed", "stressed", "energetic"}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Context is a simulated snapshot of what the user is plausibly doing.
// Tags may contain duplicates.
type Context struct {
	TimeOfDay TimeOfDay    `json:"time_of_day"`
	Tags      []string     `json:"tags"`
	Coords    *Coordinates `json:"coords,omitempty"`
	Mood      string       `json:"mood"`
}

// TimeOfDayForHour maps an hour in [0, 24) to morning, afternoon or evening.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	default:
		return Evening
	}
}
