package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/queue"
	"github.com/abhisek/nudge/internal/ui/components"
	"github.com/abhisek/nudge/internal/ui/theme"
)

func joinSections(sections []string, compact bool) string {
	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return strings.Join(sections, sep)
}

func renderProfile(s engine.State, cw int, compact bool) string {
	p := s.Profile
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Name)
	level := lipgloss.NewStyle().Foreground(theme.Primary).Render(fmt.Sprintf("Level %d", p.Level))
	head := name + "  " + level

	bar := components.NewProgressBar("XP", p.LevelProgress(), true, cw-4).View()

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	stats := dim.Render(fmt.Sprintf("%d XP · %d day streak · %d completed", p.XP, p.Streak, s.Completed))

	body := head + "\n" + bar
	if !compact {
		body += "\n" + stats
	}
	return components.Card(body, cw, nil)
}

func renderAmbient(s engine.State, cw int) string {
	status := theme.Off.Render("○ Ambient off")
	if s.Ambient {
		status = theme.On.Render("● Ambient on")
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	last := dim.Render("nothing triggered yet")
	if s.LastTrigger != nil {
		last = dim.Render(fmt.Sprintf("last: %s at %s", s.LastTrigger.LessonID, s.LastTrigger.At.Format("15:04")))
	}

	where := ""
	if s.Coords != nil {
		where = dim.Render(fmt.Sprintf("  ⌖ %.2f, %.2f", s.Coords.Lat, s.Coords.Lon))
	}

	return components.Card(status+"   "+last+where, cw, nil)
}

func renderTags(s engine.State, selected, cw int) string {
	if len(s.EnvTags) == 0 {
		return components.Card(theme.Hint.Render("No environment tags. Press e to add some."), cw, nil)
	}
	parts := make([]string, 0, len(s.EnvTags))
	for i, t := range s.EnvTags {
		if i == selected {
			parts = append(parts, theme.Selected.Render("["+t+"]"))
		} else {
			parts = append(parts, theme.Tag.Render(t))
		}
	}
	return components.Card(strings.Join(parts, "  "), cw, nil)
}

func renderQueue(m components.Menu, n, cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Up next (%d/%d)", n, queue.Capacity))
	if n == 0 {
		return components.Card(title+"\n"+theme.Hint.Render("Nothing queued. Lessons appear as your context changes."), cw, nil)
	}
	return components.Card(title+"\n"+m.View(), cw, theme.Primary)
}
