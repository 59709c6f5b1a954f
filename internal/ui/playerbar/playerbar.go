// Package playerbar renders the bottom playback status bar.
package playerbar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tlacroix/aria/internal/playback"
	"github.com/tlacroix/aria/internal/track"
	"github.com/tlacroix/aria/internal/ui/render"
)

// State holds everything needed to render the player bar.
type State struct {
	Playing    bool
	Paused     bool
	Track      int
	Title      string
	Artist     string
	Album      string
	Position   time.Duration
	Duration   time.Duration
	Format     string // "FLAC", "MP3", "WAV"
	SampleRate int    // e.g. 44100
	BitDepth   int    // e.g. 16, 24
}

// Height is the total height of the player bar: top border + content + bottom border.
const Height = 3

// NewState builds a State from the current playback state and track.
// Returns an empty State when stopped or no track is loaded.
func NewState(st playback.State, t *track.Track, position, duration time.Duration) State {
	if st == playback.StateStopped || t == nil {
		return State{}
	}

	return State{
		Playing:    st == playback.StatePlaying,
		Paused:     st == playback.StatePaused,
		Track:      t.TrackNumber,
		Title:      t.Title,
		Artist:     t.Artist,
		Album:      t.Album,
		Position:   position,
		Duration:   duration,
		Format:     t.Format,
		SampleRate: t.SampleRate,
		BitDepth:   t.BitDepth,
	}
}

// Render returns the player bar string for the given width.
// Returns empty string when stopped.
func Render(s State, width int) string {
	if !s.Playing && !s.Paused {
		return ""
	}

	// Border and padding
	innerWidth := max(width-6, 0)

	status := playSymbol
	if s.Paused {
		status = pauseSymbol
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}

	// Artist · Album
	var infoParts []string
	if s.Artist != "" {
		infoParts = append(infoParts, s.Artist)
	}
	if s.Album != "" {
		infoParts = append(infoParts, s.Album)
	}
	info := strings.Join(infoParts, " · ")

	trackNum := ""
	if s.Track > 0 {
		trackNum = strconv.Itoa(s.Track)
	}

	badge := FormatBadge(s.Format, s.BitDepth, s.SampleRate)
	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	timeWidth := lipgloss.Width(timeStr)
	statusWidth := lipgloss.Width(status + "  ")
	badgeWidth := lipgloss.Width(badge)
	trackNumWidth := lipgloss.Width(trackNum)

	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	minBarWidth := 10

	trackNumSpace := 0
	if trackNum != "" {
		trackNumSpace = trackNumWidth + sepWidth
	}
	badgeSpace := 0
	if badge != "" {
		badgeSpace = badgeWidth + sepWidth
	}
	availableForContent := innerWidth - statusWidth - timeWidth - sepWidth*2 - minBarWidth - trackNumSpace - badgeSpace

	var styledTitle, styledInfo string
	var usedContentWidth int

	switch {
	case titleWidth+sepWidth+infoWidth <= availableForContent:
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(info)
		usedContentWidth = titleWidth + sepWidth + infoWidth
	case titleWidth+sepWidth <= availableForContent && info != "":
		maxInfo := availableForContent - titleWidth - sepWidth
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(render.TruncateEllipsis(info, maxInfo))
		usedContentWidth = titleWidth + sepWidth + maxInfo
	default:
		maxTitle := max(availableForContent, 10)
		styledTitle = titleStyle().Render(render.TruncateEllipsis(title, maxTitle))
		styledInfo = ""
		usedContentWidth = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-usedContentWidth-trackNumSpace-badgeSpace-statusWidth-timeWidth-sepWidth*2, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	filledBar := progressFilledStyle().Render(strings.Repeat("━", filled))
	emptyBar := progressEmptyStyle().Render(strings.Repeat("─", barWidth-filled))

	// Title   Artist · Album   3   FLAC 24/96.0   ▶ ━━━───   1:23 / 3:58
	var content strings.Builder
	content.WriteString(styledTitle)
	if styledInfo != "" {
		content.WriteString(separator)
		content.WriteString(styledInfo)
	}
	if trackNum != "" {
		content.WriteString(separator)
		content.WriteString(metaStyle().Render(trackNum))
	}
	if badge != "" {
		content.WriteString(separator)
		content.WriteString(badgeStyle().Render(badge))
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(filledBar)
	content.WriteString(emptyBar)
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(timeStr))

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

// FormatBadge formats the stream description shown while playing,
// e.g. "FLAC 24/96.0" or "MP3 44.1".
func FormatBadge(format string, bitDepth, sampleRate int) string {
	if format == "" || sampleRate == 0 {
		return ""
	}
	rate := strconv.FormatFloat(float64(sampleRate)/1000, 'f', 1, 64)
	if bitDepth > 0 {
		return fmt.Sprintf("%s %d/%s", format, bitDepth, rate)
	}
	return fmt.Sprintf("%s %s", format, rate)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
