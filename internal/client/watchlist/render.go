package watchlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/watchlist/backend/internal/client/api"
)

// MsgNoMovies is shown when the filters leave nothing to display
const MsgNoMovies = "No movies found"

// MinRenderWidth is the narrowest divider Render draws
const MinRenderWidth = 20

// WatchedLabel returns the icon and label for a watched state
func WatchedLabel(watched bool) string {
	if watched {
		return "✅ Watched"
	}
	return "❌ Not Watched"
}

// ToggleLabel returns the caption of the toggle action
func ToggleLabel(watched bool) string {
	if watched {
		return "Mark as Unwatched"
	}
	return "Mark as Watched"
}

// Render redraws the whole visible list of s as numbered cards. width is
// the terminal width used for dividers.
func Render(w io.Writer, s State, width int) error {
	if width < MinRenderWidth {
		width = MinRenderWidth
	}
	divider := strings.Repeat("─", width)

	var b strings.Builder
	b.WriteString(summary(s))
	b.WriteByte('\n')
	b.WriteString(divider)
	b.WriteByte('\n')

	visible := Visible(s)
	if len(visible) == 0 {
		b.WriteString(MsgNoMovies)
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, m := range visible {
		writeCard(&b, i+1, m)
		b.WriteString(divider)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCard(b *strings.Builder, n int, m api.Movie) {
	fmt.Fprintf(b, "[%d] %s\n", n, m.Title)
	fmt.Fprintf(b, "    Year: %s\n", m.Year)
	fmt.Fprintf(b, "    Poster: %s\n", m.Poster)
	fmt.Fprintf(b, "    %s\n", WatchedLabel(m.Watched))
	fmt.Fprintf(b, "    [toggle %d] %s   [delete %d] Delete\n", n, ToggleLabel(m.Watched), n)
	fmt.Fprintf(b, "    id: %s\n", m.ID)
}

// summary describes the active filters, e.g. "Showing watched · 2021 · search "dune""
func summary(s State) string {
	parts := []string{"Showing " + string(s.Filter)}
	if s.Filter == "" {
		parts[0] = "Showing " + string(FilterAll)
	}
	if s.Year != "" {
		parts = append(parts, s.Year)
	}
	if s.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", s.Search))
	}
	return fmt.Sprintf("%s (%d of %d)", strings.Join(parts, " · "), len(Visible(s)), len(s.Movies))
}

// RenderYears writes the year filter options, newest first
func RenderYears(w io.Writer, movies []api.Movie) error {
	years := Years(movies)
	if len(years) == 0 {
		_, err := fmt.Fprintln(w, "All Years")
		return err
	}
	_, err := fmt.Fprintf(w, "All Years, %s\n", strings.Join(years, ", "))
	return err
}

// RenderNotification formats a notification for a terminal line
func RenderNotification(n Notification) string {
	switch n.Severity {
	case SeveritySuccess:
		return "✔ " + n.Message
	case SeverityError:
		return "✖ " + n.Message
	default:
		return "ℹ " + n.Message
	}
}
