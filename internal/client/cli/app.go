// Package cli is the interactive terminal client for the movie watchlist.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/watchlist/backend/internal/client/api"
	"github.com/watchlist/backend/internal/client/watchlist"
	"go.uber.org/zap"
)

// Notifications shown after each action
const (
	MsgLoadFailed   = "Couldn't load movies."
	MsgAddFailed    = "Failed to add movie."
	MsgToggleFailed = "Failed to update."
	MsgDeleteFailed = "Delete failed."
	MsgAdded        = "Movie added!"
	MsgToggled      = "Toggled watched status!"
	MsgDeleted      = "Deleted movie."
	MsgConfirmDel   = "Delete this movie?"
)

// MovieAPI is the part of the API client the CLI uses
type MovieAPI interface {
	List(ctx context.Context) ([]api.Movie, error)
	Add(ctx context.Context, req api.AddMovieRequest) (string, error)
	Toggle(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}

// App holds the client state and runs commands against the API. Every
// successful mutation is followed by a full reload of the list.
type App struct {
	api      MovieAPI
	state    watchlist.State
	notifier *watchlist.Notifier
	reader   *bufio.Reader
	out      io.Writer
	width    func() int
	logger   *zap.Logger
}

// Option configures an App
type Option func(*App)

// WithWidth overrides terminal width detection
func WithWidth(fn func() int) Option {
	return func(a *App) { a.width = fn }
}

// WithNotifyOptions passes options to the App's notifier
func WithNotifyOptions(opts ...watchlist.NotifierOption) Option {
	return func(a *App) {
		a.notifier = watchlist.NewNotifier(append(opts, watchlist.WithOnShow(a.printNotification))...)
	}
}

// NewApp creates an App reading commands from in and writing to out
func NewApp(client MovieAPI, in io.Reader, out io.Writer, log *zap.Logger, opts ...Option) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		api:    client,
		state:  watchlist.NewState(),
		reader: bufio.NewReader(in),
		out:    out,
		width:  terminalWidth,
		logger: log.Named("cli"),
	}
	a.notifier = watchlist.NewNotifier(watchlist.WithOnShow(a.printNotification))
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns a copy of the current client state
func (a *App) State() watchlist.State {
	return a.state
}

// Notification returns the notification on display, if any
func (a *App) Notification() (watchlist.Notification, bool) {
	return a.notifier.Current()
}

// Run loads the list and reads commands until exit or end of input
func (a *App) Run(ctx context.Context) {
	defer a.notifier.Close()

	fmt.Fprintln(a.out, "Movie Watchlist (type 'help' for commands)")
	_ = a.Refresh(ctx)
	runREPL(ctx, a, a.reader, a.out)
}

// Refresh fetches the whole list and redraws it. On failure the view is
// drawn empty while the last known list is kept for filtering.
func (a *App) Refresh(ctx context.Context) error {
	movies, err := a.api.List(ctx)
	if err != nil {
		a.logger.Debug("list failed", zap.Error(err))
		a.notifier.Error(MsgLoadFailed)
		a.render(a.state.WithMovies(nil))
		return err
	}
	a.state = a.state.WithMovies(movies)
	a.render(a.state)
	return nil
}

// Add prompts for a movie, validates it and sends it to the API
func (a *App) Add(ctx context.Context) error {
	var in watchlist.MovieInput
	var err error
	if in.Title, err = GetSimpleText(a.reader, "Title (max 40 chars)", a.out); err != nil {
		return err
	}
	if in.Year, err = GetSimpleText(a.reader, "Year (1888-2099)", a.out); err != nil {
		return err
	}
	if in.Poster, err = GetSimpleText(a.reader, "Poster URL (.jpg, .jpeg, .png, .webp)", a.out); err != nil {
		return err
	}

	in = in.Normalize()
	if err := watchlist.Validate(in); err != nil {
		a.notifier.Error(err.Error())
		return err
	}

	_, err = a.api.Add(ctx, api.AddMovieRequest{
		Title:  in.Title,
		Year:   in.Year,
		Poster: in.Poster,
	})
	if err != nil {
		a.logger.Debug("add failed", zap.String("title", in.Title), zap.Error(err))
		a.notifier.Error(MsgAddFailed)
		return err
	}

	a.notifier.Success(MsgAdded)
	return a.Refresh(ctx)
}

// Toggle flips the watched flag of the movie at position or id target
func (a *App) Toggle(ctx context.Context, target string) error {
	id, err := a.resolve(target)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if _, err := a.api.Toggle(ctx, id); err != nil {
		a.logger.Debug("toggle failed", zap.String("movie_id", id), zap.Error(err))
		a.notifier.Error(MsgToggleFailed)
		return err
	}

	a.notifier.Success(MsgToggled)
	return a.Refresh(ctx)
}

// Delete removes the movie at position or id target after confirmation.
// Declining sends nothing.
func (a *App) Delete(ctx context.Context, target string) error {
	id, err := a.resolve(target)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	ok, err := Confirm(a.reader, MsgConfirmDel, a.out)
	if err != nil || !ok {
		return err
	}

	if _, err := a.api.Delete(ctx, id); err != nil {
		a.logger.Debug("delete failed", zap.String("movie_id", id), zap.Error(err))
		a.notifier.Error(MsgDeleteFailed)
		return err
	}

	a.notifier.Success(MsgDeleted)
	return a.Refresh(ctx)
}

// SetFilter changes the watched-state filter and redraws
func (a *App) SetFilter(name string) error {
	f, err := watchlist.ParseWatchFilter(name)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	a.state = a.state.WithFilter(f)
	a.render(a.state)
	return nil
}

// SetYear changes the year filter and redraws. "all" or empty clears it.
func (a *App) SetYear(year string) {
	if year == "all" {
		year = ""
	}
	a.state = a.state.WithYear(year)
	a.render(a.state)
}

// Search changes the title search and redraws. Empty clears it.
func (a *App) Search(term string) {
	a.state = a.state.WithSearch(term)
	a.render(a.state)
}

// Years lists the year filter options of the loaded movies
func (a *App) Years() {
	_ = watchlist.RenderYears(a.out, a.state.Movies)
}

// resolve maps a 1-based position in the visible list to an id. Anything
// that is not a small number is taken as an id.
func (a *App) resolve(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("a list number or movie id is required")
	}
	n, err := strconv.Atoi(target)
	if err != nil || len(target) > 6 {
		return target, nil
	}
	visible := watchlist.Visible(a.state)
	if n < 1 || n > len(visible) {
		return "", fmt.Errorf("no movie at position %d", n)
	}
	return visible[n-1].ID, nil
}

func (a *App) render(s watchlist.State) {
	if err := watchlist.Render(a.out, s, a.width()); err != nil {
		a.logger.Warn("render failed", zap.Error(err))
	}
}

func (a *App) printNotification(n watchlist.Notification) {
	fmt.Fprintln(a.out, watchlist.RenderNotification(n))
}
