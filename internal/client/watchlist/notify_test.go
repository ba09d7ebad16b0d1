package watchlist

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_ShowAndExpire(t *testing.T) {
	n := NewNotifier(WithDelay(20 * time.Millisecond))
	defer n.Close()

	_, ok := n.Current()
	assert.False(t, ok)

	n.Success("Movie added!")

	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, Notification{Message: "Movie added!", Severity: SeveritySuccess}, got)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_NewerReplacesOlder(t *testing.T) {
	n := NewNotifier(WithDelay(50 * time.Millisecond))
	defer n.Close()

	n.Error("Failed to update.")
	n.Info("Loading")

	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Loading", got.Message)
	assert.Equal(t, SeverityInfo, got.Severity)
}

func TestNotifier_StaleTimerKeepsNewer(t *testing.T) {
	n := NewNotifier(WithDelay(time.Hour))
	defer n.Close()

	n.Error("Delete failed.")
	n.mu.Lock()
	staleGen := n.gen
	n.mu.Unlock()

	n.Success("Deleted movie.")
	n.expire(staleGen)

	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Deleted movie.", got.Message)
}

func TestNotifier_OnShow(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []Notification
	)
	n := NewNotifier(WithDelay(time.Hour), WithOnShow(func(note Notification) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, note)
	}))
	defer n.Close()

	n.Success("Toggled watched status!")
	n.Error("Couldn't load movies.")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Notification{
		{Message: "Toggled watched status!", Severity: SeveritySuccess},
		{Message: "Couldn't load movies.", Severity: SeverityError},
	}, seen)
}

func TestNotifier_Close(t *testing.T) {
	n := NewNotifier(WithDelay(time.Hour))
	n.Info("hello")
	n.Close()

	_, ok := n.Current()
	assert.False(t, ok)
}

func TestNotifier_DefaultDelay(t *testing.T) {
	n := NewNotifier()
	assert.Equal(t, 2400*time.Millisecond, n.delay)
}
