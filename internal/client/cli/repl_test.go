package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder records which commands the REPL dispatched
type recorder struct {
	calls []string
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *recorder) Refresh(context.Context) error {
	r.record("refresh")
	return nil
}

func (r *recorder) Add(context.Context) error {
	r.record("add")
	return nil
}

func (r *recorder) Toggle(_ context.Context, target string) error {
	r.record("toggle " + target)
	return nil
}

func (r *recorder) Delete(_ context.Context, target string) error {
	r.record("delete " + target)
	return nil
}

func (r *recorder) SetFilter(name string) error {
	r.record("filter " + name)
	return nil
}

func (r *recorder) SetYear(year string) { r.record("year " + year) }

func (r *recorder) Search(term string) { r.record("search " + term) }

func (r *recorder) Years() { r.record("years") }

func TestRunREPL_Dispatch(t *testing.T) {
	input := "list\n" +
		"\n" +
		"refresh\n" +
		"add\n" +
		"toggle 2\n" +
		"delete 66f0c0ffee0123456789abcd\n" +
		"filter watched\n" +
		"year 2021\n" +
		"year\n" +
		"years\n" +
		"search the dark knight\n" +
		"search\n" +
		"exit\n" +
		"list\n"

	r := &recorder{}
	var out bytes.Buffer
	runREPL(context.Background(), r, rdr(input), &out)

	assert.Equal(t, []string{
		"refresh",
		"refresh",
		"add",
		"toggle 2",
		"delete 66f0c0ffee0123456789abcd",
		"filter watched",
		"year 2021",
		"year ",
		"years",
		"search the dark knight",
		"search ",
	}, r.calls)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	r := &recorder{}
	var out bytes.Buffer
	runREPL(context.Background(), r, rdr("toggle\ndelete\nfilter\nfly\nhelp\n"), &out)

	assert.Empty(t, r.calls)
	assert.Contains(t, out.String(), "Usage: toggle <n|id>")
	assert.Contains(t, out.String(), "Usage: delete <n|id>")
	assert.Contains(t, out.String(), "Usage: filter all|watched|unwatched")
	assert.Contains(t, out.String(), "Unknown command: fly")
	assert.Contains(t, out.String(), "Available commands:")
}

func TestRunREPL_StopsAtEndOfInput(t *testing.T) {
	r := &recorder{}
	var out bytes.Buffer
	runREPL(context.Background(), r, rdr("quit"), &out)

	assert.Empty(t, r.calls)
	assert.Contains(t, out.String(), "Bye!")
}
