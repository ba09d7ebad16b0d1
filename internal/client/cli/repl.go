package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const prompt = "watchlist> "

const helpText = `Available commands:
  list | refresh              reload the movie list
  add                         add a movie (prompts for title, year, poster)
  toggle <n|id>               mark a movie watched or unwatched
  delete <n|id>               delete a movie (asks for confirmation)
  filter all|watched|unwatched
  year <yyyy|all>             show one year only
  years                       list the years you can filter by
  search <text>               filter by title; no text clears the search
  help                        show this help
  exit | quit                 leave the program
<n> is the number shown next to a movie in the current list.`

// commands is the command surface the REPL drives. App implements it;
// tests can provide a stub.
type commands interface {
	Refresh(ctx context.Context) error
	Add(ctx context.Context) error
	Toggle(ctx context.Context, target string) error
	Delete(ctx context.Context, target string) error
	SetFilter(name string) error
	SetYear(year string)
	Search(term string)
	Years()
}

// runREPL reads one command per line from reader and dispatches it to a.
// Handlers report their own failures, so their errors are ignored here.
// The loop ends on end of input or on "exit" / "quit".
func runREPL(ctx context.Context, a commands, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprint(out, prompt)
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(out)
			return
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if cmd == "" {
			continue
		}

		switch strings.ToLower(cmd) {
		case "help", "?":
			fmt.Fprintln(out, helpText)

		case "list", "ls", "refresh":
			_ = a.Refresh(ctx)

		case "add":
			_ = a.Add(ctx)

		case "toggle":
			if rest == "" {
				fmt.Fprintln(out, "Usage: toggle <n|id>")
				continue
			}
			_ = a.Toggle(ctx, rest)

		case "delete", "rm":
			if rest == "" {
				fmt.Fprintln(out, "Usage: delete <n|id>")
				continue
			}
			_ = a.Delete(ctx, rest)

		case "filter":
			if rest == "" {
				fmt.Fprintln(out, "Usage: filter all|watched|unwatched")
				continue
			}
			_ = a.SetFilter(rest)

		case "year":
			a.SetYear(rest)

		case "years":
			a.Years()

		case "search":
			a.Search(rest)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
