package harness

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrAmbiguousCommand is returned when an abbreviation fits several commands.
	ErrAmbiguousCommand = errors.New("ambiguous command")
)

// command is one harness verb.
type command struct {
	name    string
	args    string
	summary string
	// drives marks commands that change timer state. They are never
	// reached by a fuzzy guess.
	drives bool
	run    func(s *Session, ctx context.Context, args []string) error
}

// minFuzzyLen is the shortest verb resolve will guess at.
const minFuzzyLen = 3

var commands []command

func init() {
	commands = []command{
		{name: "select", drives: true, summary: "press the select button", run: (*Session).cmdSelect},
		{name: "up", drives: true, summary: "press the up button", run: (*Session).cmdUp},
		{name: "down", drives: true, summary: "press the down button", run: (*Session).cmdDown},
		{name: "tick", drives: true, args: "[n]", summary: "advance the clock n seconds (default 1)", run: (*Session).cmdTick},
		{name: "duration", summary: "show the duration text", run: (*Session).cmdDuration},
		{name: "count", summary: "show the cycle count text", run: (*Session).cmdCount},
		{name: "icons", summary: "show the action bar icons", run: (*Session).cmdIcons},
		{name: "state", summary: "show phase, elapsed seconds and cycles", run: (*Session).cmdState},
		{name: "pulses", summary: "show haptic pulses emitted so far", run: (*Session).cmdPulses},
		{name: "history", args: "[n]", summary: "show the n most recent transitions (default 10)", run: (*Session).cmdHistory},
		{name: "stats", summary: "show journal totals", run: (*Session).cmdStats},
		{name: "help", summary: "list commands", run: (*Session).cmdHelp},
		{name: "quit", summary: "end the session", run: (*Session).cmdQuit},
	}
}

// resolve maps a possibly abbreviated verb to a command. Exact names win,
// then a unique prefix, then the single best fuzzy match among the
// read-only commands that share the verb's first letter.
func resolve(verb string) (command, error) {
	names := make([]string, len(commands))
	for i, c := range commands {
		if c.name == verb {
			return c, nil
		}
		names[i] = c.name
	}

	var prefixed []int
	for i, name := range names {
		if strings.HasPrefix(name, verb) {
			prefixed = append(prefixed, i)
		}
	}
	switch len(prefixed) {
	case 1:
		return commands[prefixed[0]], nil
	case 0:
	default:
		return command{}, ambiguous(verb, names, prefixed)
	}

	unknown := fmt.Errorf("%w %q", ErrUnknownCommand, verb)
	if len(verb) < minFuzzyLen {
		return command{}, unknown
	}

	var candidates []string
	var index []int
	for i, c := range commands {
		if !c.drives && c.name[0] == verb[0] {
			candidates = append(candidates, c.name)
			index = append(index, i)
		}
	}

	matches := fuzzy.Find(verb, candidates)
	switch {
	case len(matches) == 0:
		return command{}, unknown
	case len(matches) == 1 || matches[0].Score > matches[1].Score:
		return commands[index[matches[0].Index]], nil
	default:
		idx := make([]int, 0, len(matches))
		for _, m := range matches {
			if m.Score == matches[0].Score {
				idx = append(idx, index[m.Index])
			}
		}
		return command{}, ambiguous(verb, names, idx)
	}
}

func ambiguous(verb string, names []string, idx []int) error {
	candidates := make([]string, len(idx))
	for i, j := range idx {
		candidates[i] = names[j]
	}
	sort.Strings(candidates)
	return fmt.Errorf("%w %q: could be %v", ErrAmbiguousCommand, verb, candidates)
}
