package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
)

func (r *REPL) readInput() (string, error) {
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func parseCommand(input string) (string, string) {
	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return command, args
}

// newCompleter builds the tab-completion tree: commands at the top level,
// target names under runners.
func newCompleter(targets []string) *readline.PrefixCompleter {
	targetItems := make([]readline.PrefixCompleterInterface, 0, len(targets))
	for _, t := range targets {
		targetItems = append(targetItems, readline.PcItem(t))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("devices"),
		readline.PcItem("targets"),
		readline.PcItem("runners", targetItems...),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}

func setupReadline(completer readline.AutoCompleter) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              "xbase> ",
		HistoryFile:         "",
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	return rl, err
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}
