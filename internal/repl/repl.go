// Package repl provides an interactive console over the device inventory and
// runner resolution.
package repl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tami5/xbase/internal/config"
	"github.com/tami5/xbase/internal/device"
	"github.com/tami5/xbase/internal/project"
	"github.com/tami5/xbase/internal/runner"
	"github.com/tami5/xbase/internal/ui"
)

type REPL struct {
	cfg       *config.Config
	simctl    *device.SimCtl
	rl        *readline.Instance
	formatter *ui.Formatter
}

func New(cfg *config.Config) (*REPL, error) {
	// Completion over target names is best-effort: a broken manifest still
	// gets a console, with command completion only.
	var targets []string
	if p, err := project.Load(cfg.Project.Root); err == nil {
		for name := range p.Targets {
			targets = append(targets, name)
		}
		sort.Strings(targets)
	}

	rl, err := setupReadline(newCompleter(targets))
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	return &REPL{
		cfg:       cfg,
		simctl:    device.NewSimCtl(),
		rl:        rl,
		formatter: ui.NewFormatter(cfg.UI.ColoredOutput),
	}, nil
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	fmt.Println("xbase console. Type 'help' for commands.")

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		command, args := parseCommand(input)
		if command == "quit" || command == "exit" {
			return nil
		}

		if err := r.handleCommand(ctx, command, args); err != nil {
			fmt.Println(r.formatter.FormatError(err))
		}
	}
}

func (r *REPL) handleCommand(ctx context.Context, command, args string) error {
	switch command {
	case "help":
		fmt.Print(helpText)
		return nil
	case "devices":
		devices, err := r.inventory(ctx)
		if err != nil {
			return err
		}
		fmt.Println(r.formatter.FormatHeader("Devices"))
		fmt.Print(r.formatter.FormatDevices(devices))
		return nil
	case "targets":
		p, err := project.Load(r.cfg.Project.Root)
		if err != nil {
			return err
		}
		for name, target := range p.Targets {
			fmt.Printf("%s  [%s]\n", name, strings.Join(target.Platforms, ", "))
		}
		return nil
	case "runners":
		return r.runners(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", command)
	}
}

// runners resolves the whole project, or a single target when named.
func (r *REPL) runners(ctx context.Context, target string) error {
	p, err := project.Load(r.cfg.Project.Root)
	if err != nil {
		return err
	}

	if target != "" {
		t, ok := p.Targets[target]
		if !ok {
			return fmt.Errorf("no such target: %s", target)
		}
		p = &project.Project{
			Name:    p.Name,
			Root:    p.Root,
			Targets: map[string]project.Target{target: t},
		}
	}

	devices, err := r.inventory(ctx)
	if err != nil {
		return err
	}

	entries, err := runner.Resolve(p, devices)
	if err != nil {
		return err
	}

	fmt.Print(r.formatter.FormatEntries(entries))
	return nil
}

func (r *REPL) inventory(ctx context.Context) ([]device.Device, error) {
	devices, err := r.simctl.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	if r.cfg.Devices.AvailableOnly {
		devices = device.Available(devices)
	}
	return devices, nil
}

const helpText = `Commands:
  devices           list the device inventory
  targets           list project targets and their platforms
  runners [target]  resolve runnable destinations
  help              show this help
  quit              exit
`
