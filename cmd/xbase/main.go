// Command xbase resolves which simulator and device destinations can run
// each target of an Xcode project.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tami5/xbase/internal/config"
	"github.com/tami5/xbase/internal/device"
	"github.com/tami5/xbase/internal/project"
	"github.com/tami5/xbase/internal/repl"
	"github.com/tami5/xbase/internal/runner"
	"github.com/tami5/xbase/internal/ui"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	projectRoot := flag.String("project", "", "Project root (overrides config)")
	format := flag.String("format", "", "Output format: table, json, markdown (overrides config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	listDevices := flag.Bool("devices", false, "List the device inventory and exit")
	pick := flag.String("pick", "", "Pick a runner for the named entry interactively and print its UDID")
	replMode := flag.Bool("repl", false, "Start the interactive console")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *projectRoot != "" {
		cfg.Project.Root = *projectRoot
	}
	if *format != "" {
		cfg.UI.Format = *format
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *replMode {
		console, err := repl.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := console.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	formatter := ui.NewFormatter(cfg.UI.ColoredOutput)

	devices, err := inventory(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	if *listDevices {
		printDevices(cfg, formatter, devices)
		return
	}

	p, err := project.Load(cfg.Project.Root)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	entries, err := runner.Resolve(p, devices)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	if *pick != "" {
		if err := pickRunner(entries, *pick, cfg.UI.ColoredOutput); err != nil {
			fmt.Fprintln(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
		return
	}

	printEntries(cfg, formatter, p, entries)
}

func inventory(ctx context.Context, cfg *config.Config) ([]device.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Devices.Timeout)*time.Second)
	defer cancel()

	devices, err := device.NewSimCtl().ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Devices.AvailableOnly {
		devices = device.Available(devices)
	}
	return devices, nil
}

func printDevices(cfg *config.Config, formatter *ui.Formatter, devices []device.Device) {
	if cfg.UI.Format == config.FormatJSON {
		out, err := ui.FormatJSON(devices)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}
	fmt.Print(formatter.FormatDevices(devices))
}

func printEntries(cfg *config.Config, formatter *ui.Formatter, p *project.Project, entries []runner.TargetRunnerEntry) {
	switch cfg.UI.Format {
	case config.FormatJSON:
		out, err := ui.FormatJSON(entries)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
		fmt.Println(out)
	case config.FormatMarkdown:
		fmt.Print(ui.RenderMarkdown(ui.EntriesMarkdown(p.Name, entries)))
	default:
		fmt.Println(formatter.FormatHeader(p.Name))
		fmt.Println()
		fmt.Print(formatter.FormatEntries(entries))
	}
}

// pickRunner runs the interactive selector over the named entry's runners and
// prints the chosen UDID, for piping into xcodebuild -destination.
func pickRunner(entries []runner.TargetRunnerEntry, name string, colored bool) error {
	var entry *runner.TargetRunnerEntry
	for i := range entries {
		if entries[i].Name == name {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return fmt.Errorf("no such entry: %s", name)
	}
	if len(entry.Runners) == 0 {
		return fmt.Errorf("entry %s has no compatible device", name)
	}

	options := make([]ui.SelectorOption, 0, len(entry.Runners))
	for _, r := range entry.Runners {
		options = append(options, ui.SelectorOption{Label: r.Name, Description: r.UDID})
	}

	idx, err := ui.NewSelector(fmt.Sprintf("Pick a runner for %s:", name), options, colored).Run()
	if err != nil {
		return err
	}

	fmt.Println(entry.Runners[idx].UDID)
	return nil
}
