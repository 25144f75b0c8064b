// Command xbase-mcp provides an MCP server for target runner resolution.
//
// This server provides tools for:
// - Device inventory (list devices, list runtimes, boot, shutdown)
// - Project inspection (list targets, resolve runnable destinations)
// - Build invocation against a resolved destination
//
// Usage:
//
//	./xbase-mcp          # Start MCP server (stdio)
//	./xbase-mcp --check  # Check prerequisites
//	./xbase-mcp --help   # Show help
//
// The server communicates via stdio using the MCP protocol.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/tami5/xbase/internal/config"
	"github.com/tami5/xbase/internal/daemon"
	"github.com/tami5/xbase/internal/device"
)

func main() {
	// Handle flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--check", "-c":
			checkPrerequisites()
			return
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(config.GetDefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	s := daemon.NewServer(cfg)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`xbase MCP Server - target runner resolution via MCP protocol

USAGE:
    xbase-mcp            Start MCP server (communicates via stdio)
    xbase-mcp --check    Check if prerequisites are installed
    xbase-mcp --help     Show this help

PREREQUISITES:
    1. Xcode & Command Line Tools
       xcode-select --install

    2. A project manifest (project.yml) in the configured project root

CONFIGURATION:
    ~/.xbase/config.yaml sets the project root, inventory filtering, and
    build defaults. XBASE_PROJECT_ROOT overrides the root per invocation.

TOOLS:
    Devices:  list_devices, list_runtimes, boot_device, shutdown_device
    Project:  list_targets, resolve_runners, build_target, clean_target,
              list_schemes, regenerate`)
}

func checkPrerequisites() {
	fmt.Println("Checking xbase MCP server prerequisites...")
	fmt.Println()

	allGood := true

	// Check Xcode
	fmt.Print("Xcode Command Line Tools: ")
	if _, err := exec.LookPath("xcodebuild"); err != nil {
		fmt.Println("NOT FOUND")
		fmt.Println("  -> Install: xcode-select --install")
		allGood = false
	} else {
		out, _ := exec.Command("xcodebuild", "-version").Output()
		version := strings.Split(string(out), "\n")[0]
		fmt.Println(version)
	}

	// Check simctl
	fmt.Print("Simulator (simctl): ")
	if _, err := exec.LookPath("xcrun"); err != nil {
		fmt.Println("NOT FOUND")
		allGood = false
	} else {
		fmt.Println("OK")
	}

	// Check for a booted simulator
	fmt.Print("Booted Simulator: ")
	udid, err := device.NewSimCtl().GetBooted(context.Background())
	switch {
	case err != nil:
		fmt.Printf("check failed: %v\n", err)
	case udid != "":
		fmt.Println(udid)
	default:
		fmt.Println("none (boot one with: xcrun simctl boot \"iPhone 16 Pro\")")
	}

	fmt.Println()
	if allGood {
		fmt.Println("All prerequisites satisfied.")
	} else {
		fmt.Println("Some prerequisites are missing, see above.")
		os.Exit(1)
	}
}
