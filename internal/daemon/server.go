// Package daemon exposes project and device operations over MCP.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tami5/xbase/internal/config"
	"github.com/tami5/xbase/internal/device"
	"github.com/tami5/xbase/internal/project"
	"github.com/tami5/xbase/internal/runner"
	"github.com/tami5/xbase/internal/ui"
	"github.com/tami5/xbase/internal/xcode"
)

const (
	serverName    = "xbase"
	serverVersion = "1.0.0"
)

// Server is the MCP server for target runner resolution.
type Server struct {
	mcpServer  *server.MCPServer
	simctl     *device.SimCtl
	xcodebuild *xcode.XcodeBuild
	cfg        *config.Config
}

// NewServer creates a new xbase MCP server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		simctl:     device.NewSimCtl(),
		xcodebuild: xcode.NewXcodeBuild(),
		cfg:        cfg,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerDeviceTools()
	s.registerProjectTools()

	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// registerDeviceTools registers device inventory tools.
func (s *Server) registerDeviceTools() {
	// list_devices
	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List all known simulator devices with their UDID, name, state, and runtime"),
		),
		s.handleListDevices,
	)

	// list_runtimes
	s.mcpServer.AddTool(
		mcp.NewTool("list_runtimes",
			mcp.WithDescription("List all installed simulator runtimes"),
		),
		s.handleListRuntimes,
	)

	// boot_device
	s.mcpServer.AddTool(
		mcp.NewTool("boot_device",
			mcp.WithDescription("Boot a simulator by UDID or name"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Simulator UDID or name")),
		),
		s.handleBootDevice,
	)

	// shutdown_device
	s.mcpServer.AddTool(
		mcp.NewTool("shutdown_device",
			mcp.WithDescription("Shutdown a simulator"),
			mcp.WithString("device_id", mcp.Required(), mcp.Description("Simulator UDID or name")),
		),
		s.handleShutdownDevice,
	)
}

// registerProjectTools registers project and resolution tools.
func (s *Server) registerProjectTools() {
	// list_targets
	s.mcpServer.AddTool(
		mcp.NewTool("list_targets",
			mcp.WithDescription("List the targets a project declares with their platforms"),
			mcp.WithString("project_root", mcp.Description("Project root (uses configured root if not specified)")),
		),
		s.handleListTargets,
	)

	// resolve_runners
	s.mcpServer.AddTool(
		mcp.NewTool("resolve_runners",
			mcp.WithDescription("Resolve the runnable destinations for every target in a project. Multi-platform targets produce one entry per platform, named <target>_<platform>."),
			mcp.WithString("project_root", mcp.Description("Project root (uses configured root if not specified)")),
		),
		s.handleResolveRunners,
	)

	// build_target
	s.mcpServer.AddTool(
		mcp.NewTool("build_target",
			mcp.WithDescription("Build a project scheme for a resolved runner destination"),
			mcp.WithString("project_root", mcp.Description("Project root (uses configured root if not specified)")),
			mcp.WithString("scheme", mcp.Required(), mcp.Description("Build scheme name")),
			mcp.WithString("udid", mcp.Description("Destination device UDID from resolve_runners")),
			mcp.WithString("configuration", mcp.Description("Build configuration (default from config)")),
		),
		s.handleBuildTarget,
	)

	// clean_target
	s.mcpServer.AddTool(
		mcp.NewTool("clean_target",
			mcp.WithDescription("Clean the build artifacts of a project scheme"),
			mcp.WithString("project_root", mcp.Description("Project root (uses configured root if not specified)")),
			mcp.WithString("scheme", mcp.Description("Build scheme name")),
		),
		s.handleCleanTarget,
	)

	// list_schemes
	s.mcpServer.AddTool(
		mcp.NewTool("list_schemes",
			mcp.WithDescription("List available schemes in the project or workspace"),
			mcp.WithString("project_root", mcp.Description("Project root (uses configured root if not specified)")),
		),
		s.handleListSchemes,
	)

	// regenerate
	s.mcpServer.AddTool(
		mcp.NewTool("regenerate",
			mcp.WithDescription("Regenerate the xcodeproj from the project's generator manifest (xcodegen or tuist)"),
			mcp.WithString("project_root", mcp.Description("Project root (uses configured root if not specified)")),
		),
		s.handleRegenerate,
	)
}

// inventory fetches the device list, applying the configured availability
// filter.
func (s *Server) inventory(ctx context.Context) ([]device.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Devices.Timeout)*time.Second)
	defer cancel()

	devices, err := s.simctl.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	if s.cfg.Devices.AvailableOnly {
		devices = device.Available(devices)
	}
	return devices, nil
}

func (s *Server) projectRoot(req mcp.CallToolRequest) string {
	root := req.GetString("project_root", "")
	if root == "" {
		root = s.cfg.Project.Root
	}
	return root
}

// Tool handlers

func (s *Server) handleListDevices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.inventory(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := ui.FormatJSON(devices)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output), nil
}

func (s *Server) handleListRuntimes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runtimes, err := s.simctl.ListRuntimes(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := ui.FormatJSON(runtimes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output), nil
}

func (s *Server) handleBootDevice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID := req.GetString("device_id", "")
	if deviceID == "" {
		return mcp.NewToolResultError("device_id is required"), nil
	}

	if err := s.simctl.Boot(ctx, deviceID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Booted %s", deviceID)), nil
}

func (s *Server) handleShutdownDevice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID := req.GetString("device_id", "")
	if deviceID == "" {
		return mcp.NewToolResultError("device_id is required"), nil
	}

	if err := s.simctl.Shutdown(ctx, deviceID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Shut down %s", deviceID)), nil
}

func (s *Server) handleListTargets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := project.Load(s.projectRoot(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := ui.FormatJSON(p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output), nil
}

func (s *Server) handleResolveRunners(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := project.Load(s.projectRoot(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	devices, err := s.inventory(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := runner.Resolve(p, devices)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := ui.FormatJSON(entries)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output), nil
}

func (s *Server) handleBuildTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scheme := req.GetString("scheme", "")
	if scheme == "" {
		return mcp.NewToolResultError("scheme is required"), nil
	}

	configuration := req.GetString("configuration", "")
	if configuration == "" {
		configuration = s.cfg.Build.Configuration
	}

	opts := xcode.BuildOptions{
		ProjectPath:     s.projectRoot(req),
		Scheme:          scheme,
		Configuration:   configuration,
		DerivedDataPath: s.cfg.Build.DerivedDataPath,
	}
	if udid := req.GetString("udid", ""); udid != "" {
		opts.Runner = &runner.Runner{UDID: udid}
	}

	if _, err := s.xcodebuild.Build(ctx, opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Built %s (%s)", scheme, configuration)), nil
}

func (s *Server) handleCleanTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := xcode.BuildOptions{
		ProjectPath: s.projectRoot(req),
		Scheme:      req.GetString("scheme", ""),
	}

	if err := s.xcodebuild.Clean(ctx, opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Cleaned"), nil
}

func (s *Server) handleListSchemes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schemes, err := s.xcodebuild.ListSchemes(ctx, s.projectRoot(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := ui.FormatJSON(schemes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output), nil
}

func (s *Server) handleRegenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := s.projectRoot(req)

	gen := project.DetectGenerator(root)
	ran, err := gen.Regenerate(ctx, root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ran {
		return mcp.NewToolResultText("Project has no generator, nothing to do"), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Regenerated with %s", gen)), nil
}
