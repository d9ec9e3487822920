package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	serveradapter "github.com/hylla/orgbridge/internal/adapters/server"
	servercommon "github.com/hylla/orgbridge/internal/adapters/server/common"
	"github.com/hylla/orgbridge/internal/app"
	"github.com/hylla/orgbridge/internal/azdo"
	"github.com/hylla/orgbridge/internal/config"
	"github.com/hylla/orgbridge/internal/platform"
)

// version stores a package-level helper value.
var version = "dev"

// serveCommandRunner starts the HTTP serve flow.
var serveCommandRunner = func(ctx context.Context, cfg serveradapter.Config, directory servercommon.OrgDirectory) error {
	return serveradapter.Run(ctx, cfg, directory)
}

// stdioCommandRunner starts the stdio serve flow.
var stdioCommandRunner = func(ctx context.Context, cfg serveradapter.Config, directory servercommon.OrgDirectory, stdin io.Reader, stdout io.Writer) error {
	return serveradapter.RunStdio(ctx, cfg, directory, stdin, stdout)
}

// main handles main.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	// A local .env is optional and only fills variables not already set.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("orgbridge", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		orgURL     string
		appName    string
		devMode    bool
		showVer    bool
	)
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("ORGBRIDGE_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("ORGBRIDGE_APP_NAME")); envApp != "" {
		appName = envApp
	} else {
		appName = "orgbridge"
	}
	fs.StringVar(&configPath, "config", "", "path to config TOML")
	fs.StringVar(&orgURL, "org", "", "Azure DevOps organization URL or name")
	fs.StringVar(&appName, "app", appName, "application name for config/data path resolution")
	fs.BoolVar(&devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")
	fs.BoolVar(&showVer, "version", false, "show version")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVer {
		_, _ = fmt.Fprintf(stdout, "orgbridge %s\n", version)
		return nil
	}

	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: appName,
		DevMode: devMode,
	})
	if err != nil {
		return err
	}

	command := firstArg(fs.Args())
	switch command {
	case "paths":
		_, _ = fmt.Fprintf(stdout, "app: %s\n", appName)
		_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", devMode)
		_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
		_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
		_, _ = fmt.Fprintf(stdout, "log_dir: %s\n", paths.LogDir)
		return nil
	case "", "serve":
		// Continue.
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("ORGBRIDGE_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
			if err := config.EnsureConfigDir(configPath); err != nil {
				return fmt.Errorf("ensure config dir: %w", err)
			}
		}
	}

	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}
	if orgURL == "" {
		orgURL = strings.TrimSpace(os.Getenv("AZDO_ORG_URL"))
	}
	if orgURL != "" {
		cfg.Organization.URL = orgURL
	}
	if cfg.OrganizationURL() == "" {
		return fmt.Errorf("organization url is required (set -org, AZDO_ORG_URL, or organization.url in %s)", configPath)
	}

	pat := strings.TrimSpace(os.Getenv(cfg.Organization.PATEnv))
	if pat == "" {
		return fmt.Errorf("personal access token is required: set the %s environment variable", cfg.Organization.PATEnv)
	}

	logger, err := newRuntimeLogger(stderr, appName, devMode, cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	if command == "" {
		// Keep the stdio protocol stream clean: runtime logs stay in the
		// dev-file sink while a stdio session is active.
		logger.SetConsoleEnabled(false)
	}
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.shouldLogToSink(logger.consoleSink) {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", appName, "dev_mode", devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir)
	logger.Info("configuration loaded", "config_path", configPath, "organization_url", cfg.OrganizationURL(), "pat_env", cfg.Organization.PATEnv, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	provider := azdo.NewProvider(cfg.OrganizationURL(), pat)
	directory := azdo.NewDirectory(provider)
	svc := app.NewService(directory, directory)
	adapter, err := servercommon.NewOrgServiceAdapter(svc)
	if err != nil {
		return fmt.Errorf("build service adapter: %w", err)
	}
	logger.Debug("application service initialized", "organization_url", cfg.OrganizationURL())

	switch command {
	case "":
		logger.Info("command flow start", "command", "stdio")
		if err := stdioCommandRunner(ctx, serveradapter.Config{
			MCPEndpoint:   cfg.Server.MCPEndpoint,
			ServerName:    appName,
			ServerVersion: version,
		}, adapter, stdin, stdout); err != nil {
			logger.Error("command flow failed", "command", "stdio", "err", err)
			return fmt.Errorf("run stdio session: %w", err)
		}
		logger.Info("command flow complete", "command", "stdio")
		return nil
	case "serve":
		logger.Info("command flow start", "command", "serve")
		if err := runServe(ctx, adapter, fs.Args()[1:], appName, cfg); err != nil {
			logger.Error("command flow failed", "command", "serve", "err", err)
			return fmt.Errorf("run serve command: %w", err)
		}
		logger.Info("command flow complete", "command", "serve")
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runServe runs the serve subcommand flow.
func runServe(ctx context.Context, directory servercommon.OrgDirectory, args []string, appName string, cfg config.Config) error {
	fs := flag.NewFlagSet("orgbridge serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		httpBind    string
		mcpEndpoint string
	)
	fs.StringVar(&httpBind, "http", cfg.Server.HTTPBind, "HTTP listen address")
	fs.StringVar(&mcpEndpoint, "mcp-endpoint", cfg.Server.MCPEndpoint, "MCP streamable HTTP endpoint")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse serve flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected serve arguments: %v", fs.Args())
	}

	return serveCommandRunner(ctx, serveradapter.Config{
		HTTPBind:      httpBind,
		MCPEndpoint:   mcpEndpoint,
		ServerName:    appName,
		ServerVersion: version,
	}, directory)
}

// firstArg handles first arg.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// runtimeLogger fans log events to a styled console sink and an optional dev-file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	devLog         string
}

// newRuntimeLogger configures runtime log sinks from CLI/config state.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig, now func() time.Time) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	if now == nil {
		now = time.Now
	}
	if stderr == nil {
		stderr = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})

	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
	}
	if !devMode || !cfg.DevFile.Enabled {
		return logger, nil
	}

	devLogPath, err := devLogFilePath(cfg.DevFile.Dir, appName, now().UTC())
	if err != nil {
		return nil, fmt.Errorf("resolve dev log file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(devLogPath), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	logFile, err := os.OpenFile(devLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}

	// Keep file output parseable and unstyled while preserving styled console logs.
	fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	logger.sinks = append(logger.sinks, fileLogger)
	logger.closeFile = logFile.Close
	logger.devLog = devLogPath
	return logger, nil
}

// DevLogPath returns the active dev log file path.
func (l *runtimeLogger) DevLogPath() string {
	if l == nil {
		return ""
	}
	return l.devLog
}

// Close closes the optional dev-file sink.
func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled toggles whether the console sink receives runtime events.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

// shouldLogToSink reports whether one sink should receive runtime output.
func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil {
		return false
	}
	if sink == nil {
		return false
	}
	if sink == l.consoleSink && !l.consoleEnabled {
		return false
	}
	return true
}

// Debug logs a debug event to all configured sinks.
func (l *runtimeLogger) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Debug(msg, keyvals...)
	}
}

// Info logs an informational event to all configured sinks.
func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Info(msg, keyvals...)
	}
}

// Warn logs a warning event to all configured sinks.
func (l *runtimeLogger) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Warn(msg, keyvals...)
	}
}

// Error logs an error event to all configured sinks.
func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Error(msg, keyvals...)
	}
}

// devLogFilePath resolves a workspace-local dev log file path for the current run day.
func devLogFilePath(configDir, appName string, now time.Time) (string, error) {
	baseDir := strings.TrimSpace(configDir)
	if baseDir == "" {
		baseDir = ".orgbridge/log"
	}
	if !filepath.IsAbs(baseDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working dir: %w", err)
		}
		baseDir = filepath.Join(workspaceRootFrom(cwd), baseDir)
	}
	fileStem := sanitizeLogFileStem(appName)
	fileName := fmt.Sprintf("%s-%s.log", fileStem, now.Format("20060102"))
	return filepath.Join(filepath.Clean(baseDir), fileName), nil
}

// workspaceRootFrom resolves the nearest ancestor workspace marker for stable local log placement.
func workspaceRootFrom(start string) string {
	start = filepath.Clean(strings.TrimSpace(start))
	if start == "" {
		return "."
	}
	dir := start
	for {
		if hasWorkspaceMarker(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// hasWorkspaceMarker reports whether a directory looks like a project workspace root.
func hasWorkspaceMarker(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return true
	}
	return false
}

// sanitizeLogFileStem normalizes app names into safe file-name segments.
func sanitizeLogFileStem(appName string) string {
	stem := strings.TrimSpace(appName)
	if stem == "" {
		return "orgbridge"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "-")
	stem = strings.Trim(replacer.Replace(stem), "-")
	if stem == "" {
		return "orgbridge"
	}
	return stem
}
