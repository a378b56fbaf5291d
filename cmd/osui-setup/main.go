package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"osuisetup/internal/backup"
	"osuisetup/internal/config"
	"osuisetup/internal/editor"
	"osuisetup/internal/logger"
	"osuisetup/internal/patcher"
	"osuisetup/internal/report"
	"osuisetup/internal/version"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Parse command line flags
	flags := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to config file")
	file := flags.String("file", "", "Daemon config file to patch (default "+config.DefaultConfigPath+")")
	address := flags.String("address", "", "Address to install (default "+config.DefaultTargetAddress+")")
	mode := flags.String("editor", "", "JSON editor: auto, native, jq or lexical")
	listBackups := flags.Bool("list-backups", false, "List backups of the daemon config and exit")
	restore := flags.String("restore", "", "Restore the daemon config from this backup and exit")
	noColor := flags.Bool("no-color", false, "Disable colored output")
	debug := flags.Bool("debug", false, "Enable debug logging")
	showVersion := flags.Bool("version", false, "Show version information")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *listBackups && *restore != "" {
		_, _ = fmt.Fprintln(stderr, "-list-backups and -restore cannot be used together")
		flags.Usage()
		return 2
	}

	// Show version if requested
	if *showVersion {
		_, _ = fmt.Fprintln(stdout, version.GetInfo().String())
		return 0
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Flags override file and environment values
	if *file != "" {
		cfg.Patch.ConfigPath = *file
	}
	if *address != "" {
		cfg.Patch.TargetAddress = *address
	}
	if *mode != "" {
		cfg.Patch.Editor = *mode
	}
	if *noColor {
		cfg.Report.Color = false
	}
	if *debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Invalid options: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := logger.New(&cfg.Log, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)
	log = log.Named("setup").With(zap.String("run_id", uuid.New().String()))
	log.Debug("Starting", zap.String("version", version.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printer := report.NewPrinter(stdout, stderr, report.Options{
		Color:      cfg.Report.Color,
		Service:    cfg.Report.Service,
		TUICommand: cfg.Report.TUICommand,
	})

	switch {
	case *listBackups:
		backups, err := backup.List(cfg.Patch.ConfigPath)
		if err != nil {
			log.Error("Failed to list backups", zap.Error(err))
			printer.Failure(err)
			return 1
		}
		printer.Backups(cfg.Patch.ConfigPath, backups)
		return 0

	case *restore != "":
		safety, err := backup.Restore(ctx, *restore, cfg.Patch.ConfigPath, backup.SystemClock{})
		if err != nil {
			log.Error("Restore failed",
				zap.String("backup", *restore),
				zap.String("path", cfg.Patch.ConfigPath),
				zap.Error(err))
			printer.Failure(err)
			return 1
		}
		log.Info("Config restored",
			zap.String("backup", *restore),
			zap.String("saved", safety))
		printer.Restored(cfg.Patch.ConfigPath, *restore, safety)
		return 0
	}

	ed, err := editor.Select(cfg.Patch.Editor, exec.LookPath, log)
	if err != nil {
		log.Error("Failed to select editor", zap.Error(err))
		printer.Failure(err)
		return 1
	}

	res, err := patcher.New(cfg.Patch, ed, backup.SystemClock{}, log).Run(ctx)
	if err != nil {
		log.Error("Patch failed", zap.Error(err))
		printer.Failure(err)
		return 1
	}

	printer.Success(res)
	return 0
}
