// Package main provides the grapnel application: project-scoped file
// bookmarks for the terminal. Pin a file and selection to a numbered
// slot, jump back to it later, and keep independent slot tables per
// project.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	appconfig "github.com/entrhq/grapnel/pkg/config"
	"github.com/entrhq/grapnel/pkg/executor/tui"
	"github.com/entrhq/grapnel/pkg/logging"
)

const version = "0.1.0"

// cliConfig holds the parsed command line options.
type cliConfig struct {
	ConfigPath  string
	StorePath   string
	Workspace   string
	ShowVersion bool
	InitialFile string
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("grapnel v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatalf("grapnel: %v", err)
	}
}

func parseFlags() *cliConfig {
	cfg := &cliConfig{}

	flag.StringVar(&cfg.ConfigPath, "config", "", "Config file (default: ~/.grapnel/config.yaml)")
	flag.StringVar(&cfg.StorePath, "store", "", "Marks file (default: ~/.grapnel/marks.json)")
	flag.StringVar(&cfg.Workspace, "workspace", "", "Project root (default: current directory)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "grapnel - project-scoped file bookmarks\n\n")
		fmt.Fprintf(os.Stderr, "Usage: grapnel [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands inside the TUI (press :):\n")
		fmt.Fprintf(os.Stderr, "  set <n>      mark the current file and selection at slot n\n")
		fmt.Fprintf(os.Stderr, "  get <n>      jump to the mark at slot n\n")
		fmt.Fprintf(os.Stderr, "  update       refresh the selection for the current file\n")
		fmt.Fprintf(os.Stderr, "  remove <n>   evict slot n\n")
		fmt.Fprintf(os.Stderr, "  list         show the project's marks\n")
	}

	flag.Parse()
	cfg.InitialFile = flag.Arg(0)
	return cfg
}

func run(ctx context.Context, cli *cliConfig) error {
	logger, err := logging.NewLogger("main")
	if err != nil {
		// The fallback logger already reported the problem; keep going.
		fmt.Fprintln(os.Stderr, "continuing with stderr logging")
	}
	defer logger.Close()

	configPath := cli.ConfigPath
	if configPath == "" {
		configPath, err = appconfig.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return err
	}

	storePath := cli.StorePath
	if storePath == "" {
		storePath, err = cfg.ResolveStorePath()
		if err != nil {
			return err
		}
	}

	workspace := cli.Workspace
	if workspace == "" {
		workspace, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	logger.Infof("starting grapnel v%s in %s (store: %s)", version, workspace, storePath)

	return tui.Run(ctx, tui.Options{
		WorkspaceDir: workspace,
		StorePath:    storePath,
		Config:       cfg,
		InitialFile:  cli.InitialFile,
		Logger:       logger,
	})
}
