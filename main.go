package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/cli"
	"quill/internal/config"
	"quill/internal/logs"
	"quill/internal/notes/fs"
	"quill/internal/notes/service"
	"quill/internal/tui"
)

func main() {
	// Parse CLI flags
	dirFlag := flag.String("dir", "", "Notes directory")
	flag.StringVar(dirFlag, "d", "", "Notes directory (shorthand)")
	formatFlag := flag.String("format", "", "Save format: json or txt")
	flag.StringVar(formatFlag, "f", "", "Save format (shorthand)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(config.CLIFlags{
		NotesDir: *dirFlag,
		Format:   *formatFlag,
	})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	catalog := fs.NewCatalog(cfg.NotesDir, cfg.FallbackDir)
	svc, err := service.NewService(catalog, cfg.Format)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	// Check for CLI subcommands
	if args := flag.Args(); len(args) > 0 {
		exitCode := cli.Run(args, svc)
		logs.Close()
		os.Exit(exitCode)
	}

	// TUI mode
	logs.Logger.Printf("Starting app in TUI mode (dir=%s, format=%s)", cfg.NotesDir, cfg.Format)
	p := tea.NewProgram(tui.NewAppModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		logs.Close()
		os.Exit(1)
	}
}
