package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"go-modes/config"
	"go-modes/debug"
	"go-modes/midi"
	"go-modes/sequencer"
	"go-modes/theme"
	"go-modes/tui"
)

func main() {
	debugLog := flag.Bool("debug", false, "write debug.log next to the config")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *debugLog {
		if dir, err := config.ConfigDir(); err == nil {
			if err := debug.Enable(dir); err != nil {
				fmt.Printf("Error enabling debug log: %v\n", err)
			}
			defer debug.Disable()
		}
	}

	session, err := sequencer.NewSession(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	th := theme.New(theme.LoadOrDefault(cfg.Palette))

	// Watch for MIDI ports in the background (handles hot-plug)
	ports := midi.NewPortWatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ports.Run(ctx)

	m := tui.NewModel(session, ports, th, tui.OpenMIDI)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
