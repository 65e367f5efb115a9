package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/keep-moving/internal/config"
	"github.com/stigoleg/keep-moving/internal/keepalive"
	"github.com/stigoleg/keep-moving/internal/platform"
	"github.com/stigoleg/keep-moving/internal/ui"
)

const appVersion = "0.1.0"

func main() {
	cfg, err := config.ParseFlags(appVersion)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, config.FormatError(err))
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Printf("keepmoving version %s\n", appVersion)
		return
	}

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	cleanup := keepalive.NewCleanupManager(0)
	defer func() {
		for _, err := range cleanup.Execute() {
			log.Printf("cleanup: %v", err)
		}
	}()

	if !cfg.Headless {
		f, err := tea.LogToFile(cfg.LogFile, "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
			return 1
		}
		cleanup.RegisterFunc("log file", f.Close)
	}

	capability := platform.CheckActivitySimulationCapability()
	if !capability.CanSimulate {
		log.Printf("platform: %s", capability.ErrorMessage)
		if cfg.Headless {
			fmt.Fprintf(os.Stderr, "%s\n%s\n", capability.ErrorMessage, capability.Instructions)
		}
	}

	expired := make(chan struct{})
	var expireOnce sync.Once
	opts := keepalive.Options{
		Seed:     cfg.Seed,
		OnExpire: func() { expireOnce.Do(func() { close(expired) }) },
	}
	if cfg.Hotkeys {
		hk := platform.DefaultHotkeys()
		opts.Hotkeys = &hk
	}

	keeper := keepalive.New(opts)
	cleanup.RegisterKeeper(keeper)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getSignalsForPlatform()...)
	defer signal.Stop(sigChan)

	if cfg.Headless {
		return runHeadless(cfg, keeper, sigChan, expired)
	}
	return runTUI(cfg, keeper, sigChan)
}

func runHeadless(cfg *config.Config, keeper *keepalive.Keeper, sigChan <-chan os.Signal, expired <-chan struct{}) int {
	var err error
	if cfg.Duration > 0 {
		err = keeper.StartTimed(cfg.Duration)
	} else {
		err = keeper.StartIndefinite()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start: %v\n", err)
		return 1
	}

	if cfg.Duration > 0 {
		fmt.Printf("Moving the cursor until %s\n", time.Now().Add(cfg.Duration).Format("15:04:05"))
	} else {
		fmt.Println("Moving the cursor until interrupted")
	}

	for {
		select {
		case sig := <-sigChan:
			if isSIGTSTPForPlatform(sig) {
				keeper.TogglePause()
				continue
			}
			log.Printf("main: received signal %v", sig)
			return 0
		case <-keeper.Done():
			log.Printf("main: quit requested")
			return 0
		case <-expired:
			return 0
		}
	}
}

func runTUI(cfg *config.Config, keeper *keepalive.Keeper, sigChan <-chan os.Signal) int {
	var model ui.Model
	if cfg.Duration > 0 {
		model = ui.InitialModelWithDuration(keeper, cfg.Duration)
	} else {
		model = ui.NewModel(keeper)
	}
	model.SetVersion(appVersion)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	go func() {
		for {
			select {
			case sig := <-sigChan:
				if isSIGTSTPForPlatform(sig) {
					keeper.TogglePause()
					continue
				}
				log.Printf("main: received signal %v", sig)
				p.Quit()
				return
			case <-keeper.Done():
				p.Quit()
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("main: error running program: %v", err)
		return 1
	}
	return 0
}
