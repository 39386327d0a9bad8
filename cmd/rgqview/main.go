package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rgqview/internal/config"
	"rgqview/internal/domain"
	"rgqview/internal/eventbus"
	"rgqview/internal/loader"
	"rgqview/internal/logging"
	"rgqview/internal/logic"
	"rgqview/internal/results"
	"rgqview/internal/ui"
	"rgqview/internal/ui/services/sections"
	"rgqview/internal/ui/views"
)

type options struct {
	resultsPath string
	configPath  string
	print       bool
	debug       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.resultsPath, "file", "", "Results file to view")
	flag.StringVar(&opts.resultsPath, "f", "", "Results file to view (shorthand)")
	flag.StringVar(&opts.configPath, "config", "", "Config file (default: user config dir)")
	flag.StringVar(&opts.configPath, "c", "", "Config file (shorthand)")
	flag.BoolVar(&opts.print, "print", false, "Print every section expanded and exit")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	// If no file specified, check for remaining args
	if opts.resultsPath == "" && flag.NArg() > 0 {
		opts.resultsPath = flag.Arg(0)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Read before logging and the bus exist; log settings come from here
	configSvc := config.NewConfigService(opts.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if opts.resultsPath == "" {
		opts.resultsPath = cfg.ResultsFile
	}
	if opts.resultsPath == "" {
		return errors.New("no results file given (use -f or set results_file in " + configSvc.Path() + ")")
	}

	logger, logCloser, err := logging.InitLogger("rgqview", cfg.Log.Path, opts.debug || cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logger = logging.Discard()
	} else {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	provider := results.NewFileProvider(opts.resultsPath)
	session, err := provider.Session(ctx)
	if err != nil {
		return err
	}
	names, err := provider.SectionNames(ctx)
	if err != nil {
		return err
	}

	store := logic.NewMemorySectionStore()
	for _, name := range names {
		store.AddSection(&domain.Section{Name: name})
	}
	svc := sections.NewService(store, logger)
	logger.Info("results loaded", "file", opts.resultsPath, "session", session.Name, "sections", len(names))

	loaderOpts := loader.Options{
		Concurrency: cfg.Loader.Concurrency,
		Timeout:     time.Duration(cfg.Loader.Timeout),
	}

	if opts.print {
		ld := loader.New(ctx, provider, nil, loaderOpts, logger)
		return printAll(ctx, os.Stdout, svc, store, ld, cfg)
	}

	bus := eventbus.New(logger)
	defer bus.Close()

	ld := loader.New(ctx, provider, bus, loaderOpts, logger)
	defer ld.Stop()

	// Every revealed section is handed to the loader in the background
	svc.OnLoadSection(func(name string) {
		ld.Request(name)
	})

	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		logger.Info("config saved", "path", e.(eventbus.ConfigSavedEvent).Path)
	})

	uiModel := ui.NewModel(store, svc, cfg, session, logger)
	rememberPath := opts.resultsPath
	if abs, err := filepath.Abs(rememberPath); err == nil {
		rememberPath = abs
	}
	uiModel.SetConfigService(config.NewConfigServiceWithBus(bus, configSvc.Path()), rememberPath)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventSectionLoaded, forward)
	bus.Subscribe(eventbus.EventSectionLoadFailed, forward)
	bus.Subscribe(eventbus.EventError, forward)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		logger.Error("error running program", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}

// printAll expands every section, loads them all and writes them to w
func printAll(ctx context.Context, w io.Writer, svc *sections.Service, store logic.SectionStore, ld *loader.Loader, cfg *config.Config) error {
	var names []string
	unsubscribe := svc.OnLoadSection(func(name string) {
		names = append(names, name)
	})
	svc.ExpandAllSections()
	unsubscribe()

	contents, err := ld.LoadAll(ctx, names)
	if err != nil {
		return err
	}

	renderer := views.NewRenderer(cfg.UISettings.ShowQuestionNumbers)
	for i, name := range names {
		section := store.GetSection(name)
		if section == nil {
			continue
		}
		section.Content = contents[i]
		if _, err := io.WriteString(w, renderer.RenderPlain(section)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
