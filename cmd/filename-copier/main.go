package main

import (
	"fmt"
	"log"
	"runtime"

	"filename-copier/internal/app"
	"filename-copier/internal/audio"
	"filename-copier/internal/background"
	"filename-copier/internal/clipboard"
	"filename-copier/internal/config"
	"filename-copier/internal/events"
	"filename-copier/internal/gui"
	"filename-copier/internal/hotkey"
	"filename-copier/internal/logger"
	"filename-copier/internal/notify"
	"filename-copier/internal/picker"
	"filename-copier/internal/resolver"
	"filename-copier/internal/shutdown"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const (
	AppID      = "com.purplepc.filename-copier"
	AppVersion = "1.0.0"

	eventBufferSize = 64
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	config  *config.Config
	logger  logger.Logger

	gui      *gui.Manager
	handlers *app.Handlers
	bus      *events.Bus
	shutdown *shutdown.Manager
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	application, err := NewApplication(cfg)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run()
}

// NewApplication loads the bundled assets and wires every component. A
// missing or unreadable asset is fatal.
func NewApplication(cfg *config.Config) (*Application, error) {
	appLogger := logger.New(logger.ParseLevel(cfg.Log.Level), cfg.Log.JSON)
	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"asset_dir":  cfg.AssetDir(),
	})

	shutdownMgr := shutdown.NewManager(appLogger, shutdown.DefaultTimeout)

	scaler, err := background.Load(cfg.BackgroundPath(), appLogger)
	if err != nil {
		return nil, err
	}
	shutdownMgr.Register("background", scaler)

	clip, err := audio.LoadClip(cfg.SoundPath())
	if err != nil {
		scaler.Shutdown()
		return nil, fmt.Errorf("failed to load signature sound: %w", err)
	}
	player, err := audio.NewPlayer(clip, appLogger)
	if err != nil {
		scaler.Shutdown()
		return nil, err
	}
	shutdownMgr.Register("audio", player)

	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(gui.Title)
	window.SetPadded(false)
	window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	bus := events.NewBus(eventBufferSize)
	manager := gui.NewManager(scaler, appLogger)

	monitor := hotkey.NewMonitor(appLogger)

	deps := app.Dependencies{
		View:      manager,
		Events:    bus,
		Monitor:   monitor,
		Resolver:  resolver.New(appLogger),
		Clipboard: clipboard.NewWriter(appLogger),
		Chooser:   picker.NewFolderPicker("Choose Folder"),
		Capturer:  gui.NewKeyCapture(window, appLogger),
		Player:    player,
		Dispatch:  fyne.Do,
		Logger:    appLogger,
	}
	if cfg.Settle.Enabled {
		deps.Settler = resolver.NewSettler(cfg.SettleQuietDuration(), cfg.SettleTimeoutDuration(), appLogger)
	}
	if cfg.Notify {
		deps.Notifier = notify.New(gui.Title, "")
	}

	handlers := app.NewHandlers(shutdownMgr.Context(), app.NewState(), deps, app.Options{
		Debounce:       cfg.DebounceDuration(),
		CaptureTimeout: cfg.CaptureTimeoutDuration(),
	})

	manager.Subscribe(bus, handlers.Current)
	manager.SetToggleHandler(handlers.HandleToggle)
	manager.SetChooseFolderHandler(handlers.HandleChooseFolder)
	manager.SetKeybindHandler(handlers.HandleSetKeybind)
	manager.SetSignatureHandler(handlers.HandleSignature)

	window.SetContent(manager.Content())

	// Registered last so they stop first: no trigger may run against a
	// closed bus or player.
	shutdownMgr.Register("hotkey", monitor)
	shutdownMgr.Register("handlers", shutdown.Func(handlers.Shutdown))
	shutdownMgr.Register("events", bus)

	application := &Application{
		fyneApp:  fyneApp,
		window:   window,
		config:   cfg,
		logger:   appLogger,
		gui:      manager,
		handlers: handlers,
		bus:      bus,
		shutdown: shutdownMgr,
	}
	application.setupWindowEvents()

	appLogger.Info("Application", "initialized", map[string]interface{}{
		"debounce":        cfg.DebounceDuration().String(),
		"capture_timeout": cfg.CaptureTimeoutDuration().String(),
		"settle":          cfg.Settle.Enabled,
		"notify":          cfg.Notify,
	})

	return application, nil
}

// Run blocks until the window is closed or the process is signalled.
func (a *Application) Run() {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.window.ShowAndRun()
	a.shutdown.Shutdown()
	a.logger.Info("Application", "terminated", nil)
}

func (a *Application) setupWindowEvents() {
	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
	})
}
