package main

import (
	"fmt"
	"io"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/lowaak/hiit-timer/internal/audio"
	"github.com/lowaak/hiit-timer/internal/config"
	"github.com/lowaak/hiit-timer/internal/generator"
	"github.com/lowaak/hiit-timer/internal/logging"
	"github.com/lowaak/hiit-timer/internal/store"
	"github.com/lowaak/hiit-timer/internal/trainer"
)

var rootCmd = &cobra.Command{
	Use:           "hiit",
	Short:         "Interval workout timer for the terminal",
	Long:          "Runs interval workouts in a terminal UI. Subcommands manage the workout library without starting the UI.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return runUI(env)
	},
}

func init() {
	config.BindFlags(rootCmd.PersistentFlags())
}

// env is what every command needs: configuration, the file logger and the
// workout library
type env struct {
	cfg      *config.Config
	logger   *log.Logger
	logLines <-chan string
	store    *store.Store
	library  *store.Library
	logFile  io.Closer
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, lines, logFile, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		logger.Printf("Config loaded from %s", cfg.File)
	}

	custom, err := store.Open(cfg.DataDir, logger)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	return &env{
		cfg:      cfg,
		logger:   logger,
		logLines: lines,
		store:    custom,
		library:  store.NewLibrary(custom),
		logFile:  logFile,
	}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Printf("Failed to close workout db: %v", err)
	}
	e.logFile.Close()
}

func runUI(e *env) error {
	logger := e.logger

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	app := tview.NewApplication().SetScreen(screen)

	var player audio.Player = audio.NopPlayer{}
	if e.cfg.Audio.Enabled {
		player = audio.NewScreenBeeper(screen, logger)
	}

	model := trainer.NewUIModel(e.cfg.DataDir, e.cfg.Language, logger, e.logLines)
	workoutManager := trainer.NewWorkoutManager(model, player, e.cfg.TickInterval, logger)
	controller := trainer.NewUIController(model, workoutManager, e.library, generator.NewClient(e.cfg.Generator, logger), logger)
	view := trainer.NewBaseUIView(trainer.NewBaseUIViewArg{
		UIViewImpl:   trainer.NewCursesUIView(logger, app, model),
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})

	logger.Println("Starting hiit-timer")
	controller.Initialize()

	runErr := view.Run()

	view.Shutdown()
	controller.Shutdown()
	model.Shutdown()
	logger.Println("hiit-timer stopped")

	if runErr != nil {
		return fmt.Errorf("ui: %w", runErr)
	}
	return nil
}
