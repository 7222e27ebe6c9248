package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/taskstat/taskstat/internal/config"
	"github.com/taskstat/taskstat/internal/logging"
	"github.com/taskstat/taskstat/internal/specdir"
	"github.com/taskstat/taskstat/internal/taskfile"
)

// loadedSpec bundles everything a command needs after discovery and
// parsing.
type loadedSpec struct {
	Result    *taskfile.ParseResult
	TasksPath string
	Config    *config.Config
	Logger    *logging.Logger
}

// loadSpec discovers the spec folder, reads the task document, and
// parses it. Parsing itself cannot fail; only discovery and file
// reads produce errors.
func loadSpec(command string) (*loadedSpec, error) {
	cfg := config.Get()

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		var err error
		logger, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
	}
	logger = logger.WithCommand(command)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	finder := specdir.NewFinder(cwd, cfg.Specs.Dir, cfg.Specs.File).WithLogger(logger)
	folder, err := finder.Find(viper.GetString("spec"))
	if err != nil {
		return nil, err
	}

	tasksPath := finder.TasksPath(folder)
	data, err := os.ReadFile(tasksPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", tasksPath, err)
	}

	result := taskfile.Parse(string(data), folder)
	logger.WithSpec(result.SpecName).Info("parsed task document",
		"phases", len(result.Phases),
		"tasks", result.TotalTasks,
		"completed", result.CompletedTasks)

	return &loadedSpec{
		Result:    result,
		TasksPath: tasksPath,
		Config:    cfg,
		Logger:    logger,
	}, nil
}
