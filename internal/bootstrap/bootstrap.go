// Package bootstrap wires configuration, logging and the icon pipeline into
// the CLI lifecycle.
package bootstrap

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"storeicons/internal/domain/eventbus"
	"storeicons/internal/domain/icon"
	platformconfig "storeicons/internal/platform/config"
	platformerrors "storeicons/internal/platform/errors"
	platformlogging "storeicons/internal/platform/logging"
)

// Options are the per-invocation parameters. Flag defaults come from the
// loaded config so the tool remembers the user's usual choices.
type Options struct {
	SourcePath string
	OutputDir  string
	Family     string
	Sharpen    bool
	JSON       bool
	Quiet      bool
}

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID      string
	Title   string
	Kind    platformerrors.Kind
	Execute stepFn
}

type appState struct {
	args   []string
	config *platformconfig.Config
	opts   *Options
	logger *platformlogging.Logger
}

// InitGraph returns the ordered initialization steps.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:    "config:load-defaults",
			Title: "load tool defaults",
			Kind:  platformerrors.KindConfig,
			Execute: func(_ context.Context, state *appState) error {
				result, err := platformconfig.NewLoader().Load()
				if err != nil {
					return err
				}
				state.config = result.Config
				return nil
			},
		},
		{
			ID:    "flags:parse",
			Title: "parse command line",
			Kind:  platformerrors.KindConfig,
			Execute: func(_ context.Context, state *appState) error {
				opts, err := parseFlags(state.args, state.config)
				if err != nil {
					return err
				}
				state.opts = opts
				return nil
			},
		},
		{
			ID:    "logging:init-provider",
			Title: "initialize logging",
			Kind:  platformerrors.KindBootstrap,
			Execute: func(_ context.Context, state *appState) error {
				level := state.config.Log.Level
				if state.opts.Quiet {
					level = "error"
				}
				logger, err := platformlogging.New(platformlogging.Config{
					Level:    level,
					Dir:      state.config.Log.Dir,
					Filename: state.config.Log.File,
				})
				if err != nil {
					return err
				}
				state.logger = logger
				return nil
			},
		},
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	for _, step := range steps {
		if err := step.Execute(ctx, state); err != nil {
			return platformerrors.Wrap(step.Kind, step.ID, step.Title+" failed", err)
		}
	}
	return nil
}

func parseFlags(args []string, cfg *platformconfig.Config) (*Options, error) {
	opts := &Options{}
	fs := flag.NewFlagSet("storeicons", flag.ContinueOnError)
	fs.StringVar(&opts.SourcePath, "src", "", "source raster image (png, jpeg, bmp, gif, tiff)")
	fs.StringVar(&opts.OutputDir, "out", cfg.Generator.DefaultOutputDir, "output directory for generated icons")
	fs.StringVar(&opts.Family, "family", cfg.Generator.DefaultFamily, "icon family: square or wide")
	fs.BoolVar(&opts.Sharpen, "sharpen", cfg.Generator.Sharpen, "sharpen small icons after downscaling")
	fs.BoolVar(&opts.JSON, "json", false, "print the run summary as JSON")
	fs.BoolVar(&opts.Quiet, "quiet", false, "only log errors")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.SourcePath == "" {
		return nil, errors.New("missing required -src flag")
	}
	if opts.OutputDir == "" {
		return nil, errors.New("missing required -out flag")
	}
	return opts, nil
}

// Run executes one generation request end to end.
func Run(ctx context.Context, args []string) error {
	state := &appState{args: args}
	if err := executeInitSteps(ctx, InitGraph(), state); err != nil {
		return err
	}
	logger := state.logger
	defer logger.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	family, err := icon.ParseFamily(state.opts.Family)
	if err != nil {
		return err
	}

	source, err := icon.LoadSource(state.opts.SourcePath)
	if err != nil {
		return err
	}
	logger.Info("loaded %s source %dx%d from %s",
		source.Format, source.Width, source.Height, state.opts.SourcePath)

	var rendererOpts []icon.RendererOption
	if state.opts.Sharpen {
		rendererOpts = append(rendererOpts, icon.WithSharpening())
	}

	progressLog := func(runID string, completed, total int, name string) {
		logger.Info("progress %d/%d: %s", completed, total, name)
	}
	if err := eventbus.Subscribe(eventbus.TopicProgress, progressLog); err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "run",
			"subscribe progress events", err)
	}
	defer eventbus.Unsubscribe(eventbus.TopicProgress, progressLog)

	runner := icon.NewRunner(icon.NewRenderer(rendererOpts...), logger)
	result, runErr := runner.Generate(ctx, icon.Request{
		Source:    source,
		Family:    family,
		OutputDir: state.opts.OutputDir,
	})

	if result != nil && state.opts.JSON {
		data, err := sonic.MarshalIndent(result, "", "  ")
		if err != nil {
			return platformerrors.Wrap(platformerrors.KindBootstrap, "run",
				"marshal run summary", err)
		}
		fmt.Println(string(data))
	}

	if runErr != nil {
		return runErr
	}
	if failed := result.Failed(); len(failed) > 0 {
		for _, outcome := range failed {
			logger.Error("failed: %s: %s", outcome.Name, outcome.Reason)
		}
		return fmt.Errorf("%d of %d icons failed", len(failed), result.Total)
	}
	return nil
}
