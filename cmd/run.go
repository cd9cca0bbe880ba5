package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/clozeit/internal/analysis"
	"github.com/abhisek/clozeit/internal/app"
	"github.com/abhisek/clozeit/internal/config"
	"github.com/abhisek/clozeit/internal/llm"
	"github.com/abhisek/clozeit/internal/logging"
	"github.com/abhisek/clozeit/internal/passage"
	"github.com/abhisek/clozeit/internal/screens/setup"
	"github.com/abhisek/clozeit/internal/store"
)

// deps holds everything the commands share. Generator and Analyzer stay nil
// when no LLM provider is configured.
type deps struct {
	cfg       *config.Config
	logger    *logrus.Logger
	store     *store.Store
	generator passage.Generator
	analyzer  analysis.Analyzer

	closers []io.Closer
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i].Close()
	}
}

// loadDeps reads configuration, sets up logging to logOut (the configured log
// file wins), opens the store and builds the AI collaborators.
func loadDeps(cmd *cobra.Command, logOut io.Writer) (*deps, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	d := &deps{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo(), logger)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Warn("no LLM provider configured, AI features disabled")
	case err != nil:
		d.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	default:
		logger.WithField("model", provider.ModelID()).Info("LLM provider ready")
		d.generator = passage.New(provider, passage.DefaultConfig())
		d.analyzer = analysis.New(provider, analysis.DefaultConfig())
	}
	return d, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// The TUI owns the terminal, so logs only go to the configured file.
	d, err := loadDeps(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer d.Close()

	if d.generator == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; set ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY.")
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	}

	return app.Run(app.Options{
		Generator: d.generator,
		Analyzer:  d.analyzer,
		Defaults:  exerciseDefaults(d.cfg.Exercise),
	})
}

func exerciseDefaults(c config.ExerciseConfig) setup.Defaults {
	// Validate has already checked these.
	topic, _ := passage.ParseTopic(c.Topic)
	difficulty, _ := passage.ParseDifficulty(c.Difficulty)
	return setup.Defaults{
		Topic:      topic,
		Difficulty: difficulty,
		Exercise:   c.Options(),
	}
}
