// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/mthnguyener/simple-agentic-workflow/config"
	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	envFile    string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "saw",
		Short: "saw - simple agentic workflows over LLM providers",
		Long: `saw orchestrates prompts across Google, Groq, Ollama, OpenAI and Anthropic models.

It sends single model calls, or runs chaining, parallelization, routing,
adaptive and symphonic workflows described in YAML files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Path to the saw config file (default: built-in provider defaults)")
	pf.StringVar(&flags.envFile, "env-file", "", "Path to a dotenv file (default: .env when present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug|info|warn|error), overrides the config file")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (json|text), overrides the config file")

	cmd.AddCommand(
		newCallCmd(flags),
		newRunCmd(flags),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the environment and the config, and returns the config with a
// command context carrying the configured logger.
func (f *globalFlags) setup(cmd *cobra.Command) (*config.Config, error) {
	var envFiles []string
	if f.envFile != "" {
		envFiles = append(envFiles, f.envFile)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = logging.Format(f.logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	cmd.SetContext(logging.NewContext(cmd.Context(), logger))
	return cfg, nil
}

// dispatcher returns the dispatcher of cfg logging through the command logger.
func dispatcher(cmd *cobra.Command, cfg *config.Config) (*model.Dispatcher, error) {
	return cfg.Dispatcher(model.WithLogger(logging.FromContext(cmd.Context())))
}
