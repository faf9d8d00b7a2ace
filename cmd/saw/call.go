// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mthnguyener/simple-agentic-workflow/model"
)

type callFlags struct {
	provider    string
	model       string
	system      string
	prompt      string
	temperature float64
	topP        float64
	maxTokens   int
	seed        int
}

func newCallCmd(g *globalFlags) *cobra.Command {
	f := &callFlags{}

	cmd := &cobra.Command{
		Use:   "call [prompt]",
		Short: "Send one prompt to a model and print the answer",
		Example: `  saw call --provider ollama --model llama3.2 "What's 2+2?"
  saw call --provider google --model gemini-2.0-flash --system "You are a poet." --temperature 0.9 --prompt "Write a haiku"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := f.prompt
			if len(args) == 1 {
				if text != "" {
					return errors.New("pass the prompt either as argument or with --prompt")
				}
				text = args[0]
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("empty prompt")
			}
			provider, err := model.ParseProvider(f.provider)
			if err != nil {
				return err
			}

			cfg, err := g.setup(cmd)
			if err != nil {
				return err
			}
			d, err := dispatcher(cmd, cfg)
			if err != nil {
				return err
			}

			resp, err := d.Generate(cmd.Context(), &model.Request{
				Provider:     provider,
				Model:        f.model,
				Prompt:       text,
				SystemPrompt: f.system,
				Params:       f.params(cmd),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.provider, "provider", "", "Provider name (google|groq|ollama|openai|anthropic)")
	fl.StringVar(&f.model, "model", "", "Model identifier")
	fl.StringVar(&f.system, "system", "", "System prompt (default: "+model.DefaultSystemPrompt+")")
	fl.StringVar(&f.prompt, "prompt", "", "Prompt text")
	fl.Float64Var(&f.temperature, "temperature", 0, "Sampling temperature")
	fl.Float64Var(&f.topP, "top-p", 0, "Nucleus sampling probability")
	fl.IntVar(&f.maxTokens, "max-tokens", 0, "Maximum number of generated tokens")
	fl.IntVar(&f.seed, "seed", 0, "Sampling seed")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

// params sets only the generation parameters given on the command line.
func (f *callFlags) params(cmd *cobra.Command) model.Params {
	var p model.Params
	if cmd.Flags().Changed("temperature") {
		p.Temperature = model.Float(f.temperature)
	}
	if cmd.Flags().Changed("top-p") {
		p.TopP = model.Float(f.topP)
	}
	if cmd.Flags().Changed("seed") {
		p.Seed = model.Int(f.seed)
	}
	p.MaxTokens = f.maxTokens
	return p
}
