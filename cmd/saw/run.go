// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/mthnguyener/simple-agentic-workflow/config"
	"github.com/mthnguyener/simple-agentic-workflow/workflow"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	var (
		file     string
		runAsync bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workflow file and print its result as JSON",
		Example: `  saw run -f examples/route.yaml
  saw run -f examples/parallel.yaml --async`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("missing workflow file")
			}
			wf, err := config.LoadWorkflow(file)
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

			ctx := cmd.Context()
			w := workflow.NewWorkflow(workflow.New(d, wf.EngineOptions()...), wf.Operation, nil)
			var res *workflow.Result
			if runAsync {
				res, err = w.ExecuteAsync(ctx, wf.Args).Wait(ctx)
			} else {
				res, err = w.Execute(ctx, wf.Args)
			}
			if err != nil {
				return err
			}

			out, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			out = append(out, '\n')
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Workflow YAML file")
	cmd.Flags().BoolVar(&runAsync, "async", false, "Run the workflow with the asynchronous pattern implementations")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
