package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/printer"
	"github.com/goliatone/go-formprinter/pkg/prompt"
)

func promptCmd(a *app) *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in a configuration tree on the terminal",
		Long: `Ask for every input field of a configuration tree and print the answers
as a state file that "render --values" accepts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("--config is required")
			}
			tree, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}

			answers, err := prompt.Collect(cmd.Context(), tree, prompt.NewSurveyDriver(cmd.ErrOrStderr()),
				prompt.WithLabeler(a.labels),
				prompt.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(printer.State{Values: answers})
			if err != nil {
				return fmt.Errorf("encode answers: %w", err)
			}
			return writeOutput(a.out, output, data)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration tree (YAML or JSON)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "State file to write (stdout if empty)")
	return cmd
}
