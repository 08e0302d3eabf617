package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/orchestrator"
	"github.com/goliatone/go-formprinter/pkg/printer"
)

// pageFlags are shared by the commands that can emit a full document.
type pageFlags struct {
	page      bool
	title     string
	themePath string
	variant   string
	output    string
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.page, "page", false, "Wrap the form in a full HTML page")
	cmd.Flags().StringVar(&f.title, "title", "", "Page title")
	cmd.Flags().StringVar(&f.themePath, "theme", "", "go-theme manifest (YAML) for the page")
	cmd.Flags().StringVar(&f.variant, "variant", "", "Theme variant")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (stdout if empty)")
}

func renderCmd(a *app) *cobra.Command {
	var (
		configPath   string
		valuesPath   string
		presetPath   string
		checkPath    string
		errorsPath   string
		requestURI   string
		navThreshold int
		pages        pageFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a configuration tree",
		Long: `Render a YAML or JSON configuration tree as an HTML form.

Submitted values, error messages and validity can be bound from a state
file with --values (keys: values, errors, valid). A submission file passed
with --check is validated against the constraints declared on the tree
instead, and --server-errors maps backend messages keyed by field path
onto the form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("--config is required")
			}
			tree, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}

			opts := a.printerOptions()
			if requestURI != "" {
				opts = append(opts, printer.WithRequestURI(requestURI))
			}
			if cmd.Flags().Changed("nav-threshold") {
				opts = append(opts, printer.WithNavThreshold(navThreshold))
			}

			req := orchestrator.Request{Tree: tree, Page: pages.page, Title: pages.title}
			if valuesPath != "" {
				state, err := printer.LoadStateFile(valuesPath)
				if err != nil {
					return err
				}
				req.State = state
			}
			if checkPath != "" {
				if err := readYAML(checkPath, &req.Submission); err != nil {
					return err
				}
			}
			if errorsPath != "" {
				if err := readYAML(errorsPath, &req.ServerErrors); err != nil {
					return err
				}
			}

			orch, err := a.orchestrator(opts, presetPath, pages)
			if err != nil {
				return err
			}
			out, err := orch.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOutput(a.out, pages.output, out)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration tree (YAML or JSON)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "State file binding values, errors and validity")
	cmd.Flags().StringVar(&checkPath, "check", "", "Submission file validated against the tree")
	cmd.Flags().StringVar(&errorsPath, "server-errors", "", "Backend error messages keyed by field path")
	cmd.Flags().StringVar(&presetPath, "preset", "", "Preset file patching the tree before rendering")
	cmd.Flags().StringVar(&requestURI, "request-uri", "", "Form action used with the navigation menu")
	cmd.Flags().IntVar(&navThreshold, "nav-threshold", printer.DefaultNavThreshold, "Fieldsets needed for a navigation menu (0 disables)")
	pages.register(cmd)
	return cmd
}

// orchestrator assembles the pipeline for one command run.
func (a *app) orchestrator(opts []printer.Option, presetPath string, pages pageFlags, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithPrinter(printer.New(opts...)),
	}
	if a.catalog != nil {
		options = append(options, orchestrator.WithValidationMessages(a.catalog))
	}
	options = append(options, extra...)
	if presetPath != "" {
		preset, err := loadPreset(presetPath)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformers(preset))
	}
	if pages.page {
		cfg, err := loadTheme(pages.themePath, pages.variant)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTheme(cfg))
	}
	return orchestrator.New(options...), nil
}

func readYAML(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func loadPreset(path string) (*orchestrator.PresetTransformer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	return orchestrator.NewPresetTransformer(data)
}
