package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/page"
	"github.com/goliatone/go-formprinter/pkg/printer"
	"github.com/goliatone/go-formprinter/pkg/telemetry"
)

// app carries the state shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer

	verbose    bool
	labelsPath string
	metrics    bool

	logger   *slog.Logger
	labels   labels.Labeler
	catalog  *labels.Catalog
	registry *prometheus.Registry
	recorder telemetry.Recorder
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "formprinter-cli",
		Short:         "Render declarative form trees as HTML",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.reportMetrics()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.StringVar(&a.labelsPath, "labels", "", "YAML caption catalog")
	flags.BoolVar(&a.metrics, "metrics", false, "Log render metrics when done")

	root.AddCommand(
		renderCmd(a),
		openapiCmd(a),
		promptCmd(a),
	)
	return root
}

func (a *app) setup() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	a.labels = labels.Identity{}
	if a.labelsPath != "" {
		catalog, err := labels.LoadCatalogFile(a.labelsPath)
		if err != nil {
			return err
		}
		a.labels = catalog
		a.catalog = catalog
	}

	a.registry = prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(telemetry.WithRegistry(a.registry))
	a.recorder = telemetry.Multi(metrics, telemetry.NewTracer("formprinter-cli"))
	return nil
}

func (a *app) printerOptions() []printer.Option {
	return []printer.Option{
		printer.WithLogger(a.logger),
		printer.WithLabeler(a.labels),
		printer.WithRecorder(a.recorder),
	}
}

func (a *app) reportMetrics() error {
	if !a.metrics || a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			var value float64
			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				value = float64(metric.GetHistogram().GetSampleCount())
			}
			a.logger.Info("metric", "name", family.GetName(), "value", value)
		}
	}
	return nil
}

// loadTheme reads a go-theme manifest and flattens the requested variant.
func loadTheme(path, variant string) (*theme.RendererConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	// Decoded through JSON so the manifest's own field mapping applies.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	var manifest theme.Manifest
	if err := json.Unmarshal(normalized, &manifest); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if err := theme.NewRegistry().Register(&manifest); err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return page.ConfigFromManifest(&manifest, variant)
}

func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := out.Write(data); err != nil {
			return err
		}
		_, err := io.WriteString(out, "\n")
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
