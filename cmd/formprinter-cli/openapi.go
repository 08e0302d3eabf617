package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formprinter"
	pkgopenapi "github.com/goliatone/go-formprinter/pkg/openapi"
	"github.com/goliatone/go-formprinter/pkg/orchestrator"
)

const httpTimeout = 30 * time.Second

func openapiCmd(a *app) *cobra.Command {
	var (
		specLocation string
		operationID  string
		presetPath   string
		allowHTTP    bool
		pages        pageFlags
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Render the request body of an OpenAPI operation",
		Long: `Build a configuration tree from the request body schema of an OpenAPI
operation and render it. Without --operation the available operation ids are
listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if specLocation == "" {
				return errors.New("--spec is required")
			}
			source, err := pkgopenapi.SourceFor(specLocation)
			if err != nil {
				return err
			}

			var extra []orchestrator.Option
			if allowHTTP {
				extra = append(extra, orchestrator.WithLoader(
					formprinter.NewLoader(pkgopenapi.WithHTTPFallback(httpTimeout)),
				))
			}
			orch, err := a.orchestrator(a.printerOptions(), presetPath, pages, extra...)
			if err != nil {
				return err
			}

			req := orchestrator.Request{Source: source, OperationID: operationID, Page: pages.page, Title: pages.title}
			if operationID == "" {
				return listOperations(cmd, orch, req)
			}
			out, err := orch.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOutput(a.out, pages.output, out)
		},
	}

	cmd.Flags().StringVarP(&specLocation, "spec", "s", "", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&operationID, "operation", "", "Operation id to render")
	cmd.Flags().StringVar(&presetPath, "preset", "", "Preset file patching the tree before rendering")
	cmd.Flags().BoolVar(&allowHTTP, "http", false, "Allow fetching the document over HTTP")
	pages.register(cmd)
	return cmd
}

func listOperations(cmd *cobra.Command, orch *orchestrator.Orchestrator, req orchestrator.Request) error {
	operations, err := orch.Operations(cmd.Context(), req)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		op := operations[id]
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s\t%s\n", id, op.Method, op.Path, op.Summary)
	}
	return nil
}
