package main

import (
	"os"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	table "github.com/mutablelogic/go-species/pkg/ui/table"
	view "github.com/mutablelogic/go-species/pkg/view"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type EndpointsCommand struct{}

type SpeciesCommand struct{}

type DiagnoseCommand struct {
	Symptom string `arg:"" name:"symptom" help:"Symptom to diagnose, 5 to 50 characters"`
	Stream  bool   `name:"stream" help:"Write the diagnosis as it is generated" negatable:"" default:"true"`
}

type OpenCommand struct {
	Path   string `arg:"" name:"path" help:"Page path, for example / or /result?symptom=..." optional:"" default:"/"`
	Stream bool   `name:"stream" help:"Write the diagnosis as it is generated" negatable:"" default:"true"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *EndpointsCommand) Run(ctx *Globals) error {
	return table.Write(os.Stdout, table.EndpointTable{Endpoints: ctx.config.Endpoints()})
}

func (cmd *SpeciesCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "SpeciesCommand")
	defer func() { endSpan(err) }()

	// Render the home page
	return view.NewHome(client).Render(parent, os.Stdout, nil)
}

func (cmd *DiagnoseCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "DiagnoseCommand",
		attribute.String("symptom", cmd.Symptom),
		attribute.Bool("stream", cmd.Stream),
	)
	defer func() { endSpan(err) }()

	// Navigate to the result page
	router, err := view.NewRouter(client, cmd.Stream)
	if err != nil {
		return err
	}
	return router.Navigate(parent, os.Stdout, view.ResultTarget(cmd.Symptom))
}

func (cmd *OpenCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "OpenCommand",
		attribute.String("path", cmd.Path),
	)
	defer func() { endSpan(err) }()

	router, err := view.NewRouter(client, cmd.Stream)
	if err != nil {
		return err
	}
	return router.Navigate(parent, os.Stdout, cmd.Path)
}
