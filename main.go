package main

import (
	"github.com/alecthomas/kong"

	"github.com/stepdriver/stepdriver/cmd/cli"
)

var app struct {
	Run     cli.RunCmd     `cmd:"" help:"Execute a workflow against a live browser."`
	Lint    cli.LintCmd    `cmd:"" help:"Validate a workflow file without launching a browser."`
	Batch   cli.BatchCmd   `cmd:"" help:"Run every workflow in a directory and write a report."`
	Convert cli.ConvertCmd `cmd:"" help:"Generate a workflow file from a question/answer CSV."`
}

func main() {
	ctx := kong.Parse(&app,
		kong.Name("stepdriver"),
		kong.Description("Declarative browser workflow runner."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
