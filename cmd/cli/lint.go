package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/log"
	"github.com/stepdriver/stepdriver/pkg/log/sinks"
	"github.com/stepdriver/stepdriver/pkg/steprunner"

	// Ensure all runner implementations are initialized
	_ "github.com/stepdriver/stepdriver/pkg/steprunner/runners"
)

type LintCmd struct {
	Workflow string `arg:"" help:"The workflow JSON file to validate."`
	Varfile  string `help:"The YAML varfile for input variables." default:"sdvars.yml"`
}

func (l *LintCmd) Run() error {
	consoleSink := sinks.NewConsoleSink()

	logRouter := log.NewRouter()
	logRouter.AddSink(consoleSink)

	baseZerologInstance := zerolog.New(logRouter).With().Timestamp().Logger()
	cmdLogger := log.NewZerologAdapter(baseZerologInstance)

	cmdLogger.Info().Msgf("Validating %s using %s", l.Workflow, l.Varfile)

	if err := godotenv.Load(); err != nil {
		cmdLogger.Warn().Err(err).Msgf("No .env file found or error thrown while loading it. Relying on existing ENV if vars use {{ env.* }}")
	}

	var varCtx core.VarContext
	if _, statErr := os.Stat(l.Varfile); os.IsNotExist(statErr) {
		cmdLogger.Warn().Msgf("Varfile %s not found. Proceeding without variables.", l.Varfile)
		varCtx = make(core.VarContext)
	} else {
		var err error
		varCtx, _, err = core.ResolveVarfile(l.Varfile)
		if err != nil {
			cmdLogger.Error().Err(err).Msgf("Could not resolve varfile %q", l.Varfile)
			return fmt.Errorf("resolving varfile %q: %w", l.Varfile, err)
		}
		cmdLogger.Info().Msgf("Successfully loaded and resolved varfile: %s", l.Varfile)
	}

	wf, err := core.LoadWorkflowFromFile(l.Workflow, varCtx)
	if err != nil {
		cmdLogger.Error().Err(err).Msgf("Failed to load workflow file %s", l.Workflow)
		return fmt.Errorf("loading workflow file %q: %w", l.Workflow, err)
	}
	cmdLogger.Info().Msgf("Successfully loaded workflow: %q (%d steps)", l.Workflow, len(wf.Steps))

	if err := core.ValidateWorkflowStructure(wf); err != nil {
		cmdLogger.Error().Err(err).Msg("Workflow structure validation failed")
		return fmt.Errorf("validating workflow structure: %w", err)
	}
	cmdLogger.Info().Msg("Workflow structure validation passed")

	if err := steprunner.ValidateWorkflowRunners(wf); err != nil {
		cmdLogger.Error().Err(err).Msg("Step configuration validation failed")
		return fmt.Errorf("validating step configuration: %w", err)
	}
	cmdLogger.Info().Msg("Step configuration validation passed")

	cmdLogger.Info().Msg("Successfully validated workflow configuration ✅")
	return nil
}
