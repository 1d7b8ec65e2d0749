package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/log"
	"github.com/stepdriver/stepdriver/pkg/log/sinks"
	"github.com/stepdriver/stepdriver/pkg/security"
	"github.com/stepdriver/stepdriver/pkg/steprunner"

	// Ensure all runner implementations are initialized
	_ "github.com/stepdriver/stepdriver/pkg/steprunner/runners"
)

type RunCmd struct {
	Workflow    string `arg:"" help:"The workflow JSON file to execute."`
	Varfile     string `help:"The YAML varfile for input variables." default:"sdvars.yml"`
	URL         string `help:"Navigate to this URL before the first step."`
	Profile     string `help:"Browser profile directory to persist session state." default:".stepdriver/profile"`
	Headless    bool   `help:"Run the browser without a visible window."`
	DownloadDir string `help:"Default directory for saved files." default:"downloads"`
}

func (r *RunCmd) Run() error {
	wfRunID := uuid.New().String()

	consoleSink := sinks.NewConsoleSink()

	logsDir := ".stepdriver/logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs directory %q: %w", logsDir, err)
	}
	logFilePath := filepath.Join(logsDir, fmt.Sprintf("%s.json", wfRunID))
	fileSink, err := sinks.NewFileSink(logFilePath)
	if err != nil {
		return fmt.Errorf("creating file log sink: %w", err)
	}

	logRouter := log.NewRouter()
	logRouter.AddSink(consoleSink)
	logRouter.AddSink(fileSink)

	baseZerologInstance := zerolog.New(logRouter).With().Timestamp().Logger()
	cmdLogger := log.NewZerologAdapter(baseZerologInstance)

	cmdLogger.Info().Msgf("Starting workflow run with ID: %s", wfRunID)
	cmdLogger.Info().Msgf("Logs will be saved to %q", logFilePath)

	// Graceful shutdown of logging sinks
	defer func() {
		cmdLogger.Info().Msg("Shutting down logger...")
		if err := logRouter.Close(); err != nil {
			fmt.Printf("Error during log shutdown: %v", err)
		}
	}()

	if err := godotenv.Load(); err != nil {
		cmdLogger.Warn().Err(err).Msgf("No .env file found or error thrown while loading it. Relying on existing ENV if vars use {{ env.* }}")
	}

	varCtx, secrets, err := loadVars(r.Varfile, cmdLogger)
	if err != nil {
		return err
	}
	logRouter.SetRedactor(security.NewRedactor(secrets))

	wf, err := core.LoadWorkflowFromFile(r.Workflow, varCtx)
	if err != nil {
		cmdLogger.Error().Err(err).Msgf("Failed to load workflow file %s", r.Workflow)
		return fmt.Errorf("loading workflow file %q: %w", r.Workflow, err)
	}
	cmdLogger.Info().Msgf("Successfully loaded workflow: %q (%d steps)", r.Workflow, len(wf.Steps))

	// The pre-flight gate honors tolerance: problems on ignore_on_error
	// steps are left for the engine's warn-and-skip path. lint is the
	// strict gate.
	if err := core.ValidateRunnableWorkflow(wf); err != nil {
		cmdLogger.Error().Err(err).Msg("Workflow structure validation failed")
		return fmt.Errorf("validating workflow structure: %w", err)
	}
	if err := steprunner.ValidateRunnableSteps(wf); err != nil {
		cmdLogger.Error().Err(err).Msg("Workflow runner validation failed")
		return fmt.Errorf("validating workflow runners: %w", err)
	}
	cmdLogger.Info().Msg("Workflow validation passed")

	session, err := browser.Launch(browser.LaunchOptions{
		ProfileDir: r.Profile,
		Headless:   r.Headless,
	}, cmdLogger)
	if err != nil {
		cmdLogger.Error().Err(err).Msg("Failed to start browser session")
		return fmt.Errorf("starting browser session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			cmdLogger.Warn().Err(err).Msg("Error closing browser session")
		}
	}()

	if r.URL != "" {
		cmdLogger.Info().Str("url", r.URL).Msg("Navigating to starting URL")
		if err := session.Navigate(r.URL); err != nil {
			cmdLogger.Error().Err(err).Msgf("Failed to open starting URL %s", r.URL)
			return fmt.Errorf("opening starting URL %q: %w", r.URL, err)
		}
	}

	engine := steprunner.NewWorkflowEngine(cmdLogger, session)
	engine.DownloadDir = r.DownloadDir

	if err := engine.ExecuteWorkflow(wf); err != nil {
		return err
	}

	cmdLogger.Info().Msgf("Workflow completed successfully. Logs can be found at %q", logFilePath)
	return nil
}

// loadVars resolves the varfile if it exists. A missing varfile is not an
// error; workflows without placeholders run fine without one.
func loadVars(path string, logger *log.ZerologAdapter) (core.VarContext, []string, error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		logger.Warn().Msgf("Varfile %s not found. Proceeding without variables.", path)
		return make(core.VarContext), nil, nil
	}
	varCtx, secrets, err := core.ResolveVarfile(path)
	if err != nil {
		logger.Error().Err(err).Msgf("Could not resolve varfile %q", path)
		return nil, nil, fmt.Errorf("resolving varfile %q: %w", path, err)
	}
	logger.Info().Msgf("Successfully loaded and resolved varfile: %s", path)
	return varCtx, secrets, nil
}
