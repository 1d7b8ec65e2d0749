package steprunner

// StepRunner executes one category of step. Validate performs the static
// checks a lint pass can run without a browser; Run performs the step.
type StepRunner interface {
	Validate() error
	Run() (*StepResult, error)
}
