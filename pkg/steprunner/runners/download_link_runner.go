package runners

import (
	"path/filepath"

	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/fileutil"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// DownloadLinkRunner clicks a download-triggering element and saves the
// resulting file under a configurable directory and name.
type DownloadLinkRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindDownloadFromLink, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &DownloadLinkRunner{StepCtx: ctx}, nil
	})
}

func (r *DownloadLinkRunner) Validate() error {
	if r.StepCtx.Step.Selector.Empty() {
		return core.NewConfigError("download_from_link step requires a selector")
	}
	return nil
}

func (r *DownloadLinkRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx

	el, selector, err := steprunner.ResolveTarget(ctx)
	if err != nil {
		return nil, err
	}
	if err := steprunner.PrepareTarget(el, selector, ctx.StepTimeout(ctx.Timeouts.Element)); err != nil {
		return nil, err
	}

	ctx.Logger.Info().Str("selector", selector).Msg("Triggering download")
	download, err := ctx.Session.ExpectDownload(ctx.StepTimeout(ctx.Timeouts.Download), func() error {
		return el.Click(ctx.StepTimeout(ctx.Timeouts.Click))
	})
	if err != nil {
		return nil, &core.TimeoutError{Op: "download", Selector: selector, Err: err}
	}

	dir := ctx.Step.Download.Dir
	if dir == "" {
		dir = ctx.DownloadDir
	}
	if dir == "" {
		dir = "."
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, &core.InteractionError{Op: "create download directory", Err: err}
	}

	name := ctx.Step.Download.Filename
	if name == "" {
		name = download.SuggestedFilename()
	}
	name = fileutil.SafeFilename(name, "download", "")
	dest := filepath.Join(dir, name)

	if err := download.SaveAs(dest); err != nil {
		return nil, &core.InteractionError{Op: "save download", Err: err}
	}
	ctx.Logger.Info().Str("path", dest).Msg("Download saved")

	steprunner.StepSleep(ctx.Step.Sleep)
	return nil, nil
}
