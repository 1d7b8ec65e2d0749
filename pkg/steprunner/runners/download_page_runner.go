package runners

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/fileutil"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// DownloadPageRunner snapshots the current document to disk, either as raw
// HTML or as the rendered body text.
type DownloadPageRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindDownloadPage, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &DownloadPageRunner{StepCtx: ctx}, nil
	})
}

func (r *DownloadPageRunner) Validate() error {
	switch strings.ToLower(r.StepCtx.Step.Download.Mode) {
	case "", "html", "text", "txt":
		return nil
	default:
		return core.NewConfigError("download_page mode must be %q or %q, got %q", "html", "text", r.StepCtx.Step.Download.Mode)
	}
}

func (r *DownloadPageRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx

	mode := strings.ToLower(ctx.Step.Download.Mode)
	asText := mode == "text" || mode == "txt"

	var content string
	var err error
	if asText {
		content, err = ctx.Session.PageText()
		if err != nil {
			ctx.Logger.Warn().Err(err).Msg("Could not extract body text, saving raw HTML instead")
			asText = false
			content, err = ctx.Session.PageHTML()
		}
	} else {
		content, err = ctx.Session.PageHTML()
	}
	if err != nil {
		return nil, &core.InteractionError{Op: "capture page", Err: err}
	}

	ext := ".html"
	if asText {
		ext = ".txt"
	}
	name := ctx.Step.Download.Filename
	if name == "" {
		name = pageBaseName(ctx.Session.CurrentURL())
	}
	name = fileutil.SafeFilename(name, "page", ext)

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

	dest := filepath.Join(dir, name)
	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		return nil, &core.InteractionError{Op: "write page snapshot", Err: err}
	}
	format := "html"
	if asText {
		format = "text"
	}
	ctx.Logger.Info().Str("path", dest).Str("format", format).Msg("Page snapshot saved")

	steprunner.StepSleep(ctx.Step.Sleep)
	return nil, nil
}

// pageBaseName derives a default filename from the last path segment of the
// current URL, falling back to the host when the path is bare.
func pageBaseName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return u.Host
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
