package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepdriver/stepdriver/pkg/fileutil"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		def  string
		ext  string
		want string
	}{
		{"plain name", "report.pdf", "download", "", "report.pdf"},
		{"unsafe characters replaced", `a/b\c:d*e?f"g<h>i|j`, "download", "", "a_b_c_d_e_f_g_h_i_j"},
		{"empty falls back to default", "", "page", ".html", "page.html"},
		{"whitespace falls back to default", "   ", "download", "", "download"},
		{"extension appended", "snapshot", "page", ".txt", "snapshot.txt"},
		{"extension not duplicated", "snapshot.TXT", "page", ".txt", "snapshot.TXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fileutil.SafeFilename(tt.in, tt.def, tt.ext))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, fileutil.EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	assert.NoError(t, fileutil.EnsureDir(dir))
}
