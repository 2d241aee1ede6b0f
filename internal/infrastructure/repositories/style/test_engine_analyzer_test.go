//go:build unit

package style_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pystyle/pystyle/internal/infrastructure/repositories/style"
)

func TestTestEngineAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("should pick the engine cited by the most files", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("Run the suite with pytest.\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tox.ini"), []byte("[testenv]\ndeps = pytest\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("nose\n"), 0o600))
		analyzer := style.NewTestEngineAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "pytest", report["test_engine"])
	})

	t.Run("should break citation ties in a fixed order", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "README.md"),
			[]byte("Works with nose and with pytest.\n"),
			0o600,
		))
		analyzer := style.NewTestEngineAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "nose", report["test_engine"])
	})

	t.Run("should leave the engine empty without any citation", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("No tests yet.\n"), 0o600))
		analyzer := style.NewTestEngineAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "", report["test_engine"])
	})

	t.Run("should ignore files outside the hint list", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("pytest everywhere\n"), 0o600))
		analyzer := style.NewTestEngineAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "", report["test_engine"])
	})
}
