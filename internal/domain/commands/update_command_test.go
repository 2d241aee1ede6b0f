//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pystyle/pystyle/internal/domain/commands"
	"github.com/pystyle/pystyle/internal/domain/entities"
	infraRepos "github.com/pystyle/pystyle/internal/infrastructure/repositories"
	"github.com/pystyle/pystyle/internal/infrastructure/repositories/report"
	"github.com/pystyle/pystyle/internal/infrastructure/repositories/style"
	doubles "github.com/pystyle/pystyle/test/infrastructure/repositorydoubles"
)

// writeClone lays out one project checkout under the clone tree.
func writeClone(t *testing.T, root, host, owner, name string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(root, host, owner, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600))
	}
	return dir
}

func linesRegistry() *infraRepos.AnalyzerRegistry {
	registry := infraRepos.NewAnalyzerRegistry()
	registry.Register(style.NewLinesAnalyzer())
	return registry
}

func TestUpdateCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should write one document per clone into the namespaced tree", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{
			"main.py": strings.Repeat("x = 1\n", 100),
		})
		writeClone(t, cloneDir, "gitlab.com", "acme", "beta", map[string]string{
			"beta.py": "import os\nprint(os.name)\n",
		})

		reports := report.NewReportRepository()
		source := &doubles.SpySourceRepository{
			HeadResult: &entities.Head{
				Commit: "a1b2c3d4",
				Date:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			},
		}
		cmd := commands.NewUpdateCommand(linesRegistry(), reports, source)

		settings := &entities.Settings{Workers: 2}
		dataDir := t.TempDir()
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: dataDir}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		alphaPath := filepath.Join(dataDir, "github.com", "acme", "alpha", entities.ReportFileName)
		assert.FileExists(t, alphaPath)
		assert.FileExists(t, filepath.Join(dataDir, "gitlab.com", "acme", "beta", entities.ReportFileName))

		document, existed, loadErr := reports.Load(alphaPath)
		require.NoError(t, loadErr)
		assert.True(t, existed)
		assert.EqualValues(t, 100, document["lines_of:py"])
		assert.Equal(t, "a1b2c3d4", document["commit"])
		assert.Equal(t, "2024-05-01T12:00:00Z", document["date"])
	})

	t.Run("should do nothing when there are no clones yet", func(t *testing.T) {
		// given
		cmd := commands.NewUpdateCommand(
			linesRegistry(),
			&doubles.SpyReportRepository{},
			&doubles.SpySourceRepository{},
		)

		settings := &entities.Settings{Workers: 2}
		dataDir := filepath.Join(t.TempDir(), "data")
		opts := commands.UpdateOptions{
			CloneDir: filepath.Join(t.TempDir(), "missing"),
			DataDir:  dataDir,
		}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		assert.NoDirExists(t, dataDir)
	})

	t.Run("should keep one broken project from stopping the others", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		alphaClone := writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{"a.py": "pass\n"})
		betaClone := writeClone(t, cloneDir, "github.com", "acme", "beta", map[string]string{"b.py": "pass\n"})

		spy := &doubles.SpyAnalyzerRepository{
			AnalyzerName: "lines_of_code",
			Result:       entities.Report{"lines_of:py": 1},
			ErrByDir:     map[string]error{betaClone: errors.New("walk aborted")},
		}
		registry := infraRepos.NewAnalyzerRegistry()
		registry.Register(spy)

		reports := &doubles.SpyReportRepository{}
		cmd := commands.NewUpdateCommand(registry, reports, &doubles.SpySourceRepository{})

		settings := &entities.Settings{Workers: 2}
		dataDir := t.TempDir()
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: dataDir}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		assert.Contains(t, spy.AnalyzedDirs, alphaClone)
		assert.Equal(t, []string{
			filepath.Join(dataDir, "github.com", "acme", "alpha", entities.ReportFileName),
		}, reports.SavedPaths)
	})

	t.Run("should merge fresh metrics over the existing document", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{"a.py": "pass\n"})

		dataDir := t.TempDir()
		alphaPath := filepath.Join(dataDir, "github.com", "acme", "alpha", entities.ReportFileName)
		reports := &doubles.SpyReportRepository{
			Documents: map[string]entities.Report{
				alphaPath: {"legacy_note": "keep me", "lines_of:py": 5},
			},
		}

		spy := &doubles.SpyAnalyzerRepository{
			AnalyzerName: "lines_of_code",
			Result:       entities.Report{"lines_of:py": 42},
		}
		registry := infraRepos.NewAnalyzerRegistry()
		registry.Register(spy)
		cmd := commands.NewUpdateCommand(registry, reports, &doubles.SpySourceRepository{})

		settings := &entities.Settings{Workers: 2}
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: dataDir}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		document := reports.Documents[alphaPath]
		assert.Equal(t, "keep me", document["legacy_note"])
		assert.EqualValues(t, 42, document["lines_of:py"])
	})

	t.Run("should write identical bytes on repeated runs", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{
			"main.py": "import sys\nsys.exit(0)\n",
		})

		source := &doubles.SpySourceRepository{
			HeadResult: &entities.Head{
				Commit: "a1b2c3d4",
				Date:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			},
		}
		cmd := commands.NewUpdateCommand(linesRegistry(), report.NewReportRepository(), source)

		settings := &entities.Settings{Workers: 2}
		dataDir := t.TempDir()
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: dataDir}
		alphaPath := filepath.Join(dataDir, "github.com", "acme", "alpha", entities.ReportFileName)

		// when
		require.NoError(t, cmd.Execute(context.Background(), settings, opts))
		firstRun, err := os.ReadFile(alphaPath)
		require.NoError(t, err)
		require.NoError(t, cmd.Execute(context.Background(), settings, opts))
		secondRun, err := os.ReadFile(alphaPath)
		require.NoError(t, err)

		// then
		assert.Equal(t, firstRun, secondRun)
	})

	t.Run("should not create new documents in a filtered run", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{"a.py": "pass\n"})

		cmd := commands.NewUpdateCommand(
			linesRegistry(),
			report.NewReportRepository(),
			&doubles.SpySourceRepository{},
		)

		settings := &entities.Settings{Workers: 2}
		dataDir := t.TempDir()
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: dataDir, Only: "lines"}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(dataDir, "github.com", "acme", "alpha", entities.ReportFileName))
	})

	t.Run("should refresh existing documents in a filtered run", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{"a.py": "pass\n"})

		reports := report.NewReportRepository()
		dataDir := t.TempDir()
		alphaPath := filepath.Join(dataDir, "github.com", "acme", "alpha", entities.ReportFileName)
		require.NoError(t, reports.Save(alphaPath, entities.Report{"license": "mit"}))

		cmd := commands.NewUpdateCommand(linesRegistry(), reports, &doubles.SpySourceRepository{})

		settings := &entities.Settings{Workers: 2}
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: dataDir, Only: "lines"}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		document, _, loadErr := reports.Load(alphaPath)
		require.NoError(t, loadErr)
		assert.Equal(t, "mit", document["license"])
		assert.EqualValues(t, 1, document["lines_of:py"])
	})

	t.Run("should fail on an unknown metric group", func(t *testing.T) {
		// given
		cmd := commands.NewUpdateCommand(
			linesRegistry(),
			&doubles.SpyReportRepository{},
			&doubles.SpySourceRepository{},
		)

		settings := &entities.Settings{Workers: 2, Metrics: []string{"bogus"}}
		opts := commands.UpdateOptions{CloneDir: t.TempDir(), DataDir: t.TempDir()}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.ErrorContains(t, err, `unknown metric group "bogus"`)
	})

	t.Run("should skip the provenance fields when HEAD is unreadable", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{"a.py": "pass\n"})

		dataDir := t.TempDir()
		alphaPath := filepath.Join(dataDir, "github.com", "acme", "alpha", entities.ReportFileName)
		reports := &doubles.SpyReportRepository{}
		cmd := commands.NewUpdateCommand(linesRegistry(), reports, &doubles.SpySourceRepository{})

		settings := &entities.Settings{Workers: 2}
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: dataDir}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		assert.NotContains(t, reports.Documents[alphaPath], "commit")
		assert.NotContains(t, reports.Documents[alphaPath], "date")
	})

	t.Run("should ignore entries that do not fit the tree shape", func(t *testing.T) {
		// given
		cloneDir := t.TempDir()
		writeClone(t, cloneDir, "github.com", "acme", "alpha", map[string]string{"a.py": "pass\n"})
		require.NoError(t, os.WriteFile(filepath.Join(cloneDir, "README.txt"), []byte("stray"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(cloneDir, "github.com", "LICENSE"), []byte("stray"), 0o600))

		reports := &doubles.SpyReportRepository{}
		cmd := commands.NewUpdateCommand(linesRegistry(), reports, &doubles.SpySourceRepository{})

		settings := &entities.Settings{Workers: 2}
		opts := commands.UpdateOptions{CloneDir: cloneDir, DataDir: t.TempDir()}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		assert.Len(t, reports.SavedPaths, 1)
	})

	t.Run("should fail when the data root is not usable", func(t *testing.T) {
		// given
		squatter := filepath.Join(t.TempDir(), "data")
		require.NoError(t, os.WriteFile(squatter, []byte("not a directory"), 0o600))
		cmd := commands.NewUpdateCommand(
			linesRegistry(),
			&doubles.SpyReportRepository{},
			&doubles.SpySourceRepository{},
		)

		settings := &entities.Settings{Workers: 2}
		opts := commands.UpdateOptions{CloneDir: t.TempDir(), DataDir: squatter}

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.ErrorContains(t, err, "data directory is not usable")
	})
}
