//go:build unit

package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/infrastructure/repositories/report"
)

func TestReportRepository_Load(t *testing.T) {
	t.Parallel()

	t.Run("should round-trip a saved document", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "github.com", "acme", "widget", entities.ReportFileName)
		repo := report.NewReportRepository()
		document := entities.Report{"license": "mit", "lines_of:py": 120}
		require.NoError(t, repo.Save(path, document))

		// when
		loaded, existed, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.True(t, existed)
		assert.Equal(t, "mit", loaded["license"])
		assert.EqualValues(t, 120, loaded["lines_of:py"])
	})

	t.Run("should hand back an empty document for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		repo := report.NewReportRepository()

		// when
		loaded, existed, err := repo.Load(filepath.Join(t.TempDir(), "missing.json"))

		// then
		require.NoError(t, err)
		assert.False(t, existed)
		assert.Empty(t, loaded)
	})

	t.Run("should rebuild a malformed document instead of failing", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), entities.ReportFileName)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		repo := report.NewReportRepository()

		// when
		loaded, existed, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.True(t, existed)
		assert.Empty(t, loaded)
	})
}

func TestReportRepository_Save(t *testing.T) {
	t.Parallel()

	t.Run("should create the namespace directories on first save", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		path := filepath.Join(root, "gitlab.com", "acme", "widget", entities.ReportFileName)
		repo := report.NewReportRepository()

		// when
		err := repo.Save(path, entities.Report{"license": "mit"})

		// then
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("should write the same bytes for the same document", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		first := filepath.Join(dir, "first.json")
		second := filepath.Join(dir, "second.json")
		repo := report.NewReportRepository()
		document := entities.Report{"b": 2, "a": "x", "c": []string{"z", "y"}}

		// when
		require.NoError(t, repo.Save(first, document))
		require.NoError(t, repo.Save(second, document))

		// then
		firstData, err := os.ReadFile(first)
		require.NoError(t, err)
		secondData, err := os.ReadFile(second)
		require.NoError(t, err)
		assert.Equal(t, firstData, secondData)
	})

	t.Run("should leave no temp files behind", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		path := filepath.Join(dir, entities.ReportFileName)
		repo := report.NewReportRepository()

		// when
		require.NoError(t, repo.Save(path, entities.Report{"license": ""}))

		// then
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entities.ReportFileName, entries[0].Name())
	})

	t.Run("should fail on an unrenderable document", func(t *testing.T) {
		t.Parallel()

		// given
		repo := report.NewReportRepository()
		document := entities.Report{"bad": func() {}}

		// when
		err := repo.Save(filepath.Join(t.TempDir(), "doc.json"), document)

		// then
		require.Error(t, err)
	})
}

func TestReportRepository_Exists(t *testing.T) {
	t.Parallel()

	t.Run("should see saved documents and ignore directories", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		path := filepath.Join(dir, entities.ReportFileName)
		repo := report.NewReportRepository()
		require.NoError(t, repo.Save(path, entities.Report{}))

		// when
		saved := repo.Exists(path)
		missing := repo.Exists(filepath.Join(dir, "other.json"))
		directory := repo.Exists(dir)

		// then
		assert.True(t, saved)
		assert.False(t, missing)
		assert.False(t, directory)
	})
}
