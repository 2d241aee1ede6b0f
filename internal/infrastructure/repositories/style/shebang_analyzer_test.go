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

func TestShebangAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("should census interpreter spellings across py files", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cli.py"), []byte("#!/usr/bin/env python3\nmain()\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tool.py"), []byte("#!/usr/bin/python\nmain()\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sh.py"), []byte("#!/bin/sh\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.py"), []byte("import os\n"), 0o600))
		analyzer := style.NewShebangAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, report["shebang:python3"])
		assert.Equal(t, 1, report["shebang:python"])
		assert.Equal(t, 75, report["shebangs_pct"])
	})

	t.Run("should preserve the interpreter spelling as written", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "caps.py"), []byte("#!/usr/bin/env Python2.7\n"), 0o600))
		analyzer := style.NewShebangAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, report["shebang:Python2.7"])
		assert.Equal(t, 100, report["shebangs_pct"])
	})

	t.Run("should report zero percent for a project without py files", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("#!/usr/bin/env python\n"), 0o600))
		analyzer := style.NewShebangAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, report["shebangs_pct"])
		assert.Len(t, report, 1)
	})

	t.Run("should truncate the percentage toward zero", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("#!/usr/bin/env python\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.py"), []byte("pass\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "c.py"), []byte("pass\n"), 0o600))
		analyzer := style.NewShebangAnalyzer()

		// when
		report, err := analyzer.Analyze(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, 33, report["shebangs_pct"])
	})
}
