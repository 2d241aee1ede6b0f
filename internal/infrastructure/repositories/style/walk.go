// Package style implements the metric groups that turn a project checkout
// into a flat style report: typical files and directories, license, line
// counts, shebangs, __future__ imports, test engine and declared
// requirements. Analyzers never write anything and tolerate whatever a real
// checkout throws at them; only an unwalkable project root is an error.
package style

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const gitDirName = ".git"

// maxShebangLength bounds how much of a file is read when looking for an
// interpreter line.
const maxShebangLength = 512

// walkFiles visits every regular file under dir, skipping the .git tree.
// Entries that cannot be read are skipped; only a failure on dir itself (or
// an expired context) aborts the walk.
func walkFiles(ctx context.Context, dir string, visit func(path string, entry fs.DirEntry)) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if entry.IsDir() {
			if entry.Name() == gitDirName && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		visit(path, entry)
		return nil
	})
}

// readTextFile reads path and reports whether it holds valid UTF-8 text.
// Unreadable and binary files both come back as not-ok.
func readTextFile(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if !utf8.Valid(data) {
		return nil, false
	}
	return data, true
}

// readFirstLine returns the first line of the file at path, without the line
// terminator. Reads are bounded, so a binary blob with no newline in sight
// cannot blow up memory.
func readFirstLine(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	reader := bufio.NewReader(io.LimitReader(file, maxShebangLength))
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// countLines counts lines the way an editor shows them: a trailing newline
// does not start another line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	count := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		count++
	}
	return count
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// presence converts a check into the 0/1 the documents record.
func presence(present bool) int {
	if present {
		return 1
	}
	return 0
}
