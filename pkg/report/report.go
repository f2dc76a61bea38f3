// Package report produces the post-install summary of a target tree.
//
// Counting is purely structural: directory listings only, no file
// content is ever interpreted. A missing category directory is a zero
// count, never an error.
package report

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Summary tallies the recognized categories under the target tree.
type Summary struct {
	// Agents is the number of agent definition files under agents/.
	Agents int

	// Commands is the number of command files under commands/.
	Commands int

	// Skills is the number of skill directories under skills/.
	Skills int

	// Hooks is the number of hook files under hooks/.
	Hooks int
}

// Total returns the sum of all category counts.
func (s Summary) Total() int {
	return s.Agents + s.Commands + s.Skills + s.Hooks
}

// Summarize tallies the target tree. It never fails: unreadable or
// absent directories simply contribute zero.
func Summarize(target string) Summary {
	return Summary{
		Agents:   countFiles(filepath.Join(target, "agents"), ".md"),
		Commands: countFiles(filepath.Join(target, "commands"), ".md"),
		Skills:   countDirs(filepath.Join(target, "skills")),
		Hooks:    countFiles(filepath.Join(target, "hooks"), ""),
	}
}

// countFiles counts regular files under root, recursively, optionally
// filtered by extension. Symlinks are not followed.
func countFiles(root, ext string) int {
	count := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ext == "" || strings.EqualFold(filepath.Ext(path), ext) {
			count++
		}
		return nil
	})
	return count
}

// countDirs counts the immediate subdirectories of root.
func countDirs(root string) int {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			count++
		}
	}
	return count
}
