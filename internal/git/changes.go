package git

import (
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sourceplane/roleci/internal/logger"
)

var log = logger.New("roleci:git")

// CommandRunner runs git with args in dir and returns its stdout
type CommandRunner func(dir string, args ...string) ([]byte, error)

func execGit(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd.Output()
}

// ChangeDetector detects files that have changed in git
type ChangeDetector struct {
	baseBranch string // branch to compare against (e.g., "main", "develop")
	dir        string
	run        CommandRunner
}

// NewChangeDetector creates a change detector for the repository at dir
func NewChangeDetector(dir, baseBranch string) *ChangeDetector {
	return &ChangeDetector{
		baseBranch: baseBranch,
		dir:        dir,
		run:        execGit,
	}
}

// WithRunner replaces the git invocation, mainly for tests
func (cd *ChangeDetector) WithRunner(run CommandRunner) *ChangeDetector {
	cd.run = run
	return cd
}

// GetChangedFiles returns files that differ from the base branch, plus staged
// and unstaged changes. Paths are relative to the repository root.
func (cd *ChangeDetector) GetChangedFiles() ([]string, error) {
	filesMap := make(map[string]bool)
	collect := func(output []byte) {
		for _, f := range strings.Split(strings.TrimSpace(string(output)), "\n") {
			if f != "" {
				filesMap[f] = true
			}
		}
	}

	// Unstaged modifications
	if output, err := cd.run(cd.dir, "diff", "--name-only"); err == nil {
		collect(output)
	}

	// Staged changes
	if output, err := cd.run(cd.dir, "diff", "--cached", "--name-only"); err == nil {
		collect(output)
	}

	compareRef := cd.baseBranch
	if compareRef == "" {
		compareRef = "main"
	}

	output, err := cd.run(cd.dir, "diff", "--name-only", compareRef)

	// The base branch may only exist as a remote ref in CI checkouts
	if err != nil || len(output) == 0 {
		output, err = cd.run(cd.dir, "diff", "--name-only", "origin/"+compareRef)
	}

	// Last resort: diff against the merge base (works in detached HEAD state)
	if err != nil || len(output) == 0 {
		mergeBase, mergeErr := cd.mergeBase(compareRef)
		if mergeErr == nil {
			output, err = cd.run(cd.dir, "diff", "--name-only", mergeBase)
		}
	}

	if err == nil {
		collect(output)
	} else {
		log.Printf("Could not diff against %s: %v", compareRef, err)
	}

	result := make([]string, 0, len(filesMap))
	for f := range filesMap {
		result = append(result, f)
	}
	sort.Strings(result)

	log.Printf("Found %d changed files against %s", len(result), compareRef)
	return result, nil
}

func (cd *ChangeDetector) mergeBase(ref string) (string, error) {
	attempts := [][]string{
		{"merge-base", "--fork-point", ref},
		{"merge-base", "HEAD", ref},
		{"merge-base", "HEAD", "origin/" + ref},
	}

	var lastErr error
	for _, args := range attempts {
		output, err := cd.run(cd.dir, args...)
		if err == nil && len(output) > 0 {
			return strings.TrimSpace(string(output)), nil
		}
		lastErr = err
	}
	return "", lastErr
}

// ChangedRoles returns the roles with at least one changed file under
// rolesDir/<role>. rolesDir is relative to the repository root.
func (cd *ChangeDetector) ChangedRoles(rolesDir string, roles []string) ([]string, error) {
	files, err := cd.GetChangedFiles()
	if err != nil {
		return nil, err
	}

	var changed []string
	for _, role := range roles {
		if len(FilesUnder(files, path.Join(filepath.ToSlash(rolesDir), role))) > 0 {
			changed = append(changed, role)
		}
	}
	return changed, nil
}

// FilesUnder returns the entries of files that are p itself or live below it.
// An empty or root path matches everything.
func FilesUnder(files []string, p string) []string {
	p = strings.TrimSuffix(path.Clean(filepath.ToSlash(p)), "/")
	if p == "" || p == "." {
		return files
	}

	var result []string
	for _, file := range files {
		if strings.HasPrefix(file, p+"/") || file == p {
			result = append(result, file)
		}
	}
	return result
}
