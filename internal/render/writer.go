package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WorkflowFileSuffix is appended to the role name to form the output file name
const WorkflowFileSuffix = "-ci.yml"

// WorkflowPath returns the output path of role's workflow inside workflowsDir
func WorkflowPath(workflowsDir, role string) string {
	return filepath.Join(workflowsDir, role+WorkflowFileSuffix)
}

// WriteWorkflow overwrites path with content. The parent directory must exist.
func (r *Renderer) WriteWorkflow(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write workflow to %s: %w", path, err)
	}
	return nil
}

// IsStale reports whether the file at path differs from content.
// A missing file is stale.
func (r *Renderer) IsStale(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read workflow %s: %w", path, err)
	}
	return !bytes.Equal(existing, content), nil
}
