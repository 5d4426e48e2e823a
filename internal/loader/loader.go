package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sourceplane/roleci/internal/model"
	"github.com/sourceplane/roleci/internal/normalize"
	"github.com/sourceplane/roleci/internal/schema"
	"gopkg.in/yaml.v3"
)

// TestsDirName is the subdirectory that marks a role as testable
const TestsDirName = "tests"

// FindRolesWithTests returns the sorted names of the role directories under
// rolesDir that contain a tests subdirectory
func FindRolesWithTests(rolesDir string) ([]string, error) {
	info, err := os.Stat(rolesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access roles directory %s: %w", rolesDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("roles path is not a directory: %s", rolesDir)
	}

	entries, err := os.ReadDir(rolesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", rolesDir, err)
	}

	roles := make([]string, 0, len(entries))
	for _, entry := range entries {
		// Stat rather than entry.IsDir so symlinked roles are followed
		roleInfo, err := os.Stat(filepath.Join(rolesDir, entry.Name()))
		if err != nil || !roleInfo.IsDir() {
			continue
		}

		testsPath := filepath.Join(rolesDir, entry.Name(), TestsDirName)
		testsInfo, err := os.Stat(testsPath)
		if err != nil || !testsInfo.IsDir() {
			continue
		}

		roles = append(roles, entry.Name())
	}

	sort.Strings(roles)
	return roles, nil
}

// LoadRoleOverrides loads a role overrides file, validates it against the
// embedded roles schema and returns normalized records keyed by role name
func LoadRoleOverrides(path string) (map[string]model.RoleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roles file: %w", err)
	}

	if err := ValidateRoleOverrides(data); err != nil {
		return nil, fmt.Errorf("roles file %s failed validation: %w", path, err)
	}

	var file model.RolesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roles file YAML: %w", err)
	}

	overrides, err := normalize.RoleOverrides(file.Roles)
	if err != nil {
		return nil, fmt.Errorf("invalid roles file %s: %w", path, err)
	}

	return overrides, nil
}

// ValidateRoleOverrides checks raw role overrides YAML against the roles schema
func ValidateRoleOverrides(data []byte) error {
	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}
	return validator.ValidateRolesYAML(data)
}
