package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sourceplane/roleci/internal/config"
	"github.com/sourceplane/roleci/internal/console"
	"github.com/sourceplane/roleci/internal/git"
	"github.com/sourceplane/roleci/internal/loader"
	"github.com/sourceplane/roleci/internal/logger"
	"github.com/sourceplane/roleci/internal/model"
	"github.com/sourceplane/roleci/internal/render"
	"github.com/sourceplane/roleci/internal/roles"
)

var log = logger.New("roleci:cli")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		if code, ok := IsExitError(err); ok {
			os.Exit(code)
		}
		os.Exit(1)
	}
}

// loadRoleTable builds the role table, layering the overrides file on
// top of the built-in configurations when one is configured.
func loadRoleTable(s *config.Settings) (*roles.Table, map[string]model.RoleConfig, error) {
	path := s.RolesFilePath()
	if path == "" {
		return roles.NewTable(nil), nil, nil
	}

	overrides, err := loader.LoadRoleOverrides(path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Loaded %d role overrides from %s", len(overrides), path)
	return roles.NewTable(overrides), overrides, nil
}

func newRenderer(s *config.Settings) *render.Renderer {
	r := render.NewRenderer()
	r.Branch = s.Branch
	return r
}

func generateWorkflows(s *config.Settings, out io.Writer, check bool) error {
	p := console.NewPrinter(out)

	p.Progress("Scanning for roles with tests...")
	names, err := loader.FindRolesWithTests(s.RolesPath())
	if err != nil {
		return fmt.Errorf("failed to discover roles: %w", err)
	}
	if len(names) == 0 {
		p.Warning("No roles with tests found!")
		return nil
	}
	p.Info("Found %d roles with tests: %s", len(names), strings.Join(names, ", "))

	table, _, err := loadRoleTable(s)
	if err != nil {
		return err
	}
	renderer := newRenderer(s)
	workflowsDir := s.WorkflowsPath()

	var stale []string
	for _, name := range names {
		workflow, err := renderer.RenderWorkflow(name, table.Resolve(name))
		if err != nil {
			return fmt.Errorf("failed to render workflow for role %s: %w", name, err)
		}
		content, err := renderer.Content(name, workflow)
		if err != nil {
			return fmt.Errorf("failed to serialize workflow for role %s: %w", name, err)
		}
		path := render.WorkflowPath(workflowsDir, name)

		if check {
			isStale, err := renderer.IsStale(path, content)
			if err != nil {
				return err
			}
			if isStale {
				p.Warning("%s is out of date", path)
				stale = append(stale, path)
			} else {
				p.Println("  " + console.FormatSuccessMessage(path+" is up to date"))
			}
			continue
		}

		p.Progress("Generating %s...", path)
		if err := renderer.WriteWorkflow(path, content); err != nil {
			return err
		}
		p.Println("  " + console.FormatSuccessMessage("Created "+path))
	}

	if check {
		if len(stale) > 0 {
			return NewExitError(1, fmt.Sprintf("%d of %d workflow files are out of date; run 'roleci generate'", len(stale), len(names)))
		}
		p.Success("All %d workflow files are up to date", len(names))
		return nil
	}

	p.Println()
	p.Success("Generated %d workflow files successfully!", len(names))
	p.Info("Workflow files created in: %s", workflowsDir)
	return nil
}

func listRoles(s *config.Settings, out io.Writer, long, changed bool) error {
	p := console.NewPrinter(out)

	names, err := loader.FindRolesWithTests(s.RolesPath())
	if err != nil {
		return fmt.Errorf("failed to discover roles: %w", err)
	}

	if changed {
		names, err = changedRoles(s, names)
		if err != nil {
			return err
		}
	}

	if len(names) == 0 {
		if changed {
			p.Warning("No changed roles with tests found")
		} else {
			p.Warning("No roles with tests found!")
		}
		return nil
	}

	table, overrides, err := loadRoleTable(s)
	if err != nil {
		return err
	}

	if !long {
		p.Println(console.FormatHeader(fmt.Sprintf("Roles with tests (%d)", len(names))))
	}
	for _, name := range names {
		info := ExtractRoleInfo(name, table, overrides, s.WorkflowsPath())
		if long {
			PrintLongFormat(out, info)
		} else {
			PrintShortFormat(out, info)
		}
	}
	return nil
}

func changedRoles(s *config.Settings, names []string) ([]string, error) {
	rolesDir := s.RolesDir
	if filepath.IsAbs(rolesDir) {
		rel, err := filepath.Rel(s.Root, rolesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve roles directory relative to %s: %w", s.Root, err)
		}
		rolesDir = rel
	}

	detector := git.NewChangeDetector(s.Root, s.BaseBranch)
	changed, err := detector.ChangedRoles(filepath.ToSlash(rolesDir), names)
	if err != nil {
		return nil, fmt.Errorf("failed to detect changed roles: %w", err)
	}
	log.Printf("Changed roles against %s: %v", s.BaseBranch, changed)
	return changed, nil
}

func showRole(s *config.Settings, out io.Writer, name string, tree bool) error {
	table, _, err := loadRoleTable(s)
	if err != nil {
		return err
	}

	renderer := newRenderer(s)
	workflow, err := renderer.RenderWorkflow(name, table.Resolve(name))
	if err != nil {
		return fmt.Errorf("failed to render workflow for role %s: %w", name, err)
	}

	if tree {
		viewer := render.NewWorkflowViewer(map[string]*model.Workflow{name: workflow})
		fmt.Fprint(out, viewer.ViewTree())
		return nil
	}

	content, err := renderer.Content(name, workflow)
	if err != nil {
		return fmt.Errorf("failed to serialize workflow for role %s: %w", name, err)
	}
	_, err = out.Write(content)
	return err
}

func validateRolesFile(s *config.Settings, out io.Writer) error {
	path := s.RolesFilePath()
	if path == "" {
		return fmt.Errorf("no roles file configured (use --roles-file or ROLECI_ROLES_FILE)")
	}

	overrides, err := loader.LoadRoleOverrides(path)
	if err != nil {
		return err
	}

	p := console.NewPrinter(out)
	p.Success("%s is valid (%d roles)", path, len(overrides))
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.Println("  - " + name)
	}
	return nil
}
