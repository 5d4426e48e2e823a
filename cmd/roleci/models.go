package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sourceplane/roleci/internal/model"
	"github.com/sourceplane/roleci/internal/render"
	"github.com/sourceplane/roleci/internal/roles"
)

const ruleLine = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// RoleInfo holds the resolved CI configuration of a discovered role
type RoleInfo struct {
	Name         string
	Source       string // builtin, override or default
	Config       model.RoleConfig
	JobID        string
	WorkflowPath string
	WorkflowFile bool // workflow file already exists on disk
}

// ExtractRoleInfo resolves name against table and describes where its
// workflow would be written
func ExtractRoleInfo(name string, table *roles.Table, overrides map[string]model.RoleConfig, workflowsDir string) *RoleInfo {
	source := "default"
	if _, ok := overrides[name]; ok {
		source = "override"
	} else if table.Has(name) {
		source = "builtin"
	}

	path := render.WorkflowPath(workflowsDir, name)
	_, err := os.Stat(path)

	return &RoleInfo{
		Name:         name,
		Source:       source,
		Config:       table.Resolve(name),
		JobID:        render.JobID(name),
		WorkflowPath: path,
		WorkflowFile: err == nil,
	}
}

// PrintShortFormat prints role info on a single line
func PrintShortFormat(w io.Writer, info *RoleInfo) {
	fmt.Fprintf(w, "%-20s  %-8s  ubuntu %s\n", info.Name, info.Source, strings.Join(info.Config.UbuntuVersions, ", "))
}

// PrintLongFormat prints role info in long format
func PrintLongFormat(w io.Writer, info *RoleInfo) {
	cfg := info.Config

	fmt.Fprintf(w, "\n%s\n", ruleLine)
	fmt.Fprintf(w, "Role: %s\n", info.Name)
	fmt.Fprintf(w, "%s\n\n", ruleLine)

	fmt.Fprintf(w, "Configuration (%s):\n", info.Source)
	fmt.Fprintf(w, "  Runners:         %s\n", strings.Join(cfg.Runners(), ", "))
	fmt.Fprintf(w, "  Matrix:          %s\n", yesNo(cfg.UsesMatrix()))
	fmt.Fprintf(w, "  Free disk space: %s\n", yesNo(cfg.FreeDiskSpace))
	fmt.Fprintf(w, "  Vault:           %s\n", yesNo(cfg.NeedsVault))
	fmt.Fprintf(w, "  GitHub token:    %s\n\n", yesNo(cfg.NeedsGithubToken))

	if len(cfg.ExtraVars) > 0 {
		fmt.Fprintf(w, "Extra Vars:\n")
		for _, v := range cfg.ExtraVars {
			fmt.Fprintf(w, "  • %-28s = %v\n", v.Name, v.Value)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(cfg.VerificationCommands) > 0 {
		fmt.Fprintf(w, "Verification Commands:\n")
		for i, c := range cfg.VerificationCommands {
			fmt.Fprintf(w, "  %d. %s\n", i+1, c)
		}
		fmt.Fprintf(w, "\n")
	}

	status := "missing"
	if info.WorkflowFile {
		status = "present"
	}
	fmt.Fprintf(w, "Workflow:\n")
	fmt.Fprintf(w, "  Job:  %s\n", info.JobID)
	fmt.Fprintf(w, "  File: %s (%s)\n", info.WorkflowPath, status)

	fmt.Fprintf(w, "%s\n\n", ruleLine)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
