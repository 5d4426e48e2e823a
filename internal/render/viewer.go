package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sourceplane/roleci/internal/model"
)

// WorkflowViewer provides human-readable views of generated workflows
type WorkflowViewer struct {
	workflows map[string]*model.Workflow
}

// NewWorkflowViewer creates a viewer over workflows keyed by role name
func NewWorkflowViewer(workflows map[string]*model.Workflow) *WorkflowViewer {
	return &WorkflowViewer{workflows: workflows}
}

// ViewTree returns a tree of roles, their job, runners and steps
func (wv *WorkflowViewer) ViewTree() string {
	if len(wv.workflows) == 0 {
		return "No workflows"
	}

	roles := make([]string, 0, len(wv.workflows))
	for role := range wv.workflows {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	var sb strings.Builder
	steps := 0
	for i, role := range roles {
		isLastRole := i == len(roles)-1

		rolePrefix := "├─ "
		connector := "│  "
		if isLastRole {
			rolePrefix = "└─ "
			connector = "   "
		}

		jobID, job, ok := wv.workflows[role].Job()
		if !ok {
			sb.WriteString(fmt.Sprintf("%s%s (no job)\n", rolePrefix, role))
			continue
		}
		steps += len(job.Steps)

		sb.WriteString(fmt.Sprintf("%s%s [%s]\n", rolePrefix, role, jobID))
		sb.WriteString(fmt.Sprintf("%s├─ runs-on: %s\n", connector, strings.Join(runners(job), ", ")))

		for j, step := range job.Steps {
			stepPrefix := connector + "├─ "
			if j == len(job.Steps)-1 {
				stepPrefix = connector + "└─ "
			}

			stepLine := fmt.Sprintf("%s%s", stepPrefix, step.Name)
			switch {
			case step.Uses != "":
				stepLine += fmt.Sprintf(" | uses %s", step.Uses)
			case step.Run != "":
				// Truncate long run commands for readability
				runCmd := []rune(strings.SplitN(step.Run, "\n", 2)[0])
				if len(runCmd) > 60 {
					runCmd = append(runCmd[:57], []rune("...")...)
				}
				stepLine += fmt.Sprintf(" | %s", string(runCmd))
			}
			if len(step.Env) > 0 {
				stepLine += fmt.Sprintf(" (env: %s)", strings.Join(step.Env.Names(), ", "))
			}
			sb.WriteString(stepLine + "\n")
		}
	}

	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	sb.WriteString(fmt.Sprintf("Summary: %d workflows, %d steps\n", len(roles), steps))

	return sb.String()
}

func runners(job model.Job) []string {
	if job.Strategy != nil && len(job.Strategy.Matrix.RunsOn) > 0 {
		return job.Strategy.Matrix.RunsOn
	}
	return []string{job.RunsOn}
}
