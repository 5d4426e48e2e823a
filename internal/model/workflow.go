package model

// Workflow is a GitHub Actions workflow document generated for one role
type Workflow struct {
	Name string         `yaml:"name"`
	On   Triggers       `yaml:"on"`
	Jobs map[string]Job `yaml:"jobs"`
}

// Triggers holds the events that start the workflow
type Triggers struct {
	WorkflowDispatch *Dispatch  `yaml:"workflow_dispatch,omitempty"`
	PullRequest      *RefFilter `yaml:"pull_request,omitempty"`
	Push             *RefFilter `yaml:"push,omitempty"`
}

// Dispatch is the (empty) workflow_dispatch configuration
type Dispatch struct{}

// RefFilter restricts an event to branches and changed paths
type RefFilter struct {
	Branches []string `yaml:"branches,omitempty"`
	Paths    []string `yaml:"paths,omitempty"`
}

// Job is a single job in the workflow
type Job struct {
	Strategy *Strategy `yaml:"strategy,omitempty"`
	RunsOn   string    `yaml:"runs-on"`
	Steps    []Step    `yaml:"steps"`
}

// Strategy wraps the job matrix
type Strategy struct {
	Matrix Matrix `yaml:"matrix"`
}

// Matrix lists the runner labels the job fans out over
type Matrix struct {
	RunsOn []string `yaml:"runs-on"`
}

// Step is one entry of a job's steps list
type Step struct {
	Name             string `yaml:"name"`
	Uses             string `yaml:"uses,omitempty"`
	With             Vars   `yaml:"with,omitempty"`
	Run              string `yaml:"run,omitempty"`
	WorkingDirectory string `yaml:"working-directory,omitempty"`
	Env              Vars   `yaml:"env,omitempty"`
}

// Job returns the workflow's only job along with its ID
func (w *Workflow) Job() (string, Job, bool) {
	for id, job := range w.Jobs {
		return id, job, true
	}
	return "", Job{}, false
}

// Inventory is an Ansible YAML inventory
type Inventory struct {
	All InventoryGroup `yaml:"all"`
}

// InventoryGroup maps host names to their host variables
type InventoryGroup struct {
	Hosts map[string]Vars `yaml:"hosts"`
}
