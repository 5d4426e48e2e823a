package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/roleci/internal/model"
	"gopkg.in/yaml.v3"
)

// Renderer turns resolved role configuration into workflow documents
type Renderer struct {
	// Branch is the branch the push and pull_request triggers listen on
	Branch string
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{Branch: DefaultBranch}
}

// JobID returns the ID of the test job generated for role
func JobID(role string) string {
	return role + "-test"
}

// VerifyStepName returns the name of the post-install verification step
func VerifyStepName(role string) string {
	return fmt.Sprintf("Verify %s installation", role)
}

// RenderWorkflow assembles the workflow document for role. It has no side effects.
func (r *Renderer) RenderWorkflow(role string, cfg model.RoleConfig) (*model.Workflow, error) {
	if len(cfg.UbuntuVersions) == 0 {
		return nil, fmt.Errorf("role %s has no ubuntu versions", role)
	}

	inventoryStep, err := r.inventoryStep(role, cfg)
	if err != nil {
		return nil, err
	}

	steps := make([]model.Step, 0, 9)
	if cfg.FreeDiskSpace {
		steps = append(steps, model.Step{Name: StepFreeDiskSpace, Uses: freeDiskSpaceAction})
	}
	steps = append(steps,
		model.Step{Name: StepCheckout, Uses: checkoutAction},
		model.Step{Name: StepPipInstall, Run: "python3 -m pip install -r requirements.txt"},
		model.Step{Name: StepGalaxyInstall, Run: "ansible-galaxy install -r requirements.yml"},
		model.Step{Name: StepSSHKeypair, Run: `mkdir -p .ssh && ssh-keygen -b 2048 -t rsa -f ~/.ssh/id_rsa -q -N ""`},
		model.Step{Name: StepGnuPGFolder, Run: "mkdir -p .gnupg"},
		inventoryStep,
		r.testStep(role, cfg),
	)
	if len(cfg.VerificationCommands) > 0 {
		steps = append(steps, model.Step{
			Name: VerifyStepName(role),
			Run:  strings.Join(cfg.VerificationCommands, "\n") + "\n",
		})
	}

	job := model.Job{Steps: steps}
	if cfg.UsesMatrix() {
		job.Strategy = &model.Strategy{Matrix: model.Matrix{RunsOn: cfg.Runners()}}
		job.RunsOn = matrixRunsOn
	} else {
		job.RunsOn = cfg.Runners()[0]
	}

	rolePaths := fmt.Sprintf("roles/%s/**", role)
	return &model.Workflow{
		Name: fmt.Sprintf("%s CI", role),
		On: model.Triggers{
			WorkflowDispatch: &model.Dispatch{},
			PullRequest: &model.RefFilter{
				Branches: []string{r.branch()},
				Paths: []string{
					rolePaths,
					".github/workflows/**",
					"requirements.txt",
					"requirements.yml",
				},
			},
			Push: &model.RefFilter{
				Branches: []string{r.branch()},
				Paths:    []string{rolePaths},
			},
		},
		Jobs: map[string]model.Job{JobID(role): job},
	}, nil
}

// Inventory builds the single-host inventory used by the test playbook.
// Extra vars are applied over the baseline connection settings in order.
func Inventory(cfg model.RoleConfig) model.Inventory {
	hostVars := baselineHostVars()
	hostVars.Merge(cfg.ExtraVars)

	return model.Inventory{
		All: model.InventoryGroup{
			Hosts: map[string]model.Vars{"localhost": hostVars},
		},
	}
}

func (r *Renderer) inventoryStep(role string, cfg model.RoleConfig) (model.Step, error) {
	contents, err := encodeYAML(Inventory(cfg))
	if err != nil {
		return model.Step{}, fmt.Errorf("failed to render inventory for role %s: %w", role, err)
	}

	return model.Step{
		Name: StepWriteInventory,
		Uses: writeFileAction,
		With: model.Vars{
			{Name: "path", Value: fmt.Sprintf("./roles/%s/%s", role, inventoryFile)},
			{Name: "write-mode", Value: "overwrite"},
			{Name: "contents", Value: string(contents)},
		},
	}, nil
}

func (r *Renderer) testStep(role string, cfg model.RoleConfig) model.Step {
	env := model.Vars{{Name: EnvRolesPath, Value: rolesPathValue}}
	if cfg.NeedsVault {
		env.Set(EnvVaultPasswordFile, "${{ github.workspace }}/playbooks/vault-env")
		env.Set(EnvVaultPassword, "${{ secrets.ANSIBLE_VAULT_PASSWORD }}")
	}
	if cfg.NeedsGithubToken {
		env.Set(EnvGithubToken, "${{ secrets.GITHUB_TOKEN }}")
	}

	return model.Step{
		Name:             StepRunTests,
		Run:              fmt.Sprintf("ansible-playbook -v -i %s %s", inventoryFile, testPlaybook),
		WorkingDirectory: fmt.Sprintf("./roles/%s", role),
		Env:              env,
	}
}

func (r *Renderer) branch() string {
	if r.Branch == "" {
		return DefaultBranch
	}
	return r.Branch
}

// ParseInventory decodes inventory YAML, as embedded in the hosts-ci step
func ParseInventory(data string) (model.Inventory, error) {
	var inv model.Inventory
	if err := yaml.Unmarshal([]byte(data), &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse inventory: %w", err)
	}
	return inv, nil
}
