package render

import (
	"strings"
	"testing"

	"github.com/sourceplane/roleci/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() model.RoleConfig {
	return model.RoleConfig{UbuntuVersions: []string{"24.04"}}
}

func renderAndParse(t *testing.T, role string, cfg model.RoleConfig) (*model.Workflow, model.Job, string) {
	t.Helper()
	r := NewRenderer()

	workflow, err := r.RenderWorkflow(role, cfg)
	require.NoError(t, err)

	data, err := r.RenderYAML(workflow)
	require.NoError(t, err)

	parsed, err := ParseWorkflow(data)
	require.NoError(t, err)

	jobID, job, ok := parsed.Job()
	require.True(t, ok)
	require.Equal(t, JobID(role), jobID)
	require.Len(t, parsed.Jobs, 1)

	return parsed, job, string(data)
}

func stepNames(job model.Job) []string {
	names := make([]string, len(job.Steps))
	for i, step := range job.Steps {
		names[i] = step.Name
	}
	return names
}

func findStep(t *testing.T, job model.Job, name string) model.Step {
	t.Helper()
	for _, step := range job.Steps {
		if step.Name == name {
			return step
		}
	}
	t.Fatalf("step %q not found in %v", name, stepNames(job))
	return model.Step{}
}

func TestRenderWorkflow_SingleVersionHasNoMatrix(t *testing.T) {
	_, job, out := renderAndParse(t, "sample", defaultConfig())

	assert.Nil(t, job.Strategy)
	assert.Equal(t, "ubuntu-24.04", job.RunsOn)
	assert.NotContains(t, out, "strategy:")
	assert.NotContains(t, out, "matrix")
}

func TestRenderWorkflow_MultipleVersionsUseMatrix(t *testing.T) {
	cfg := model.RoleConfig{UbuntuVersions: []string{"22.04", "24.04", "20.04"}}
	_, job, _ := renderAndParse(t, "sample", cfg)

	require.NotNil(t, job.Strategy)
	assert.Equal(t, []string{"ubuntu-22.04", "ubuntu-24.04", "ubuntu-20.04"}, job.Strategy.Matrix.RunsOn)
	assert.Equal(t, "${{ matrix.runs-on }}", job.RunsOn)
}

func TestRenderWorkflow_NoVersionsIsAnError(t *testing.T) {
	_, err := NewRenderer().RenderWorkflow("sample", model.RoleConfig{})
	assert.Error(t, err)
}

func TestRenderWorkflow_Header(t *testing.T) {
	workflow, _, out := renderAndParse(t, "git_setup", defaultConfig())

	assert.Equal(t, "git_setup CI", workflow.Name)
	require.NotNil(t, workflow.On.WorkflowDispatch)
	require.NotNil(t, workflow.On.PullRequest)
	require.NotNil(t, workflow.On.Push)

	assert.Equal(t, []string{"main"}, workflow.On.PullRequest.Branches)
	assert.Equal(t, []string{
		"roles/git_setup/**",
		".github/workflows/**",
		"requirements.txt",
		"requirements.yml",
	}, workflow.On.PullRequest.Paths)
	assert.Equal(t, []string{"main"}, workflow.On.Push.Branches)
	assert.Equal(t, []string{"roles/git_setup/**"}, workflow.On.Push.Paths)

	assert.Contains(t, out, "workflow_dispatch: {}")
	assert.Contains(t, out, `"on":`)
}

func TestRenderWorkflow_CustomBranch(t *testing.T) {
	r := &Renderer{Branch: "develop"}
	workflow, err := r.RenderWorkflow("sample", defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"develop"}, workflow.On.PullRequest.Branches)
	assert.Equal(t, []string{"develop"}, workflow.On.Push.Branches)
}

func TestRenderWorkflow_StepOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.RoleConfig
		want []string
	}{
		{
			name: "defaults",
			cfg:  defaultConfig(),
			want: []string{
				StepCheckout, StepPipInstall, StepGalaxyInstall, StepSSHKeypair,
				StepGnuPGFolder, StepWriteInventory, StepRunTests,
			},
		},
		{
			name: "disk cleanup and verification",
			cfg: model.RoleConfig{
				UbuntuVersions:       []string{"24.04"},
				FreeDiskSpace:        true,
				VerificationCommands: []string{"true"},
			},
			want: []string{
				StepFreeDiskSpace, StepCheckout, StepPipInstall, StepGalaxyInstall,
				StepSSHKeypair, StepGnuPGFolder, StepWriteInventory, StepRunTests,
				"Verify sample installation",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, job, _ := renderAndParse(t, "sample", tt.cfg)
			assert.Equal(t, tt.want, stepNames(job))
		})
	}
}

func TestRenderWorkflow_FixedSteps(t *testing.T) {
	_, job, _ := renderAndParse(t, "sample", defaultConfig())

	assert.Equal(t, "actions/checkout@v4.2.2", findStep(t, job, StepCheckout).Uses)
	assert.Equal(t, "python3 -m pip install -r requirements.txt", findStep(t, job, StepPipInstall).Run)
	assert.Equal(t, "ansible-galaxy install -r requirements.yml", findStep(t, job, StepGalaxyInstall).Run)
	assert.Equal(t, `mkdir -p .ssh && ssh-keygen -b 2048 -t rsa -f ~/.ssh/id_rsa -q -N ""`, findStep(t, job, StepSSHKeypair).Run)
	assert.Equal(t, "mkdir -p .gnupg", findStep(t, job, StepGnuPGFolder).Run)

	testStep := findStep(t, job, StepRunTests)
	assert.Equal(t, "ansible-playbook -v -i hosts-ci ./tests/test.yml", testStep.Run)
	assert.Equal(t, "./roles/sample", testStep.WorkingDirectory)
}

func TestRenderWorkflow_InventoryRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		extraVars model.Vars
		want      model.Vars
	}{
		{
			name: "baseline only",
			want: model.Vars{
				{Name: "ansible_connection", Value: "local"},
				{Name: "ansible_user", Value: "runner"},
			},
		},
		{
			name: "extra vars in order",
			extraVars: model.Vars{
				{Name: "rocm_setup_wsl_install", Value: false},
				{Name: "rocm_setup_rocm_version", Value: "latest"},
				{Name: "github_runner_token", Value: ""},
				{Name: "git_setup_gh_authenticate", Value: true},
			},
			want: model.Vars{
				{Name: "ansible_connection", Value: "local"},
				{Name: "ansible_user", Value: "runner"},
				{Name: "rocm_setup_wsl_install", Value: false},
				{Name: "rocm_setup_rocm_version", Value: "latest"},
				{Name: "github_runner_token", Value: ""},
				{Name: "git_setup_gh_authenticate", Value: true},
			},
		},
		{
			name:      "extra var replaces baseline in place",
			extraVars: model.Vars{{Name: "ansible_user", Value: "ci"}, {Name: "x", Value: "y"}},
			want: model.Vars{
				{Name: "ansible_connection", Value: "local"},
				{Name: "ansible_user", Value: "ci"},
				{Name: "x", Value: "y"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.ExtraVars = tt.extraVars
			_, job, out := renderAndParse(t, "sample", cfg)

			step := findStep(t, job, StepWriteInventory)
			assert.Equal(t, "DamianReeves/write-file-action@v1.3", step.Uses)
			assert.Equal(t, []string{"path", "write-mode", "contents"}, step.With.Names())

			path, _ := step.With.Get("path")
			assert.Equal(t, "./roles/sample/hosts-ci", path)
			mode, _ := step.With.Get("write-mode")
			assert.Equal(t, "overwrite", mode)

			contents, ok := step.With.Get("contents")
			require.True(t, ok)
			inv, err := ParseInventory(contents.(string))
			require.NoError(t, err)

			require.Len(t, inv.All.Hosts, 1)
			assert.Equal(t, tt.want, inv.All.Hosts["localhost"])
			assert.Contains(t, out, "contents: |\n")
		})
	}
}

func TestRenderWorkflow_TestStepEnv(t *testing.T) {
	tests := []struct {
		name  string
		vault bool
		token bool
		want  []string
	}{
		{name: "none", want: []string{EnvRolesPath}},
		{name: "vault", vault: true, want: []string{EnvRolesPath, EnvVaultPasswordFile, EnvVaultPassword}},
		{name: "token", token: true, want: []string{EnvRolesPath, EnvGithubToken}},
		{name: "both", vault: true, token: true, want: []string{EnvRolesPath, EnvVaultPasswordFile, EnvVaultPassword, EnvGithubToken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.NeedsVault = tt.vault
			cfg.NeedsGithubToken = tt.token
			_, job, _ := renderAndParse(t, "sample", cfg)

			env := findStep(t, job, StepRunTests).Env
			assert.Equal(t, tt.want, env.Names())

			rolesPath, _ := env.Get(EnvRolesPath)
			assert.Equal(t, "${{ github.workspace }}/roles", rolesPath)
			if tt.vault {
				file, _ := env.Get(EnvVaultPasswordFile)
				assert.Equal(t, "${{ github.workspace }}/playbooks/vault-env", file)
				password, _ := env.Get(EnvVaultPassword)
				assert.Equal(t, "${{ secrets.ANSIBLE_VAULT_PASSWORD }}", password)
			}
			if tt.token {
				token, _ := env.Get(EnvGithubToken)
				assert.Equal(t, "${{ secrets.GITHUB_TOKEN }}", token)
			}
		})
	}
}

func TestRenderWorkflow_VerificationStep(t *testing.T) {
	t.Run("omitted when empty", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.VerificationCommands = []string{}
		_, job, _ := renderAndParse(t, "sample", cfg)

		for _, step := range job.Steps {
			assert.False(t, strings.HasPrefix(step.Name, "Verify"), "unexpected step %s", step.Name)
		}
	})

	t.Run("one step with all commands in order", func(t *testing.T) {
		commands := []string{
			"systemctl status grafana-server || true",
			"curl -s http://localhost:9100/metrics | head -10 || true",
			"git --version",
		}
		cfg := defaultConfig()
		cfg.VerificationCommands = commands
		_, job, _ := renderAndParse(t, "grafana_setup", cfg)

		count := 0
		for _, step := range job.Steps {
			if step.Name == VerifyStepName("grafana_setup") {
				count++
			}
		}
		assert.Equal(t, 1, count)

		last := job.Steps[len(job.Steps)-1]
		assert.Equal(t, "Verify grafana_setup installation", last.Name)
		assert.Equal(t, commands, strings.Split(strings.TrimSuffix(last.Run, "\n"), "\n"))
	})
}

func TestRenderWorkflow_SampleEndToEnd(t *testing.T) {
	_, job, _ := renderAndParse(t, "sample", defaultConfig())

	require.NotEmpty(t, job.Steps)
	assert.Equal(t, StepCheckout, job.Steps[0].Name)
	assert.Equal(t, StepRunTests, job.Steps[len(job.Steps)-1].Name)
}

func TestRenderWorkflow_Deterministic(t *testing.T) {
	cfg := model.RoleConfig{
		UbuntuVersions:       []string{"22.04", "24.04"},
		FreeDiskSpace:        true,
		ExtraVars:            model.Vars{{Name: "b", Value: "1"}, {Name: "a", Value: true}},
		VerificationCommands: []string{"true", "false || true"},
		NeedsVault:           true,
		NeedsGithubToken:     true,
	}
	r := NewRenderer()

	first, err := r.RenderWorkflow("rocm_setup", cfg)
	require.NoError(t, err)
	second, err := r.RenderWorkflow("rocm_setup", cfg)
	require.NoError(t, err)

	a, err := r.Content("rocm_setup", first)
	require.NoError(t, err)
	b, err := r.Content("rocm_setup", second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderWorkflow_DoesNotModifyConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.ExtraVars = model.Vars{{Name: "ansible_user", Value: "ci"}}

	_, err := NewRenderer().RenderWorkflow("sample", cfg)
	require.NoError(t, err)

	assert.Equal(t, model.Vars{{Name: "ansible_user", Value: "ci"}}, cfg.ExtraVars)
}
