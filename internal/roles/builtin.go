package roles

import "github.com/sourceplane/roleci/internal/model"

// builtin holds the per-role CI settings compiled into the generator.
// Roles without an entry get DefaultConfig.
var builtin = map[string]model.RoleConfig{
	"rocm_setup": {
		UbuntuVersions: []string{"24.04"},
		FreeDiskSpace:  true,
		ExtraVars: model.Vars{
			{Name: "rocm_setup_wsl_install", Value: false},
			{Name: "rocm_setup_rocm_version", Value: "latest"},
			{Name: "rocm_setup_amdgpu_version", Value: "latest"},
			{Name: "rocm_setup_run_checks", Value: false},
			{Name: "rocm_setup_install_metrics_exporter", Value: false},
		},
		VerificationCommands: []string{
			"systemctl status amdgpu-dkms || true",
			"dpkg -l | grep rocm || true",
		},
		NeedsVault: true,
	},
	"grafana_setup": {
		UbuntuVersions: []string{"24.04"},
		ExtraVars: model.Vars{
			{Name: "vault_grafana_setup_password", Value: "test_ci_password_123"},
			{Name: "grafana_setup_discover_node_exporters", Value: false},
			{Name: "grafana_setup_discover_amd_gpu_exporters", Value: false},
		},
		VerificationCommands: []string{
			"systemctl status grafana-server || true",
			"systemctl status prometheus || true",
			"systemctl status prometheus-node-exporter || true",
			"curl -s http://localhost:3000/api/health || true",
			"curl -s http://localhost:9090/-/healthy || true",
			"curl -s http://localhost:9100/metrics | head -10 || true",
		},
		NeedsVault: true,
	},
	"rdma_setup": {
		UbuntuVersions: []string{"24.04"},
		VerificationCommands: []string{
			"dpkg -l | grep rdma || true",
			"ls -la /usr/bin/*ibv* || true",
		},
	},
	"git_setup": {
		UbuntuVersions: []string{"24.04"},
		ExtraVars: model.Vars{
			{Name: "git_setup_enable_gpg_signing", Value: false},
			{Name: "git_setup_gh_authenticate", Value: true},
		},
		VerificationCommands: []string{
			"git --version",
			"gh --version",
			"git config --global --list",
			"gh auth status || true",
		},
		NeedsGithubToken: true,
	},
	"github_runner": {
		UbuntuVersions: []string{"24.04"},
		ExtraVars: model.Vars{
			{Name: "github_runner_url", Value: "https://github.com/sbates130272/batesste-ansible"},
			// no registration token in CI; the role's test skips registration
			{Name: "github_runner_token", Value: ""},
		},
		VerificationCommands: []string{
			"id github-runner || true",
			"ls -la /opt/github-runner || true",
			"systemctl status github-runner || true",
		},
	},
	"mutt_setup": {
		UbuntuVersions: []string{"24.04"},
		VerificationCommands: []string{
			"mutt -v | head -5",
			"ls -la ~/.mutt/ || true",
			"ls -la ~/.mutt/scripts/mutt_oauth2.py || true",
			"ls -la ~/.mutt/tokens/ || true",
		},
		NeedsVault: true,
	},
}

// DefaultConfig returns the record used for roles with no explicit entry
func DefaultConfig() model.RoleConfig {
	return model.RoleConfig{
		UbuntuVersions:       []string{model.DefaultUbuntuVersion},
		ExtraVars:            model.Vars{},
		VerificationCommands: []string{},
	}
}
