package model

// DefaultUbuntuVersion is the runner image used when a role names none
const DefaultUbuntuVersion = "24.04"

// RoleConfig describes the test environment a role needs in CI
type RoleConfig struct {
	UbuntuVersions       []string `yaml:"ubuntu_versions"`
	FreeDiskSpace        bool     `yaml:"free_disk_space"`
	ExtraVars            Vars     `yaml:"extra_vars"`
	VerificationCommands []string `yaml:"verification_commands"`
	NeedsVault           bool     `yaml:"needs_vault"`
	NeedsGithubToken     bool     `yaml:"needs_github_token"` // optional, absent means false
}

// Runners maps each Ubuntu version to its GitHub-hosted runner label
func (c RoleConfig) Runners() []string {
	runners := make([]string, len(c.UbuntuVersions))
	for i, version := range c.UbuntuVersions {
		runners[i] = "ubuntu-" + version
	}
	return runners
}

// UsesMatrix reports whether the job fans out over several runners
func (c RoleConfig) UsesMatrix() bool {
	return len(c.UbuntuVersions) > 1
}

// Clone returns a deep copy
func (c RoleConfig) Clone() RoleConfig {
	out := c
	out.UbuntuVersions = append([]string(nil), c.UbuntuVersions...)
	out.VerificationCommands = append([]string(nil), c.VerificationCommands...)
	out.ExtraVars = c.ExtraVars.Clone()
	return out
}

// RolesFile is the on-disk shape of a role overrides document
type RolesFile struct {
	Roles map[string]RoleConfig `yaml:"roles"`
}
