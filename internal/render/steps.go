package render

import "github.com/sourceplane/roleci/internal/model"

// Actions pinned by every generated workflow
const (
	freeDiskSpaceAction = "jlumbroso/free-disk-space@v1.3.1"
	checkoutAction      = "actions/checkout@v4.2.2"
	writeFileAction     = "DamianReeves/write-file-action@v1.3"
)

// DefaultBranch is the branch the generated triggers listen on
const DefaultBranch = "main"

const (
	inventoryFile  = "hosts-ci"
	testPlaybook   = "./tests/test.yml"
	matrixRunsOn   = "${{ matrix.runs-on }}"
	rolesPathValue = "${{ github.workspace }}/roles"
)

// Environment variable names wired into the test step
const (
	EnvRolesPath         = "ANSIBLE_ROLES_PATH"
	EnvVaultPasswordFile = "ANSIBLE_VAULT_PASSWORD_FILE"
	EnvVaultPassword     = "ANSIBLE_VAULT_PASSWORD"
	EnvGithubToken       = "GITHUB_TOKEN"
)

// Names of the fixed steps
const (
	StepFreeDiskSpace  = "Free Disk Space (Ubuntu)"
	StepCheckout       = "Checkout code"
	StepPipInstall     = "Install pip packages"
	StepGalaxyInstall  = "Run ansible-galaxy to install collections and roles"
	StepSSHKeypair     = "Create an SSH keypair"
	StepGnuPGFolder    = "Create a GNU PGP folder"
	StepWriteInventory = "Write hosts-ci file"
	StepRunTests       = "Run the test playbook against the local runner"
)

// baselineHostVars are the connection settings every inventory starts from
func baselineHostVars() model.Vars {
	return model.Vars{
		{Name: "ansible_connection", Value: "local"},
		{Name: "ansible_user", Value: "runner"},
	}
}
