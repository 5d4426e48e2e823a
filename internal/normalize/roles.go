package normalize

import (
	"fmt"
	"strings"

	"github.com/sourceplane/roleci/internal/model"
)

// RoleConfig transforms a role record into canonical form: at least one Ubuntu
// version and non-nil collections. The input is not modified.
func RoleConfig(cfg model.RoleConfig) model.RoleConfig {
	out := cfg.Clone()

	versions := make([]string, 0, len(out.UbuntuVersions))
	for _, v := range out.UbuntuVersions {
		if v = strings.TrimSpace(v); v != "" {
			versions = append(versions, v)
		}
	}
	if len(versions) == 0 {
		versions = []string{model.DefaultUbuntuVersion}
	}
	out.UbuntuVersions = versions

	if out.ExtraVars == nil {
		out.ExtraVars = model.Vars{}
	}
	if out.VerificationCommands == nil {
		out.VerificationCommands = []string{}
	}

	return out
}

// RoleOverrides checks override names and normalizes every record
func RoleOverrides(overrides map[string]model.RoleConfig) (map[string]model.RoleConfig, error) {
	normalized := make(map[string]model.RoleConfig, len(overrides))
	for name, cfg := range overrides {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("role override must have a name")
		}
		if strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("role override %q must not contain a path separator", name)
		}
		for _, item := range cfg.ExtraVars {
			switch item.Value.(type) {
			case string, bool:
			default:
				return nil, fmt.Errorf("role %s: extra var %s must be a string or boolean, got %T", name, item.Name, item.Value)
			}
		}
		normalized[name] = RoleConfig(cfg)
	}
	return normalized, nil
}
