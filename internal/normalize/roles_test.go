package normalize

import (
	"testing"

	"github.com/sourceplane/roleci/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleConfig(t *testing.T) {
	tests := []struct {
		name         string
		input        model.RoleConfig
		wantVersions []string
	}{
		{
			name:         "empty record gets default version",
			input:        model.RoleConfig{},
			wantVersions: []string{"24.04"},
		},
		{
			name:         "blank versions are dropped",
			input:        model.RoleConfig{UbuntuVersions: []string{" ", "22.04"}},
			wantVersions: []string{"22.04"},
		},
		{
			name:         "order is kept",
			input:        model.RoleConfig{UbuntuVersions: []string{"24.04", "22.04"}},
			wantVersions: []string{"24.04", "22.04"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RoleConfig(tt.input)
			assert.Equal(t, tt.wantVersions, out.UbuntuVersions)
			assert.NotNil(t, out.ExtraVars)
			assert.NotNil(t, out.VerificationCommands)
		})
	}
}

func TestRoleConfig_DoesNotModifyInput(t *testing.T) {
	input := model.RoleConfig{UbuntuVersions: []string{"", "22.04"}}
	_ = RoleConfig(input)

	assert.Equal(t, []string{"", "22.04"}, input.UbuntuVersions)
}

func TestRoleOverrides(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		out, err := RoleOverrides(map[string]model.RoleConfig{
			"custom": {ExtraVars: model.Vars{{Name: "a", Value: "b"}, {Name: "c", Value: true}}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"24.04"}, out["custom"].UbuntuVersions)
	})

	t.Run("numeric extra var", func(t *testing.T) {
		_, err := RoleOverrides(map[string]model.RoleConfig{
			"custom": {ExtraVars: model.Vars{{Name: "port", Value: 8080}}},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "extra var port")
	})

	t.Run("path in name", func(t *testing.T) {
		_, err := RoleOverrides(map[string]model.RoleConfig{"../evil": {}})
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := RoleOverrides(map[string]model.RoleConfig{"": {}})
		assert.Error(t, err)
	})
}
