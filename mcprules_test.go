package mcprules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/mcprules/config"
	"github.com/localrivet/mcprules/rules"
)

func TestLoadConfigFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvUserProfile, "")

	require.NoError(t, os.MkdirAll(filepath.Join(home, config.CursorDir), 0o755))
	require.NoError(t, os.WriteFile(config.DefaultPath(home), []byte(`{
	  "mcpConfig": {"enabled": false, "servers": [
	    {"provider": "anthropic", "name": "A"},
	    {"provider": "openai", "name": "B"}
	  ]}
	}`), 0o600))

	doc := LoadConfig()
	assert.False(t, doc.MCPConfig.Enabled)
	assert.Equal(t, []config.ServerDescriptor{{Provider: "anthropic", Name: "A"}}, GetServersByType(doc, "anthropic"))
	assert.Empty(t, GetServersByType(doc, "cohere"))

	cfg := Resolve()
	assert.Len(t, cfg.MCP.Config.Servers, 2)
	assert.Len(t, cfg.Rules, len(rules.DefaultRuleSpecs()))
}

func TestLoadConfigWithoutHome(t *testing.T) {
	t.Setenv(config.EnvHome, "")
	t.Setenv(config.EnvUserProfile, "")

	assert.Equal(t, config.DefaultDocument(), LoadConfig())
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	assert.Equal(t, config.DefaultDocument(), LoadConfig())
}
