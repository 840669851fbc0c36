package rules

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/mcprules/config"
)

const descriptor = `{
  "mcpConfig": {
    "enabled": true,
    "servers": [
      {"name": "claude", "provider": "anthropic", "type": "sse", "baseUrl": "https://api.anthropic.com"},
      {"name": "gpt", "provider": "openai"},
      {"name": "llama", "provider": "ollama", "model": "llama3"},
      {"name": "qwen", "provider": "ollama"}
    ]
  }
}`

func sourceWith(content string) config.MapSource {
	src := config.MapSource{
		Env:   map[string]string{config.EnvHome: "/home/dev"},
		Files: map[string][]byte{},
	}
	if content != "" {
		src.Files[config.DefaultPath("/home/dev")] = []byte(content)
	}
	return src
}

func TestCompose(t *testing.T) {
	doc, err := config.LoadFromJSON([]byte(descriptor), nil)
	require.NoError(t, err)

	cfg := Compose(doc, DefaultRuleSpecs())

	assert.True(t, cfg.MCP.Enabled)
	assert.True(t, cfg.MCP.Config.PreferMCP)
	assert.Len(t, cfg.MCP.Config.Servers, 4)

	require.Len(t, cfg.Rules, 4)
	byPattern := make(map[string]Rule)
	for _, rule := range cfg.Rules {
		assert.True(t, rule.MCP.Enabled)
		assert.True(t, rule.MCP.Config.PreferMCP)
		assert.NotEmpty(t, rule.Description)
		byPattern[rule.Pattern] = rule
	}

	docs := byPattern["**/*.{md,mdx,txt,rst}"]
	require.Len(t, docs.MCP.Config.Servers, 1)
	assert.Equal(t, "claude", docs.MCP.Config.Servers[0].Name)

	python := byPattern["**/*.{py,pyi}"]
	assert.NotNil(t, python.MCP.Config.Servers)
	assert.Empty(t, python.MCP.Config.Servers)

	data := byPattern["**/{*.json,*.yaml,*.yml,*.test.*,*_test.*}"]
	require.Len(t, data.MCP.Config.Servers, 2)
	assert.Equal(t, "llama", data.MCP.Config.Servers[0].Name)
	assert.Equal(t, "qwen", data.MCP.Config.Servers[1].Name)
}

func TestComposeDefaultDocument(t *testing.T) {
	cfg := Compose(config.DefaultDocument(), DefaultRuleSpecs())

	assert.True(t, cfg.MCP.Enabled)
	assert.Empty(t, cfg.MCP.Config.Servers)
	for _, rule := range cfg.Rules {
		assert.True(t, rule.MCP.Enabled, rule.Pattern)
		assert.Empty(t, rule.MCP.Config.Servers, rule.Pattern)
	}
}

func TestConfigurationJSONShape(t *testing.T) {
	doc, err := config.LoadFromJSON([]byte(`{"mcpConfig": {"servers": [{"name": "gpt", "provider": "openai"}]}}`), nil)
	require.NoError(t, err)

	cfg := Compose(doc, []RuleSpec{{Description: "ts", Pattern: "**/*.ts", Provider: ProviderOpenAI}})
	out, err := json.Marshal(cfg)
	require.NoError(t, err)

	assert.JSONEq(t, `{
	  "mcp": {"enabled": true, "config": {"preferMCP": true, "servers": [{"name": "gpt", "provider": "openai"}]}},
	  "rules": [{
	    "description": "ts",
	    "pattern": "**/*.ts",
	    "mcp": {"enabled": true, "config": {"preferMCP": true, "servers": [{"name": "gpt", "provider": "openai"}]}}
	  }]
	}`, string(out))
}

func TestResolverResolve(t *testing.T) {
	r := NewResolver(WithSource(sourceWith(descriptor)))

	assert.Empty(t, r.ServersByType(ProviderOllama), "nothing loaded before the first resolve")

	cfg := r.Resolve()
	assert.Len(t, cfg.MCP.Config.Servers, 4)
	assert.NoError(t, r.LastError())

	ollama := r.ServersByType(ProviderOllama)
	require.Len(t, ollama, 2)
	assert.Equal(t, "llama", ollama[0].Name)
	assert.Equal(t, "llama3", ollama[0].Extra["model"])
	assert.Empty(t, r.ServersByType("cohere"))
}

func TestResolverMissingConfigLogsAndDegrades(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := NewResolver(WithSource(sourceWith("")), WithLogger(logger))
	cfg := r.Resolve()

	assert.Equal(t, Compose(config.DefaultDocument(), DefaultRuleSpecs()), cfg)
	assert.Equal(t, config.DefaultDocument(), r.Document())
	assert.Equal(t, config.ReasonNotFound, config.ReasonOf(r.LastError()))
	assert.Contains(t, buf.String(), "mcp config unavailable")
	assert.Contains(t, buf.String(), "reason=not-found")
	assert.Contains(t, buf.String(), "resolution=")
}

func TestResolverReloadsEachTime(t *testing.T) {
	src := sourceWith(descriptor)
	r := NewResolver(WithSource(src))
	r.Resolve()
	require.Len(t, r.ServersByType(ProviderOpenAI), 1)

	src.Files[config.DefaultPath("/home/dev")] = []byte(`{"mcpConfig": {"servers": []}}`)
	r.Resolve()
	assert.Empty(t, r.ServersByType(ProviderOpenAI))
}

func TestResolverOptions(t *testing.T) {
	specs := []RuleSpec{{Description: "go", Pattern: "**/*.go", Provider: ProviderAnthropic}}
	r := NewResolver(
		WithSource(config.MapSource{Files: map[string][]byte{"/etc/mcp.json": []byte(descriptor)}}),
		WithRuleSpecs(specs),
		WithLoadOptions(config.WithPath("/etc/mcp.json")),
	)

	cfg := r.Resolve()
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "**/*.go", cfg.Rules[0].Pattern)
	require.Len(t, cfg.Rules[0].MCP.Config.Servers, 1)
	assert.Equal(t, "claude", cfg.Rules[0].MCP.Config.Servers[0].Name)
}
