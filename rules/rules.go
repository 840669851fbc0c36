// Package rules composes the editor's AI-assistant configuration: one always-on
// MCP block plus per-file-type rules that prefer servers of a single provider.
package rules

import "github.com/localrivet/mcprules/config"

// ServerConfig holds the servers an MCP block prefers.
type ServerConfig struct {
	PreferMCP bool                      `json:"preferMCP" yaml:"preferMCP"`
	Servers   []config.ServerDescriptor `json:"servers" yaml:"servers"`
}

// MCPSettings is the "mcp" block the editor reads.
type MCPSettings struct {
	Enabled bool         `json:"enabled" yaml:"enabled"`
	Config  ServerConfig `json:"config" yaml:"config"`
}

// Rule pairs a file glob with the MCP settings applied to matching files.
type Rule struct {
	Description string      `json:"description" yaml:"description"`
	Pattern     string      `json:"pattern" yaml:"pattern"`
	MCP         MCPSettings `json:"mcp" yaml:"mcp"`
}

// Configuration is the value handed to the editor.
type Configuration struct {
	MCP   MCPSettings `json:"mcp" yaml:"mcp"`
	Rules []Rule      `json:"rules" yaml:"rules"`
}

// RuleSpec is an authored rule: which files, and which provider they prefer.
type RuleSpec struct {
	Description string
	Pattern     string
	Provider    string
}

// Provider labels used by the default rules.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderMistral   = "mistral"
	ProviderOllama    = "ollama"
)

// DefaultRuleSpecs returns the built-in rule set.
func DefaultRuleSpecs() []RuleSpec {
	return []RuleSpec{
		{
			Description: "Documentation and prose: prefer long-context assistants for writing and summarising",
			Pattern:     "**/*.{md,mdx,txt,rst}",
			Provider:    ProviderAnthropic,
		},
		{
			Description: "JavaScript and TypeScript sources: completions, refactors and type-aware edits",
			Pattern:     "**/*.{js,jsx,mjs,cjs,ts,tsx}",
			Provider:    ProviderOpenAI,
		},
		{
			Description: "Python sources: idiomatic code generation and docstrings",
			Pattern:     "**/*.{py,pyi}",
			Provider:    ProviderMistral,
		},
		{
			Description: "Data, configuration and test files: keep these on local models",
			Pattern:     "**/{*.json,*.yaml,*.yml,*.test.*,*_test.*}",
			Provider:    ProviderOllama,
		},
	}
}

func enabled(servers []config.ServerDescriptor) MCPSettings {
	return MCPSettings{
		Enabled: true,
		Config: ServerConfig{
			PreferMCP: true,
			Servers:   servers,
		},
	}
}

// Compose builds the editor configuration from a loaded document. The top
// level block carries every server; each rule carries only the servers of its
// provider, and stays enabled even when none match.
func Compose(doc config.Document, specs []RuleSpec) Configuration {
	cfg := Configuration{
		MCP:   enabled(doc.AllServers()),
		Rules: make([]Rule, 0, len(specs)),
	}
	for _, spec := range specs {
		cfg.Rules = append(cfg.Rules, Rule{
			Description: spec.Description,
			Pattern:     spec.Pattern,
			MCP:         enabled(config.GetServersByType(doc, spec.Provider)),
		})
	}
	return cfg
}
