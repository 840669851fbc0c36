// Package mcprules produces the AI-assistant rule configuration for the Cursor editor.
//
// # Overview
//
// The editor asks for one configuration value at startup: an always-on MCP
// block plus a list of file-pattern rules, each preferring the servers of a
// single provider. The servers come from an optional descriptor file written
// by an external generator:
//
//	~/.cursor/mcp-config.json
//
//	{
//	  "mcpConfig": {
//	    "enabled": true,
//	    "servers": [
//	      {"name": "claude", "provider": "anthropic"},
//	      {"name": "llama", "provider": "ollama", "baseUrl": "http://localhost:11434"}
//	    ]
//	  }
//	}
//
// A missing or broken file is never fatal: the assistant stays enabled with no
// provider-specific routing, and the cause is logged.
//
// # Organization
//
//   - github.com/localrivet/mcprules/config: descriptor model, loading and provider filtering
//   - github.com/localrivet/mcprules/rules: rule definitions, composition and the Resolver
//   - github.com/localrivet/mcprules/cmd/mcp-rules: command line front end
//
// # Basic Usage
//
//	cfg := mcprules.Resolve()
//	for _, rule := range cfg.Rules {
//	  fmt.Println(rule.Pattern, len(rule.MCP.Config.Servers))
//	}
//
// Hosts that need control over the environment inject a config.Source:
//
//	r := rules.NewResolver(
//	  rules.WithSource(config.MapSource{Env: env, Files: files}),
//	  rules.WithLogger(logger),
//	)
//	cfg := r.Resolve()
package mcprules

import (
	"github.com/localrivet/mcprules/config"
	"github.com/localrivet/mcprules/rules"
)

// Version is the current version of the mcprules library
const Version = "0.1.0"

// LoadConfig reads ~/.cursor/mcp-config.json from the real environment and
// returns the default document if it cannot. Failures are logged to stderr.
func LoadConfig() config.Document {
	return config.LoadConfig(config.OSSource{}, config.NewDefaultLogger())
}

// GetServersByType returns the servers of doc whose provider equals provider.
func GetServersByType(doc config.Document, provider string) []config.ServerDescriptor {
	return config.GetServersByType(doc, provider)
}

// Resolve loads the descriptor and composes the default rule set.
func Resolve() rules.Configuration {
	return rules.NewResolver(rules.WithLogger(config.NewDefaultLogger())).Resolve()
}
