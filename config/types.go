// Package config loads the MCP server descriptor file and selects servers by provider.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ServerDescriptor describes one AI backend endpoint and its provider family.
// Attributes other than the named fields are kept in Extra and written back
// out flattened, so unknown provider-specific settings pass through untouched.
// A named attribute holding a non-string value is kept in Extra as well; a
// server whose provider is not a string never matches a provider filter.
type ServerDescriptor struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty" mapstructure:"provider"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	BaseURL  string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty" mapstructure:"baseUrl"`

	Extra map[string]interface{} `json:"-" yaml:"-" mapstructure:",remain"`
}

// MCPConfig is the nested block of the descriptor file.
type MCPConfig struct {
	Enabled bool               `json:"enabled" yaml:"enabled"`
	Servers []ServerDescriptor `json:"servers" yaml:"servers"`
}

// Document is the root of ~/.cursor/mcp-config.json.
type Document struct {
	MCPConfig MCPConfig `json:"mcpConfig" yaml:"mcpConfig"`
}

// DefaultDocument returns the document used whenever the descriptor file
// cannot be loaded: enabled, with no servers.
func DefaultDocument() Document {
	return Document{
		MCPConfig: MCPConfig{
			Enabled: true,
			Servers: []ServerDescriptor{},
		},
	}
}

// flatten merges Extra and the named fields into one object.
func (s ServerDescriptor) flatten() map[string]interface{} {
	out := make(map[string]interface{}, len(s.Extra)+4)
	for k, v := range s.Extra {
		out[k] = v
	}
	if s.Name != "" {
		out["name"] = s.Name
	}
	if s.Provider != "" {
		out["provider"] = s.Provider
	}
	if s.Type != "" {
		out["type"] = s.Type
	}
	if s.BaseURL != "" {
		out["baseUrl"] = s.BaseURL
	}
	return out
}

// MarshalJSON flattens Extra into the object alongside the named fields.
func (s ServerDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.flatten())
}

// MarshalYAML flattens Extra the same way MarshalJSON does.
func (s ServerDescriptor) MarshalYAML() (interface{}, error) {
	return s.flatten(), nil
}

// UnmarshalJSON decodes a server object, collecting unknown keys into Extra.
func (s *ServerDescriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := decodeServer(raw)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// rawDocument mirrors Document with pointers so absent keys can be told apart
// from zero values while decoding.
type rawDocument struct {
	MCPConfig *rawMCPConfig `mapstructure:"mcpConfig"`
}

type rawMCPConfig struct {
	Enabled *bool                    `mapstructure:"enabled"`
	Servers []map[string]interface{} `mapstructure:"servers"`
}

func decode(input interface{}, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: result,
		// Keys match field tags exactly; anything else lands in Extra.
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// stringFields are the attributes decoded into named fields, and only when
// their value is a string.
var stringFields = []string{"name", "provider", "type", "baseUrl"}

func decodeServer(raw map[string]interface{}) (ServerDescriptor, error) {
	input := make(map[string]interface{}, len(raw))
	opaque := make(map[string]interface{})
	for k, v := range raw {
		input[k] = v
	}
	for _, key := range stringFields {
		v, ok := input[key]
		if !ok {
			continue
		}
		if _, isString := v.(string); !isString {
			opaque[key] = v
			delete(input, key)
		}
	}

	var s ServerDescriptor
	if err := decode(input, &s); err != nil {
		return ServerDescriptor{}, err
	}
	if len(opaque) > 0 {
		if s.Extra == nil {
			s.Extra = make(map[string]interface{}, len(opaque))
		}
		for k, v := range opaque {
			s.Extra[k] = v
		}
	}
	return s, nil
}

// documentFromMap builds a Document from generic JSON data. Missing pieces take
// their DefaultDocument values.
func documentFromMap(data map[string]interface{}) (Document, error) {
	var raw rawDocument
	if err := decode(data, &raw); err != nil {
		return Document{}, err
	}

	doc := DefaultDocument()
	if raw.MCPConfig == nil {
		return doc, nil
	}
	if raw.MCPConfig.Enabled != nil {
		doc.MCPConfig.Enabled = *raw.MCPConfig.Enabled
	}
	for i, entry := range raw.MCPConfig.Servers {
		if entry == nil {
			return Document{}, fmt.Errorf("servers[%d]: expected an object, got null", i)
		}
		s, err := decodeServer(entry)
		if err != nil {
			return Document{}, fmt.Errorf("servers[%d]: %w", i, err)
		}
		doc.MCPConfig.Servers = append(doc.MCPConfig.Servers, s)
	}
	return doc, nil
}
