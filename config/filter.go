package config

// GetServersByType returns the servers of doc whose Provider equals provider
// exactly, in their original order. No match yields an empty slice.
func GetServersByType(doc Document, provider string) []ServerDescriptor {
	out := []ServerDescriptor{}
	for _, s := range doc.MCPConfig.Servers {
		if s.Provider == provider {
			out = append(out, s.clone())
		}
	}
	return out
}

// ServersByProvider is the method form of GetServersByType.
func (d Document) ServersByProvider(provider string) []ServerDescriptor {
	return GetServersByType(d, provider)
}

// AllServers returns a copy of every server in declaration order.
func (d Document) AllServers() []ServerDescriptor {
	out := make([]ServerDescriptor, 0, len(d.MCPConfig.Servers))
	for _, s := range d.MCPConfig.Servers {
		out = append(out, s.clone())
	}
	return out
}

// Providers lists the distinct non-empty provider labels in first-seen order.
func (d Document) Providers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range d.MCPConfig.Servers {
		if s.Provider == "" || seen[s.Provider] {
			continue
		}
		seen[s.Provider] = true
		out = append(out, s.Provider)
	}
	return out
}

// clone copies s so callers cannot reach the document's Extra map.
func (s ServerDescriptor) clone() ServerDescriptor {
	if s.Extra == nil {
		return s
	}
	extra := make(map[string]interface{}, len(s.Extra))
	for k, v := range s.Extra {
		extra[k] = v
	}
	s.Extra = extra
	return s
}
