package llm

// Schema is the subset of JSON Schema the structured-generation capability
// understands. It is serialized verbatim into the generation config.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

func String(desc string) *Schema {
	return &Schema{Type: "string", Description: desc}
}

func Number(desc string) *Schema {
	return &Schema{Type: "number", Description: desc}
}

func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

func Array(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}
