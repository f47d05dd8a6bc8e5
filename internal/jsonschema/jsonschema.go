package jsonschema

import (
	"reflect"
	"strconv"
	"strings"
)

// Schema represents the structure of JSON Schema used for defining structured
// output formats. It follows the JSON Schema standard, supporting the types,
// properties, and validation rules the chat-completion APIs accept.
type Schema struct {
	// Type specifies the data type (e.g., "object", "array", "string", "number")
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of the object, each with its own schema
	Properties map[string]*Schema `json:"properties,omitempty"`
	// For array types, defines the schema of items in the array
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether properties not defined in Properties are allowed
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Enum contains the list of allowed values
	Enum []any `json:"enum,omitempty"`
}

// For generates a JSON schema from the type parameter T, honouring `json`
// field tags and the `jsonschema` tag (description=..., required, enum=...).
// Pointer fields are treated as their element type.
func For[T any]() *Schema {
	return fromType(reflect.TypeFor[T]())
}

func fromType(t reflect.Type) *Schema {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return fromStruct(t)

	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: fromType(t.Elem())}

	case reflect.Map:
		// Value schema is intentionally open: map values are free-form.
		return &Schema{Type: "object", AdditionalProperties: true}

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	default:
		// interface{} and anything else we cannot introspect
		return &Schema{}
	}
}

func fromStruct(t reflect.Type) *Schema {
	schema := &Schema{
		Type:                 "object",
		Properties:           map[string]*Schema{},
		AdditionalProperties: false,
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}

		fieldSchema := fromType(field.Type)
		required := applyTag(field.Tag.Get("jsonschema"), fieldSchema)
		schema.Properties[name] = fieldSchema

		if required {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// fieldName resolves the JSON property name for a struct field, honouring
// the json tag. skip is true for fields tagged json:"-".
func fieldName(field reflect.StructField) (name string, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name = field.Name
	if tag != "" {
		if comma := strings.Index(tag, ","); comma != -1 {
			if tag[:comma] != "" {
				name = tag[:comma]
			}
		} else {
			name = tag
		}
	}
	return name, false
}

// applyTag parses a `jsonschema` struct tag and mutates the field schema
// accordingly. Supported directives: description=..., required, and
// enum=... (repeatable). Unknown directives are ignored.
func applyTag(tag string, schema *Schema) (required bool) {
	if tag == "" {
		return false
	}

	for _, directive := range splitTag(tag) {
		switch {
		case directive == "required":
			required = true

		case strings.HasPrefix(directive, "description="):
			schema.Description = strings.TrimPrefix(directive, "description=")

		case strings.HasPrefix(directive, "enum="):
			value := strings.TrimPrefix(directive, "enum=")
			schema.Enum = append(schema.Enum, coerceEnumValue(schema.Type, value))
		}
	}

	return required
}

// splitTag splits a jsonschema tag on commas and trims each directive.
// Commas are separators everywhere, so description text must not contain
// them.
func splitTag(tag string) []string {
	parts := strings.Split(tag, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func coerceEnumValue(schemaType, value string) any {
	switch schemaType {
	case "integer":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return value
}
