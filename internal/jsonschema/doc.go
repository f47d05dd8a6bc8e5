// Package jsonschema generates JSON Schema definitions from Go types via
// reflection. The schemas are passed to providers as structured-output
// formats; they are not used for local validation.
package jsonschema
