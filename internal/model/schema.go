package model

// CompositionKey is the marker field injected into flattened schema
// definitions that use allOf/oneOf/anyOf at the top level.
const CompositionKey = "_composition"

// CircularKey marks a reference echo produced when deep resolution
// re-enters a $ref already on the current ancestor chain.
const CircularKey = "_circular"

// SchemaMap maps component schema names to their flattened definitions:
// one level of top-level $ref indirection followed, composition marker
// added. Nested $refs inside the definition remain unresolved pointers.
type SchemaMap map[string]map[string]any
