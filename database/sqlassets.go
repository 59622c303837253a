package sqlassets

import _ "embed"

//go:embed schema/core_schema.sql
var CoreSchemaSQL string
