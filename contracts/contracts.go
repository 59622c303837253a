// Package contracts embeds the OpenAPI documents served and enforced by the API.
package contracts

import _ "embed"

//go:embed notes-api.yaml
var NotesAPI []byte
