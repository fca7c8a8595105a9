// Package schemas embeds the OpenAPI document describing the editor API.
package schemas

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3 document served by apps/server.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
