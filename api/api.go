// Package api embeds the OpenAPI description served at /swagger.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
