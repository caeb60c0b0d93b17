//go:build !swag

package swaggerkit

import _ "embed"

// openapi.json is the last generated document, served when the build skips swag
//
//go:embed openapi.json
var openapiDoc []byte

var docReader = func() []byte { return openapiDoc }
