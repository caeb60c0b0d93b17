//go:build swag

package swaggerkit

import docs "sitesearch/internal/services/api/docs"

// docReader is a seam so tests can inject invalid JSON without patching swag
var docReader = func() []byte { return []byte(docs.SwaggerInfo.ReadDoc()) }
