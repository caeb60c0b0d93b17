// Package docs registers the api OpenAPI document with swag
// swagger.json is regenerated from the handler annotations by go generate
package docs

import (
	_ "embed"

	"github.com/swaggo/swag/v2"
)

//go:generate swag init --v3.1 --instanceName api --outputTypes json --output . --dir ../../../../cmd/sitesearch-api,../../../../internal --generalInfo main.go --parseInternal

//go:embed swagger.json
var docTemplate string

// SwaggerInfo holds the exported info so callers can adjust it before serving
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "sitesearch API",
	Description:      "Search page view models and service meta endpoints.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
