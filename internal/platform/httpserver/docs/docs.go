// Package docs registers the swagger document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/registry/data-items": {
            "get": {
                "summary": "List data items",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "List a data item for sale",
                "parameters": [
                    {"name": "X-User-Id", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload"},
                    "401": {"description": "Missing caller identity"}
                }
            }
        },
        "/v1/registry/data-items/search": {
            "get": {
                "summary": "Search data items by title or description",
                "parameters": [{"name": "q", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/registry/data-items/filter": {
            "get": {
                "summary": "Filter data items by data format",
                "parameters": [{"name": "format", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/registry/data-items/initial": {
            "get": {
                "summary": "Cold-start page of data items",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/registry/data-items/more": {
            "get": {
                "summary": "Offset/limit page of data items",
                "parameters": [
                    {"name": "start", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/registry/data-items/{item_id}": {
            "get": {
                "summary": "Get a data item",
                "parameters": [{"name": "item_id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Malformed id"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "summary": "Update a data item (seller only)",
                "parameters": [
                    {"name": "item_id", "in": "path", "type": "string", "required": true},
                    {"name": "X-User-Id", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Caller is not the seller"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "summary": "Delete a data item (seller only)",
                "parameters": [
                    {"name": "item_id", "in": "path", "type": "string", "required": true},
                    {"name": "X-User-Id", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Caller is not the seller"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/v1/registry/purchasers": {
            "get": {
                "summary": "List purchasers",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Register a purchaser profile",
                "parameters": [
                    {"name": "X-User-Id", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/v1/registry/purchasers/{purchaser_id}": {
            "get": {
                "summary": "Get a purchaser",
                "parameters": [{"name": "purchaser_id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "summary": "Update a purchaser (owner only)",
                "parameters": [
                    {"name": "purchaser_id", "in": "path", "type": "string", "required": true},
                    {"name": "X-User-Id", "in": "header", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Caller is not the owner"}}
            },
            "delete": {
                "summary": "Delete a purchaser (owner only)",
                "parameters": [
                    {"name": "purchaser_id", "in": "path", "type": "string", "required": true},
                    {"name": "X-User-Id", "in": "header", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Caller is not the owner"}}
            }
        },
        "/v1/registry/purchasers/{purchaser_id}/purchases": {
            "post": {
                "summary": "Record a purchased data item id (owner only)",
                "parameters": [
                    {"name": "purchaser_id", "in": "path", "type": "string", "required": true},
                    {"name": "X-User-Id", "in": "header", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Caller is not the owner"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Databazaar Registry API",
	Description:      "Marketplace registry: sellers list data items, purchasers record purchases.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
