// Package docs registers the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Sercha OSS",
            "url": "https://github.com/custodia-labs/sercha-insight/issues"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/domains": {
            "get": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Routing"],
                "summary": "List domains",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DomainsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/route": {
            "post": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Routing"],
                "summary": "Route a question",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.RouteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RouteResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/context": {
            "post": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Routing"],
                "summary": "Assemble context",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.ContextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ContextResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/chat": {
            "post": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Ask a question",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.AskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AskResponse"}},
                    "400": {"description": "Empty question or unknown domain", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Completion service failed", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "Completion service not configured", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/conversations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Get conversation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Conversation"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "tags": ["Chat"],
                "summary": "Delete conversation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/datasets": {
            "get": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Datasets"],
                "summary": "List tables",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.TablesResponse"}}
                }
            }
        },
        "/datasets/{name}": {
            "get": {
                "security": [{"BearerAuth": []}, {"APIKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Datasets"],
                "summary": "Browse a table",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.BrowseResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.AskRequest": {
            "type": "object",
            "properties": {
                "conversation_id": {"type": "string"},
                "question": {"type": "string"},
                "domain": {"type": "string", "enum": ["sales", "hr", "finance", "inventory", "audit", "schema"]}
            }
        },
        "domain.AskResponse": {
            "type": "object",
            "properties": {
                "conversation_id": {"type": "string"},
                "route": {"$ref": "#/definitions/domain.RouteResult"},
                "needs_domain": {"type": "boolean"},
                "choices": {"type": "array", "items": {"$ref": "#/definitions/domain.DomainSummary"}},
                "label": {"type": "string"},
                "answer": {"type": "string"},
                "model": {"type": "string"}
            }
        },
        "domain.ContextRequest": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "domains": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.ContextResponse": {
            "type": "object",
            "properties": {
                "route": {"$ref": "#/definitions/domain.RouteResult"},
                "label": {"type": "string"},
                "context": {"type": "string"}
            }
        },
        "domain.RouteResult": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["single", "cross", "uncertain"]},
                "domains": {"type": "array", "items": {"type": "string"}},
                "scores": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "domain.DomainSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "icon": {"type": "string"},
                "color": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "domain.Conversation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "turns": {"type": "array", "items": {"$ref": "#/definitions/domain.Turn"}}
            }
        },
        "domain.Turn": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant"]},
                "content": {"type": "string"},
                "label": {"type": "string"},
                "domains": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "domain.TableInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "records": {"type": "integer"}
            }
        },
        "domain.BrowseResult": {
            "type": "object",
            "properties": {
                "table": {"type": "string"},
                "query": {"type": "string"},
                "page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "records": {"type": "array", "items": {"type": "object"}}
            }
        },
        "http.DomainsResponse": {
            "type": "object",
            "properties": {
                "domains": {"type": "array", "items": {"$ref": "#/definitions/domain.DomainSummary"}}
            }
        },
        "http.TablesResponse": {
            "type": "object",
            "properties": {
                "tables": {"type": "array", "items": {"$ref": "#/definitions/domain.TableInfo"}}
            }
        },
        "http.RouteRequest": {
            "type": "object",
            "properties": {
                "question": {"type": "string", "example": "show me pending orders for Acme Corp"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid request body"}
            }
        }
    },
    "securityDefinitions": {
        "APIKeyAuth": {
            "description": "Service key",
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        },
        "BearerAuth": {
            "description": "JWT Bearer token. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Sercha Insight API",
	Description:      "Enterprise data assistant. Routes questions to business domains, assembles prompt-ready context from the loaded records and answers them with a completion model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
