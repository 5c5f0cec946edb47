// Package docs registers the Swagger specification served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/slurm/scheduling/node/all": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scheduling"],
                "summary": "List decoded node records",
                "parameters": [
                    {"type": "boolean", "name": "paging", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/slurm/scheduling/node/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scheduling"],
                "summary": "Get one decoded node record",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/slurm/scheduling/job/all": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scheduling"],
                "summary": "List decoded job records",
                "parameters": [
                    {"type": "boolean", "name": "paging", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/slurm/scheduling/job/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scheduling"],
                "summary": "Get one decoded job record",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/slurm/scheduling/partition/all": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scheduling"],
                "summary": "List decoded partition records",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/slurm/report/nodes": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["report"],
                "summary": "Per-partition node resource summary",
                "parameters": [
                    {"type": "string", "name": "style", "in": "query", "description": "ascii, csv, markdown or mediawiki"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/slurm/report/load": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["report"],
                "summary": "Cluster load metrics",
                "parameters": [
                    {"type": "string", "name": "style", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/slurm/report/partitions": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["report"],
                "summary": "Partition scheduling envelopes with QoS quotas",
                "parameters": [
                    {"type": "string", "name": "style", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/slurm/accounting/qos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounting"],
                "summary": "List QoS records from the accounting database",
                "parameters": [
                    {"type": "boolean", "name": "paging", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List directory users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/users/{uid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get one directory user",
                "parameters": [
                    {"type": "string", "name": "uid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "detail": {"type": "string"},
                "next": {"type": "string"},
                "previous": {"type": "string"},
                "results": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "slurm-status-tools API",
	Description:      "Decoded Slurm scheduler state and cluster reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
