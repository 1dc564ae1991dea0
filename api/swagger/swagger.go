package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ivdepaste API",
        "description": "Paste storage, language detection and export service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Pastes", "description": "Paste lifecycle"},
        {"name": "Languages", "description": "Language detection and catalog"},
        {"name": "Exports", "description": "Paste downloads and index export"}
    ],
    "paths": {
        "/pastes": {
            "get": {
                "tags": ["Pastes"],
                "summary": "List pastes",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "created_after", "in": "query", "type": "string"},
                    {"name": "within_days", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Pastes"],
                "summary": "Create paste",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePasteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pastes/{id}": {
            "get": {
                "tags": ["Pastes"],
                "summary": "View paste",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Pastes"],
                "summary": "Delete paste",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/pastes/bulk-delete": {
            "post": {
                "tags": ["Pastes"],
                "summary": "Bulk delete pastes",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkDeleteRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pastes/{id}/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download paste",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["txt", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pastes/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export paste index as CSV",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/detect": {
            "post": {
                "tags": ["Languages"],
                "summary": "Detect language",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DetectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/languages": {
            "get": {
                "tags": ["Languages"],
                "summary": "List supported languages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Paste": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "user_id": {"type": "string"},
                "created_at": {"type": "string"},
                "expires_at": {"type": "string"},
                "language": {"type": "string"},
                "burn": {"type": "boolean"},
                "visibility": {"type": "string"}
            }
        },
        "CreatePasteRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "expiration": {"type": "string", "enum": ["1week", "1month", "permanent"]},
                "language": {"type": "string"},
                "burn": {"type": "boolean"}
            },
            "required": ["content"]
        },
        "BulkDeleteRequest": {
            "type": "object",
            "properties": {
                "ids": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            },
            "required": ["ids"]
        },
        "DetectRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"}
            }
        },
        "DetectResponse": {
            "type": "object",
            "properties": {
                "language": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "LanguageOption": {
            "type": "object",
            "properties": {
                "value": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
