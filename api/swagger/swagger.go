package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Learning Path API",
        "description": "Read-only learning path progress for LMS users",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "LearningPaths", "description": "Learning path progress"},
        {"name": "RPC", "description": "Batch endpoint used by the LMS block"}
    ],
    "paths": {
        "/learning-paths": {
            "get": {
                "tags": ["LearningPaths"],
                "summary": "List the caller's learning paths with progress",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PathSummaryList"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/learning-paths/exists": {
            "get": {
                "tags": ["LearningPaths"],
                "summary": "Whether the caller has any learning path assignment",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/learning-paths/{id}/lines": {
            "get": {
                "tags": ["LearningPaths"],
                "summary": "Per-line progress of a learning path",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "userId", "in": "query", "required": false, "type": "integer", "description": "Defaults to the caller; other users require ADMIN or MANAGER"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LineRecordList"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown learning path", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/learning-paths/export": {
            "get": {
                "tags": ["LearningPaths"],
                "summary": "Download the caller's learning paths",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "required": false, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document", "schema": {"type": "file"}},
                    "403": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/learning-paths": {
            "get": {
                "tags": ["LearningPaths"],
                "summary": "List every learning path (ADMIN, MANAGER)",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "published", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"},
                    {"name": "sortBy", "in": "query", "type": "string", "enum": ["id", "name", "startdate", "enddate", "credit"]},
                    {"name": "sortOrder", "in": "query", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ajax": {
            "post": {
                "tags": ["RPC"],
                "summary": "Batch RPC endpoint",
                "description": "Methods: block_learningpath_get_learningpath, block_learningpath_get_detail_line {lpt_id, u_id}. Calls after the first failure are not executed.",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "calls", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/RPCCall"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RPCResult"}}}
                }
            }
        }
    },
    "definitions": {
        "PathSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "startdate": {"type": "string", "example": "01-31-2024"},
                "enddate": {"type": "string", "example": "N/A"},
                "progress": {"type": "integer"},
                "progressClass": {"type": "string", "enum": ["bg-danger", "bg-warning", "bg-success"]},
                "credit": {"type": "integer"}
            }
        },
        "PathSummaryList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/PathSummary"}},
                "meta": {"type": "object"}
            }
        },
        "LineRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "url": {"type": "string"},
                "name": {"type": "string"},
                "startdate": {"type": "string"},
                "enddate": {"type": "string"},
                "progress": {"type": "integer", "enum": [0, 100]},
                "progressClass": {"type": "string"},
                "isRequired": {"type": "boolean"},
                "isCourse": {"type": "boolean"},
                "isModule": {"type": "boolean"},
                "isCatalogue": {"type": "boolean"},
                "catalogueId": {"type": "integer"},
                "credit": {"type": "integer"}
            }
        },
        "LineRecordList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/LineRecord"}}
            }
        },
        "RPCCall": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "methodname": {"type": "string"},
                "args": {"type": "object"}
            }
        },
        "RPCResult": {
            "type": "object",
            "properties": {
                "error": {"type": "boolean"},
                "data": {"type": "object"},
                "exception": {
                    "type": "object",
                    "properties": {
                        "errorcode": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
