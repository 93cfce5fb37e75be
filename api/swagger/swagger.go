package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Console API",
        "description": "Admin console backend for the school-management API",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Cursos", "description": "Course list, derived views and mutations"},
        {"name": "Sesiones", "description": "Add/edit modal sessions"},
        {"name": "Entidades", "description": "Students, teachers and topics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/console/cursos": {
            "get": {
                "tags": ["Cursos"],
                "summary": "Current course snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Cursos"],
                "summary": "Create course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Curso"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/console/cursos/refresh": {
            "post": {
                "tags": ["Cursos"],
                "summary": "Re-fetch the course list from the upstream API",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/console/cursos/filtro/fecha-fin": {
            "get": {
                "tags": ["Cursos"],
                "summary": "Courses ending on an exact date",
                "parameters": [
                    {"name": "fecha", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/console/cursos/docente/{id}/alumnos": {
            "get": {
                "tags": ["Cursos"],
                "summary": "Students enrolled in a teacher's active courses",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/console/cursos/{id}": {
            "put": {
                "tags": ["Cursos"],
                "summary": "Replace course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Curso"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Cursos"],
                "summary": "Delete course (requires confirm=true)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "confirm", "in": "query", "required": true, "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/console/cursos/export": {
            "get": {
                "tags": ["Cursos"],
                "summary": "Export the course snapshot as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/api/console/cursos/sesiones": {
            "post": {
                "tags": ["Sesiones"],
                "summary": "Open an add or edit session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AbrirSesion"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/console/cursos/sesiones/{id}/cerrar": {
            "post": {
                "tags": ["Sesiones"],
                "summary": "Close a session with an accepted draft or a cancel",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CerrarSesion"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Alumno": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "fechaNacimiento": {"type": "string"}
            }
        },
        "Docente": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "legajo": {"type": "string"}
            }
        },
        "Tema": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "descripcion": {"type": "string"}
            }
        },
        "Curso": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "fechaInicio": {"type": "string"},
                "fechaFin": {"type": "string"},
                "precio": {"type": "number"},
                "tema": {"$ref": "#/definitions/Tema"},
                "docente": {"$ref": "#/definitions/Docente"},
                "alumnos": {"type": "array", "items": {"$ref": "#/definitions/Alumno"}}
            }
        },
        "AbrirSesion": {
            "type": "object",
            "properties": {
                "modo": {"type": "string", "enum": ["alta", "edicion"]},
                "cursoId": {"type": "integer"}
            }
        },
        "CerrarSesion": {
            "type": "object",
            "properties": {
                "resultado": {"$ref": "#/definitions/Curso"}
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
