package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Routine API",
        "description": "Class schedule publishing and room booking portal",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Publish", "description": "Spreadsheet uploads and publication"},
        {"name": "Bookings", "description": "Room booking requests"},
        {"name": "Auth", "description": "Admin session"},
        {"name": "Export", "description": "PDF and CSV downloads"}
    ],
    "paths": {
        "/published/{name}": {
            "get": {
                "tags": ["Publish"],
                "summary": "Published payload (routine or tif)",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PublishedPayload"}},
                    "404": {"description": "Unknown name"}
                }
            }
        },
        "/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List bookings (public or admin view)",
                "parameters": [
                    {"name": "public", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Admin view without session"}
                }
            },
            "post": {
                "tags": ["Bookings"],
                "summary": "Request a room booking",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/{id}": {
            "patch": {
                "tags": ["Bookings"],
                "summary": "Transition a booking's status (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateBookingStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown booking"},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login, sets the session cookie",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Clear the session cookie",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current admin session",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "No session"}
                }
            }
        },
        "/files": {
            "get": {
                "tags": ["Publish"],
                "summary": "List stored uploads (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Publish"],
                "summary": "Upload a spreadsheet and publish it (admin)",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "kind", "in": "formData", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "version", "in": "formData", "type": "string"},
                    {"name": "effectiveFrom", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Saved; warn field set when parsing failed"}
                }
            },
            "delete": {
                "tags": ["Publish"],
                "summary": "Delete a stored upload and its published payload (admin)",
                "parameters": [
                    {"name": "kind", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/publish": {
            "get": {
                "tags": ["Publish"],
                "summary": "Publication status (admin)",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Publish"],
                "summary": "Re-publish from uploads or request arrays (admin)",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "delete": {
                "tags": ["Publish"],
                "summary": "Clear both published payloads (admin)",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/export/routine": {
            "get": {
                "tags": ["Export"],
                "summary": "Weekly routine PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "batch", "in": "query", "type": "string"},
                    {"name": "initial", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF download"}
                }
            }
        },
        "/export/bookings": {
            "get": {
                "tags": ["Export"],
                "summary": "Bookings export (admin)",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "CSV download"}
                }
            }
        }
    },
    "definitions": {
        "ClassRow": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "slot": {"type": "string"},
                "room": {"type": "string"},
                "batch": {"type": "string"},
                "course": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "PublishedPayload": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/ClassRow"}},
                "meta": {
                    "type": "object",
                    "properties": {
                        "fileName": {"type": "string"},
                        "version": {"type": "string"},
                        "effectiveFrom": {"type": "string"}
                    }
                },
                "updatedAt": {"type": "string"}
            }
        },
        "BookingStudent": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "studentId": {"type": "string"},
                "batchSection": {"type": "string"},
                "mobile": {"type": "string"},
                "email": {"type": "string"},
                "course": {"type": "string"},
                "courseTeacherInitial": {"type": "string"}
            }
        },
        "BookingTeacher": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "teacherId": {"type": "string"},
                "initial": {"type": "string"},
                "mobile": {"type": "string"},
                "email": {"type": "string"},
                "batchSection": {"type": "string"},
                "course": {"type": "string"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "day": {"type": "string"},
                "slot": {"type": "string"},
                "room": {"type": "string"},
                "userType": {"type": "string"},
                "student": {"$ref": "#/definitions/BookingStudent"},
                "teacher": {"$ref": "#/definitions/BookingTeacher"},
                "comment": {"type": "string"}
            },
            "required": ["date", "slot", "room", "userType"]
        },
        "UpdateBookingStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["approved", "declined", "cancelled"]}
            },
            "required": ["status"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
            },
            "required": ["password"]
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
                "warn": {"type": "string"},
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
