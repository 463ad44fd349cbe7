package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HelixFlow API",
        "description": "Campus venue booking, approval workflow and event reporting",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Venues", "description": "Bookable venue reference set"},
        {"name": "Events", "description": "Venue bookings and the approval pipeline"},
        {"name": "Reports", "description": "Post-event compliance reports"},
        {"name": "Notifications", "description": "Per-user notification feed"},
        {"name": "Dashboard", "description": "Role-aware summary counters"},
        {"name": "Analytics", "description": "Institution-wide booking analytics"},
        {"name": "Assistant", "description": "AI advisory features"},
        {"name": "Exports", "description": "Asynchronous dataset exports"}
    ],
    "paths": {
        "/venues": {
            "get": {
                "tags": ["Venues"],
                "summary": "List bookable venues",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List all events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Request a venue booking",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Venue slot already booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/conflict-check": {
            "get": {
                "tags": ["Events"],
                "summary": "Check a venue slot for conflicts",
                "parameters": [
                    {"name": "venueId", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "start", "in": "query", "required": true, "type": "string"},
                    {"name": "end", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get one event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}/decision": {
            "post": {
                "tags": ["Events"],
                "summary": "Apply an approval decision (HOD, PRINCIPAL or ADMIN)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Event not at this approval stage", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}/status": {
            "patch": {
                "tags": ["Events"],
                "summary": "Set an event status directly (ADMIN)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Event already in a terminal status", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}/report": {
            "post": {
                "tags": ["Reports"],
                "summary": "Submit the post-event report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Report already submitted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}/report/review": {
            "post": {
                "tags": ["Reports"],
                "summary": "Review a submitted report (ADMIN)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications for the current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/unread-count": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Count unread notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/read-all": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark every notification as read",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary for the current role",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/summary": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Institution-wide booking analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assistant/status": {
            "get": {
                "tags": ["Assistant"],
                "summary": "Assistant availability",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assistant/suggest-venue": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Suggest venues for a free-text requirement",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SuggestVenueRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assistant/report-feedback": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Generate feedback on a report summary",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportFeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assistant/chat/sessions": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Open a chat session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Assistant offline", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assistant/chat/sessions/{id}": {
            "get": {
                "tags": ["Assistant"],
                "summary": "Fetch a chat session transcript",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assistant/chat/sessions/{id}/messages": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Send a message to the assistant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChatMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a dataset export (ADMIN or PRINCIPAL)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Poll an export job",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export artifact",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Venue": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "capacity": {"type": "integer"},
                "features": {"type": "array", "items": {"type": "string"}},
                "image": {"type": "string"}
            }
        },
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "organizer": {"type": "string"},
                "department": {"type": "string"},
                "venueId": {"type": "string"},
                "date": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"},
                "report": {"$ref": "#/definitions/EventReport"}
            }
        },
        "EventReport": {
            "type": "object",
            "properties": {
                "attendance": {"type": "integer"},
                "summary": {"type": "string"},
                "photos": {"type": "array", "items": {"type": "string"}},
                "submittedAt": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "department": {"type": "string"},
                "venueId": {"type": "string"},
                "date": {"type": "string", "description": "YYYY-MM-DD"},
                "startTime": {"type": "string", "description": "HH:MM"},
                "endTime": {"type": "string", "description": "HH:MM"},
                "description": {"type": "string"}
            },
            "required": ["title", "department", "venueId", "date", "startTime", "endTime", "description"]
        },
        "DecisionRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "enum": ["APPROVE", "REJECT"]}
            },
            "required": ["action"]
        },
        "SetStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            },
            "required": ["status"]
        },
        "SubmitReportRequest": {
            "type": "object",
            "properties": {
                "attendance": {"type": "integer"},
                "summary": {"type": "string"},
                "photos": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["summary"]
        },
        "ReviewReportRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["APPROVED", "NEEDS_REVISION"]}
            },
            "required": ["status"]
        },
        "SuggestVenueRequest": {
            "type": "object",
            "properties": {
                "requirement": {"type": "string"}
            },
            "required": ["requirement"]
        },
        "ReportFeedbackRequest": {
            "type": "object",
            "properties": {
                "summary": {"type": "string"}
            },
            "required": ["summary"]
        },
        "ChatMessageRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            },
            "required": ["message"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["events", "utilization", "compliance"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["type", "format"]
        },
        "Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "message": {"type": "string"},
                "type": {"type": "string"},
                "kind": {"type": "string"},
                "eventId": {"type": "string"},
                "read": {"type": "boolean"},
                "createdAt": {"type": "string"}
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
