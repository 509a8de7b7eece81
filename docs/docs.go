// Package docs holds the OpenAPI document served at /swagger. It follows the
// layout of swag's generated output; keep it in step with the handler
// annotations when routes change.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an operator",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/balance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the newest record of the report log, computing one if the log is empty.",
                "produces": ["application/json"],
                "tags": ["balance"],
                "summary": "Latest balance record",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BalanceRecord"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/balance/recompute": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["balance"],
                "summary": "Recompute balance now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BalanceRecord"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/balance/preview": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Computes a record for the posted parameters without saving or publishing it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["balance"],
                "summary": "Preview balance",
                "parameters": [
                    {"description": "Operating parameters", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OperatingParams"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BalanceRecord"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/parameters": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["parameters"],
                "summary": "Operating parameters in effect",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.OperatingParams"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Validates and stores the snapshot, then returns the freshly recomputed record.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["parameters"],
                "summary": "Replace operating parameters",
                "parameters": [
                    {"description": "Operating parameters", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OperatingParams"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BalanceRecord"}},
                    "400": {"description": "error, problems", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List balance records",
                "parameters": [
                    {"type": "string", "example": "2026-03-04", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2026-03-04", "description": "End of range; date-only means end of day", "name": "to", "in": "query"},
                    {"enum": ["normal", "caution", "critical", "advisory", "excess-accumulation", "emergency"], "type": "string", "description": "Alarm status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, records", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/reports/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "UTF-8 CSV with byte-order mark, one row per record.",
                "produces": ["text/csv"],
                "tags": ["reports"],
                "summary": "Export balance records as CSV",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range", "name": "to", "in": "query"},
                    {"type": "string", "description": "Alarm status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Parameter changes, rejections, alarm transitions and recompute failures, oldest first. Bounds accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers that whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List balance events",
                "parameters": [
                    {"type": "string", "example": "2026-03-01", "description": "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "from", "in": "query"},
                    {"type": "string", "example": "2026-03-31", "description": "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["PARAMS_CHANGED", "PARAMS_REJECTED", "ALARM_CHANGED", "RECOMPUTE_FAILED"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket; sends {\"type\":\"balance\",\"data\":record} every interval (default 1s, max 10s) and {\"type\":\"alarm\"} when the status changes.",
                "tags": ["balance"],
                "summary": "Live balance stream",
                "parameters": [
                    {"type": "string", "description": "Go duration, e.g. 2s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Interval in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.BalanceRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "timestamp": {"type": "string"},
                "shift_start": {"type": "string"},
                "elapsed_minutes": {"type": "number"},
                "elapsed_charges": {"type": "number"},
                "production_model": {"type": "string", "enum": ["charge", "plan"]},
                "reduction_factor": {"type": "number"},
                "lag_minutes": {"type": "number"},
                "production_ton": {"type": "number"},
                "hot_metal_ton": {"type": "number"},
                "slag_ton": {"type": "number"},
                "tapped_ton": {"type": "number"},
                "residual_ton": {"type": "number"},
                "residual_rate_pct": {"type": "number"},
                "alarm_policy": {"type": "string", "enum": ["rate", "tonnage"]},
                "status": {"type": "string", "enum": ["normal", "caution", "critical", "advisory", "excess-accumulation", "emergency"]},
                "bit_diameter_mm": {"type": "integer"},
                "next_tap_interval": {"type": "string"},
                "lead_close_at": {"type": "string"},
                "idle_gap_minutes": {"type": "number"},
                "avg_tap_ton": {"type": "number"},
                "avg_hot_metal_per_tap_ton": {"type": "number"},
                "avg_slag_per_tap_ton": {"type": "number"},
                "target_temp_c": {"type": "number"},
                "measured_temp_c": {"type": "number"},
                "active_tapholes": {"type": "array", "items": {"type": "integer"}},
                "standby_tapholes": {"type": "array", "items": {"type": "integer"}},
                "last_closed_taphole": {"type": "integer"}
            }
        },
        "models.OperatingParams": {
            "type": "object",
            "properties": {
                "charge": {"type": "object"},
                "process": {"type": "object"},
                "chemistry": {"type": "object"},
                "progress": {"type": "object"},
                "taps": {"type": "object"},
                "tapholes": {"type": "object"},
                "lag": {"type": "object"},
                "options": {"type": "object"},
                "daily_plan_ton": {"type": "number"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Molten Balance API",
	Description:      "Blast-furnace molten mass balance and tap scheduling.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
