// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
        "/players": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "List players",
                "parameters": [
                    {"type": "boolean", "description": "Only players marked available", "name": "available", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Add a player to the roster",
                "parameters": [
                    {"description": "Player", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreatePlayerInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/roundrobin": {
            "get": {
                "produces": ["application/json"],
                "tags": ["roundrobin"],
                "summary": "List round robin draws, newest start date first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roundrobin"],
                "summary": "Split players into groups, schedule every group and save the draw",
                "parameters": [
                    {"description": "Draw settings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateRoundRobinInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "422": {"description": "Dates could not be assigned with the configured limits", "schema": {"$ref": "#/definitions/error"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/roundrobin/{drawID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["roundrobin"],
                "summary": "Get a round robin draw",
                "parameters": [
                    {"type": "integer", "description": "Draw ID", "name": "drawID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "degraded is set when stored data could not be read", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/roundrobin/{drawID}/groups/{groupIndex}/matches/{matchIndex}/frames": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roundrobin"],
                "summary": "Record frame points for one group match",
                "parameters": [
                    {"type": "integer", "description": "Draw ID", "name": "drawID", "in": "path", "required": true},
                    {"type": "integer", "description": "Zero-based group position", "name": "groupIndex", "in": "path", "required": true},
                    {"type": "integer", "description": "Zero-based match position in the group", "name": "matchIndex", "in": "path", "required": true},
                    {"description": "Comma-separated frame points and breaks", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/brackets.FrameScores"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Stored draw is damaged", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/knockout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["knockout"],
                "summary": "Generate and save a single elimination draw",
                "parameters": [
                    {"description": "Draw name, players and best-of per round", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateKnockoutInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/knockout/{drawID}/advance": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["knockout"],
                "summary": "Enter a slot score and move the winner on once the match is decided",
                "parameters": [
                    {"type": "integer", "description": "Draw ID", "name": "drawID", "in": "path", "required": true},
                    {"description": "Zero-based round, match and slot with the new slot value", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.AdvanceInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "brackets.FrameScores": {
            "type": "object",
            "properties": {
                "frame1": {"type": "string", "example": "45,60,12"},
                "frame2": {"type": "string", "example": "70,20,66"},
                "breaks1": {"type": "string"},
                "breaks2": {"type": "string"}
            }
        },
        "services.CreatePlayerInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "handicap": {"type": "integer"},
                "handicap_round": {"type": "integer"},
                "availability": {"type": "boolean"}
            }
        },
        "services.CreateRoundRobinInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start": {"type": "string", "example": "2026-01-06"},
                "players": {"type": "array", "items": {"type": "string"}},
                "group_sizes": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "services.CreateKnockoutInput": {
            "type": "object",
            "properties": {
                "draw_name": {"type": "string"},
                "players": {"type": "array", "items": {"type": "string"}},
                "best_of": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "services.AdvanceInput": {
            "type": "object",
            "properties": {
                "round": {"type": "integer"},
                "match": {"type": "integer"},
                "slot": {"type": "integer"},
                "value": {
                    "type": "object",
                    "properties": {
                        "playerName": {"type": "string"},
                        "handicap": {"type": "integer"},
                        "score": {"type": "string"}
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Cue League API",
	Description:      "Round robin scheduling, standings and knockout draws for a cue sports league.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
