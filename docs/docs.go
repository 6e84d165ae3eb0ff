// Package docs registers the OpenAPI document of the weather screen API.
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
        "/cities": {
            "get": {
                "description": "Returns the fixed list of cities and the current selection",
                "produces": ["application/json"],
                "tags": ["screen"],
                "summary": "List cities",
                "responses": {
                    "200": {
                        "description": "Cities",
                        "schema": {"$ref": "#/definitions/model.CitiesResponse"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports the weather API outcome of the last call and the screen state",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "Healthy",
                        "schema": {"$ref": "#/definitions/model.HealthResponse"}
                    },
                    "503": {
                        "description": "Last weather API call failed",
                        "schema": {"$ref": "#/definitions/model.HealthResponse"}
                    }
                }
            }
        },
        "/screen": {
            "get": {
                "description": "Returns the current view state: LOADING, ERROR with a message, or LOADED with weather data",
                "produces": ["application/json"],
                "tags": ["screen"],
                "summary": "Get the screen state",
                "responses": {
                    "200": {
                        "description": "Current view state",
                        "schema": {"$ref": "#/definitions/model.ViewState"}
                    }
                }
            }
        },
        "/screen/city": {
            "put": {
                "description": "Switches the screen to a city from the fixed list and starts fetching its weather",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["screen"],
                "summary": "Select a city",
                "parameters": [
                    {
                        "description": "City to show",
                        "name": "city",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SelectCityDTO"}
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Loading state of the new fetch",
                        "schema": {"$ref": "#/definitions/model.ViewState"}
                    },
                    "400": {
                        "description": "Invalid body or unknown city",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "503": {
                        "description": "Screen is shutting down",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/screen/stream": {
            "get": {
                "description": "Websocket sending the current view state on connect and then every change",
                "tags": ["screen"],
                "summary": "Stream screen states",
                "responses": {
                    "101": {
                        "description": "Switching protocols",
                        "schema": {"$ref": "#/definitions/model.ViewState"}
                    }
                }
            }
        }
    },
    "definitions": {
        "entity.WeatherDisplay": {
            "type": "object",
            "properties": {
                "airPressure": {"type": "number"},
                "condition": {"type": "string"},
                "conditionIcon": {"type": "string"},
                "humidity": {"type": "integer"},
                "localTime": {"type": "string"},
                "temperature": {"type": "number"},
                "windSpeed": {"type": "number"}
            }
        },
        "model.CitiesResponse": {
            "type": "object",
            "properties": {
                "cities": {"type": "array", "items": {"type": "string"}},
                "selected": {"type": "string"}
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string", "enum": ["UP", "DOWN", "UNKNOWN"]}
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "screen": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "status": {"type": "string", "enum": ["UP", "DOWN", "UNKNOWN"]},
                "weatherApi": {"$ref": "#/definitions/model.ComponentHealthStatus"}
            }
        },
        "model.SelectCityDTO": {
            "type": "object",
            "required": ["city"],
            "properties": {
                "city": {"type": "string"}
            }
        },
        "model.ViewState": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "data": {"$ref": "#/definitions/entity.WeatherDisplay"},
                "fetchId": {"type": "string"},
                "kind": {"type": "string", "enum": ["LOADING", "ERROR", "LOADED"]},
                "message": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/weather-screen",
	Schemes:          []string{},
	Title:            "Weather Screen API",
	Description:      "Current weather for a city picked from a fixed list, exposed as a loading / error / loaded view state.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
