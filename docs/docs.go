// Package docs registra en swag el documento OpenAPI del dashboard y su API de sesión.
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
        "/api/session": {
            "get": {
                "description": "Formulario actual, variante del ciclo de petición y vista renderizada.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Estado de la sesión",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SessionResponse"
                        }
                    }
                }
            }
        },
        "/api/session/form": {
            "patch": {
                "description": "value se interpreta según el tipo del campo. Si no es válido se conserva el valor anterior y accepted=false.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Editar un campo del formulario",
                "parameters": [
                    {
                        "description": "field y value",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.FieldEditRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FieldEditResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/session/submit": {
            "post": {
                "description": "Envía la instantánea actual del formulario. Con wait=true espera el resultado; sin él responde 202 con el estado pending.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Solicitar recomendación",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "esperar el resultado",
                        "name": "wait",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SessionResponse"
                        }
                    },
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/dto.SessionResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/session/report.pdf": {
            "get": {
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Descargar recomendación en PDF",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Con deep=true consulta además GET / del servicio de precios (timeout 3 s).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Estado del servicio",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "consultar el servicio de precios",
                        "name": "deep",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.FieldEditRequest": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "dto.FieldEditResponse": {
            "type": "object",
            "properties": {
                "accepted": {
                    "type": "boolean"
                },
                "form": {
                    "$ref": "#/definitions/entity.PricingInput"
                }
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "pricing_api": {
                    "type": "string"
                },
                "pricing_api_reachable": {
                    "type": "boolean"
                },
                "service": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "dto.RequestStateDTO": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "input": {
                    "$ref": "#/definitions/entity.PricingInput"
                },
                "result": {
                    "$ref": "#/definitions/entity.PricingResult"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "form": {
                    "$ref": "#/definitions/entity.PricingInput"
                },
                "state": {
                    "$ref": "#/definitions/dto.RequestStateDTO"
                },
                "view": {
                    "$ref": "#/definitions/view.ResultView"
                }
            }
        },
        "entity.PricingInput": {
            "type": "object",
            "properties": {
                "competitor_price": {
                    "type": "number"
                },
                "cost": {
                    "type": "number"
                },
                "demand": {
                    "type": "number"
                },
                "inventory": {
                    "type": "integer"
                },
                "seasonality": {
                    "type": "integer",
                    "enum": [
                        0,
                        1
                    ]
                }
            }
        },
        "entity.PricingResult": {
            "type": "object",
            "properties": {
                "predicted_demand": {
                    "type": "number"
                },
                "pricing_strategy": {
                    "type": "string"
                },
                "recommended_price": {
                    "type": "number"
                }
            }
        },
        "view.RenderedResult": {
            "type": "object",
            "properties": {
                "predicted_demand": {
                    "type": "string"
                },
                "recommended_price": {
                    "type": "string"
                },
                "strategy": {
                    "type": "string"
                },
                "strategy_glyph": {
                    "type": "string"
                },
                "strategy_name": {
                    "type": "string"
                }
            }
        },
        "view.ResultView": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "placeholder": {
                    "type": "string"
                },
                "result": {
                    "$ref": "#/definitions/view.RenderedResult"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Optimal Price API",
	Description:      "Dashboard de recomendación de precios: formulario, ciclo de petición y vista del resultado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
