// Package docs holds the generated Swagger document for the pyscan API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "description": "REST API for the pyscan concurrent TCP connect-scanner.",
    "title": "pyscan API",
    "version": "1.0"
  },
  "basePath": "/api/v1",
  "schemes": [
    "http"
  ],
  "securityDefinitions": {
    "ApiKeyAuth": {
      "type": "apiKey",
      "name": "Authorization",
      "in": "header"
    }
  },
  "paths": {
    "/scans": {
      "post": {
        "consumes": [
          "application/json"
        ],
        "produces": [
          "application/json"
        ],
        "summary": "Create a new scan task",
        "description": "Submit a scan definition and let the service execute it asynchronously. The handler validates input, persists the task, and enqueues it for background workers before returning a UUID. Clients poll GET /scans/{id} to observe status transitions (pending, running, completed or failed); port findings are attached only after completion.",
        "operationId": "createScan",
        "tags": [
          "Scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "description": "Scan request parameters",
            "name": "scanRequest",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateScanRequest"
            }
          }
        ],
        "responses": {
          "202": {
            "description": "Scan accepted; poll GET /scans/{id} to track progress",
            "schema": {
              "$ref": "#/definitions/ScanAcceptedResponse"
            }
          },
          "400": {
            "description": "Malformed JSON body or failed validation",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "401": {
            "description": "Missing or incorrect API key",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "429": {
            "description": "Rate limit exceeded for the calling client",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "500": {
            "description": "Internal error while persisting or queueing the task",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    },
    "/scans/{id}": {
      "get": {
        "produces": [
          "application/json"
        ],
        "summary": "Get scan task status and results",
        "description": "Fetch the current state of a scan task. While the task is pending or running only metadata is returned; once completed the response carries the full, sorted list of port states.",
        "operationId": "getScan",
        "tags": [
          "Scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "type": "string",
            "description": "Task ID (UUID)",
            "name": "id",
            "in": "path",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "Current task state",
            "schema": {
              "$ref": "#/definitions/ScanTask"
            }
          },
          "400": {
            "description": "Task ID is not a valid UUID",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "404": {
            "description": "No task exists with the given ID",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "500": {
            "description": "Internal error while loading the task",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    }
  },
  "definitions": {
    "CreateScanRequest": {
      "type": "object",
      "required": [
        "hosts",
        "ports"
      ],
      "properties": {
        "hosts": {
          "type": "array",
          "items": {
            "type": "string"
          },
          "example": [
            "scanme.nmap.org"
          ]
        },
        "ports": {
          "type": "string",
          "example": "22,80,443"
        },
        "timeout_ms": {
          "type": "integer",
          "example": 1000
        },
        "workers": {
          "type": "integer",
          "example": 100
        }
      },
      "additionalProperties": false
    },
    "ScanAcceptedResponse": {
      "type": "object",
      "properties": {
        "id": {
          "type": "string",
          "example": "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"
        },
        "status": {
          "type": "string",
          "example": "pending"
        }
      },
      "additionalProperties": false
    },
    "ErrorResponse": {
      "type": "object",
      "properties": {
        "error": {
          "type": "string",
          "example": "task not found"
        }
      },
      "additionalProperties": false
    },
    "ScanResult": {
      "type": "object",
      "properties": {
        "host": {
          "type": "string",
          "example": "scanme.nmap.org"
        },
        "port": {
          "type": "integer",
          "example": 22
        },
        "protocol": {
          "type": "string",
          "example": "tcp"
        },
        "state": {
          "type": "string",
          "enum": [
            "open",
            "closed",
            "filtered"
          ],
          "example": "open"
        },
        "service": {
          "type": "string",
          "example": "ssh",
          "x-nullable": true
        }
      },
      "additionalProperties": false
    },
    "ScanTask": {
      "type": "object",
      "properties": {
        "id": {
          "type": "string",
          "example": "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"
        },
        "status": {
          "type": "string",
          "example": "pending"
        },
        "hosts": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "ports": {
          "type": "string",
          "example": "22,80,443"
        },
        "timeout_ms": {
          "type": "integer",
          "example": 1000
        },
        "workers": {
          "type": "integer",
          "example": 100
        },
        "results": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/ScanResult"
          }
        },
        "created_at": {
          "type": "string",
          "format": "date-time",
          "example": "2024-01-02T15:04:05Z"
        },
        "completed_at": {
          "type": "string",
          "format": "date-time"
        },
        "error": {
          "type": "string",
          "example": "empty port spec"
        }
      },
      "additionalProperties": false
    }
  }
}
`

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

type swaggerDoc struct{}

func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}
