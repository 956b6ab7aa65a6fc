// Package docs registers the OpenAPI document served at /swagger.
// Regenerate it from the handler annotations with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/balance-engine/trial-balance": {
            "post": {
                "operationId": "buildTrialBalance",
                "summary": "Build a trial balance",
                "tags": ["balance-engine"],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/balance-engine/trial-balance/columns": {
            "get": {
                "operationId": "getTrialBalanceColumns",
                "summary": "Describe trial balance columns",
                "tags": ["balance-engine"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string"},
                    {"name": "valuateBalances", "in": "query", "type": "boolean"},
                    {"name": "withAverageBalance", "in": "query", "type": "boolean"},
                    {"name": "showCascadeBalances", "in": "query", "type": "boolean"},
                    {"name": "returnLedgerColumn", "in": "query", "type": "boolean"},
                    {"name": "withSectorization", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/balance-engine/vouchers-importer/start": {
            "post": {
                "operationId": "startVoucherImporter",
                "summary": "Start the voucher importer",
                "tags": ["vouchers-importer"],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "schema": {"type": "object"}}],
                "responses": {
                    "202": {"description": "Accepted"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/balance-engine/vouchers-importer/stop": {
            "post": {
                "operationId": "stopVoucherImporter",
                "summary": "Stop the voucher importer",
                "tags": ["vouchers-importer"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/balance-engine/vouchers-importer/status": {
            "get": {
                "operationId": "getVoucherImporterStatus",
                "summary": "Get voucher importer status",
                "tags": ["vouchers-importer"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/system/info": {
            "get": {
                "operationId": "getSystemInfo",
                "summary": "Get system information",
                "tags": ["system"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/system/ping": {
            "get": {
                "operationId": "pingSystem",
                "summary": "Ping the API",
                "tags": ["system"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Financial Accounting Balance Engine API",
	Description:      "Trial balance aggregation and voucher import for the financial accounting backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
