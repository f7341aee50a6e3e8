// Package docs provides the swagger specification served in non-production
// environments.
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
        "/customers": {
            "post": {"tags": ["customers"], "summary": "Register a new customer", "responses": {"201": {"description": "Created"}}},
            "get": {"tags": ["customers"], "summary": "List customers", "responses": {"200": {"description": "OK"}}}
        },
        "/customers/{id}": {
            "get": {"tags": ["customers"], "summary": "Get a customer by ID", "responses": {"200": {"description": "OK"}}}
        },
        "/accounts": {
            "post": {"tags": ["accounts"], "summary": "Open a new account", "responses": {"201": {"description": "Created"}}}
        },
        "/accounts/{number}": {
            "get": {"tags": ["accounts"], "summary": "Get an account by number", "responses": {"200": {"description": "OK"}}}
        },
        "/accounts/{number}/balance": {
            "get": {"tags": ["accounts"], "summary": "Get the current balance of an account", "responses": {"200": {"description": "OK"}}}
        },
        "/accounts/{number}/status": {
            "put": {"tags": ["accounts"], "summary": "Change the status of an account", "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{number}/deposits": {
            "post": {"tags": ["movements"], "summary": "Deposit funds into an account", "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{number}/withdrawals": {
            "post": {"tags": ["movements"], "summary": "Withdraw funds from an account", "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{number}/external-transfers": {
            "post": {"tags": ["movements"], "summary": "Send funds out of the ledger", "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{number}/interest": {
            "post": {"tags": ["movements"], "summary": "Accrue interest on an account", "responses": {"204": {"description": "No Content"}}}
        },
        "/accounts/{number}/transactions": {
            "get": {"tags": ["transactions"], "summary": "List an account's transactions for one day", "responses": {"200": {"description": "OK"}}}
        },
        "/transfers": {
            "post": {"tags": ["transfers"], "summary": "Transfer funds between two accounts", "responses": {"204": {"description": "No Content"}}}
        },
        "/transactions": {
            "get": {"tags": ["transactions"], "summary": "List every transaction of one day", "responses": {"200": {"description": "OK"}}}
        },
        "/transactions/{id}": {
            "get": {"tags": ["transactions"], "summary": "Get a transaction by ID", "responses": {"200": {"description": "OK"}}}
        },
        "/transactions/{id}/reversal": {
            "post": {"tags": ["transactions"], "summary": "Reverse a completed transaction", "responses": {"204": {"description": "No Content"}}}
        },
        "/reports/daily": {
            "get": {"tags": ["reports"], "summary": "Daily credit/debit totals", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ledger Backend API",
	Description:      "Bank account ledger: customers, accounts, movements, transfers and daily reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
