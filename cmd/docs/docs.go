// Package docs holds the OpenAPI description served under /swagger.
// It follows the layout swag init writes to cmd/docs.
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
        "/journal-entries/{entryID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Retrieves a journal entry and its lines by entry ID",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "posting"
                ],
                "summary": "Get a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Journal entry ID",
                        "name": "entryID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.JournalEntry"
                        }
                    },
                    "404": {
                        "description": "Journal entry not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to retrieve journal entry",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/loans/terms": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Computes fee, interest, total and monthly installment without storing anything",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Quote loan terms",
                "parameters": [
                    {
                        "description": "Loan inputs",
                        "name": "terms",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.LoanTermsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/accounting.LoanTerms"
                        }
                    },
                    "400": {
                        "description": "Invalid request format or validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/loans/{loanID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Get a loan",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Loan ID",
                        "name": "loanID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Loan"
                        }
                    },
                    "404": {
                        "description": "Loan not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to retrieve loan",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/loans/{loanID}/disburse": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Fixes the loan terms, opens the outstanding balance and schedules the first installment",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Disburse an approved loan",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Loan ID",
                        "name": "loanID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DisbursementResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Loan not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Loan is not approved",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to disburse loan",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/loans/{loanID}/payments": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "List loan repayments",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Loan ID",
                        "name": "loanID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RepaymentListResponse"
                        }
                    },
                    "404": {
                        "description": "Loan not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to list loan payments",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Books a payment and splits it into principal and interest with the chosen allocation policy",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Apply a loan payment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Loan ID",
                        "name": "loanID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Payment details",
                        "name": "payment",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.LoanRepayment"
                        }
                    },
                    "400": {
                        "description": "Invalid amount or overpayment",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Loan not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Loan does not accept payments or concurrency conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to apply loan payment",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/loans/{loanID}/payments/{repaymentID}/reverse": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Marks a completed payment reversed and restores the loan balances",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Reverse a loan payment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Loan ID",
                        "name": "loanID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Repayment ID",
                        "name": "repaymentID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Reversal reason",
                        "name": "reversal",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReversePaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LoanRepayment"
                        }
                    },
                    "400": {
                        "description": "Missing reason",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Repayment not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Repayment cannot be reversed",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to reverse loan payment",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/loans/{loanID}/status": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "loans"
                ],
                "summary": "Change the status of a loan",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Loan ID",
                        "name": "loanID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Target status",
                        "name": "status",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.StatusTransitionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Loan"
                        }
                    },
                    "400": {
                        "description": "Invalid status",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Transition not allowed",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to change loan status",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/products/{productID}/movements": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists the movement history of a product, oldest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "List stock movements",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "productID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StockMovementResponse"
                        }
                    },
                    "500": {
                        "description": "Failed to list stock movements",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Changes the stock of a product and appends the movement to its history",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "Record a stock movement",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Product ID",
                        "name": "productID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Movement details",
                        "name": "movement",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.StockMovementRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.StockMovement"
                        }
                    },
                    "400": {
                        "description": "Invalid request format or validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Product not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Insufficient stock",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to apply stock movement",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/transactions/{transactionID}/post": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Posts a completed sale or purchase and records its stock movements. Posting an already posted transaction answers 200 with the existing entry; a fresh posting answers 201.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "posting"
                ],
                "summary": "Post a transaction to the general ledger",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Transaction was already posted",
                        "schema": {
                            "$ref": "#/definitions/dto.PostResult"
                        }
                    },
                    "201": {
                        "description": "Entry created",
                        "schema": {
                            "$ref": "#/definitions/dto.PostResult"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Transaction not postable or concurrency conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Insufficient stock",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to post transaction",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/transactions/{transactionID}/refunds": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates a return transaction and its reversing entry. An empty body refunds the remaining amount.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "posting"
                ],
                "summary": "Refund a posted sale",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Sale transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Refund amount and reason",
                        "name": "refund",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/dto.RefundRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.RefundResult"
                        }
                    },
                    "400": {
                        "description": "Invalid request format or refund amount",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Transaction cannot be refunded",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to refund transaction",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "accounting.LoanTerms": {
            "type": "object",
            "properties": {
                "monthlyInstallment": {
                    "type": "string"
                },
                "months": {
                    "type": "string"
                },
                "processingFee": {
                    "type": "string"
                },
                "totalAmount": {
                    "type": "string"
                },
                "totalInterest": {
                    "type": "string"
                }
            }
        },
        "domain.JournalEntry": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string"
                },
                "entryDate": {
                    "type": "string"
                },
                "entryID": {
                    "type": "string"
                },
                "entryNumber": {
                    "type": "string"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.JournalEntryLine"
                    }
                },
                "ownerID": {
                    "type": "string"
                },
                "referenceID": {
                    "type": "string"
                },
                "referenceType": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "POSTED",
                        "VOID"
                    ]
                }
            }
        },
        "domain.JournalEntryLine": {
            "type": "object",
            "properties": {
                "accountCode": {
                    "type": "string"
                },
                "accountID": {
                    "type": "string"
                },
                "credit": {
                    "type": "string"
                },
                "debit": {
                    "type": "string"
                },
                "entryID": {
                    "type": "string"
                },
                "lineID": {
                    "type": "string"
                },
                "memo": {
                    "type": "string"
                }
            }
        },
        "domain.Loan": {
            "type": "object",
            "properties": {
                "amountPaid": {
                    "type": "string"
                },
                "borrowerID": {
                    "type": "string"
                },
                "disbursedAt": {
                    "type": "string"
                },
                "finalRepaymentDate": {
                    "type": "string"
                },
                "firstRepaymentDate": {
                    "type": "string"
                },
                "interestPaid": {
                    "type": "string"
                },
                "interestRate": {
                    "type": "string"
                },
                "interestType": {
                    "type": "string",
                    "enum": [
                        "flat",
                        "reducing",
                        "fixed"
                    ]
                },
                "loanID": {
                    "type": "string"
                },
                "loanNumber": {
                    "type": "string"
                },
                "monthlyInstallment": {
                    "type": "string"
                },
                "outstandingBalance": {
                    "type": "string"
                },
                "principal": {
                    "type": "string"
                },
                "principalPaid": {
                    "type": "string"
                },
                "processingFee": {
                    "type": "string"
                },
                "processingFeeRate": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "applied",
                        "under_review",
                        "approved",
                        "rejected",
                        "disbursed",
                        "active",
                        "completed",
                        "defaulted",
                        "written_off"
                    ]
                },
                "tenureDays": {
                    "type": "integer"
                },
                "totalAmount": {
                    "type": "string"
                },
                "totalInterest": {
                    "type": "string"
                },
                "version": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                }
            }
        },
        "domain.LoanRepayment": {
            "type": "object",
            "properties": {
                "daysLate": {
                    "type": "integer"
                },
                "dueDate": {
                    "type": "string"
                },
                "interestAmount": {
                    "type": "string"
                },
                "loanID": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "paidAmount": {
                    "type": "string"
                },
                "paymentDate": {
                    "type": "string"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "paymentReference": {
                    "type": "string"
                },
                "penaltyAmount": {
                    "type": "string"
                },
                "principalAmount": {
                    "type": "string"
                },
                "repaymentID": {
                    "type": "string"
                },
                "repaymentType": {
                    "type": "string",
                    "enum": [
                        "scheduled",
                        "manual",
                        "early",
                        "auto_deduction",
                        "penalty"
                    ]
                },
                "reversalReason": {
                    "type": "string"
                },
                "scheduledAmount": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "completed",
                        "failed",
                        "reversed"
                    ]
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                }
            }
        },
        "domain.StockMovement": {
            "type": "object",
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "movementID": {
                    "type": "string"
                },
                "movementType": {
                    "type": "string",
                    "enum": [
                        "purchase",
                        "sale",
                        "return",
                        "adjustment",
                        "damage",
                        "transfer"
                    ]
                },
                "notes": {
                    "type": "string"
                },
                "productID": {
                    "type": "string"
                },
                "quantity": {
                    "type": "string"
                },
                "referenceNumber": {
                    "type": "string"
                },
                "stockAfter": {
                    "type": "string"
                },
                "stockBefore": {
                    "type": "string"
                },
                "unitCost": {
                    "type": "string"
                }
            }
        },
        "domain.Transaction": {
            "type": "object",
            "properties": {
                "flowDirection": {
                    "type": "string",
                    "enum": [
                        "inward",
                        "outward"
                    ]
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.TransactionItem"
                    }
                },
                "journalEntryCreated": {
                    "type": "boolean"
                },
                "journalEntryReference": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "originalTransactionID": {
                    "type": "string"
                },
                "ownerID": {
                    "type": "string"
                },
                "refundedAmount": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "totalAmount": {
                    "type": "string"
                },
                "transactionDate": {
                    "type": "string"
                },
                "transactionID": {
                    "type": "string"
                },
                "transactionNumber": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "sale",
                        "purchase",
                        "return",
                        "adjustment"
                    ]
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                }
            }
        },
        "domain.TransactionItem": {
            "type": "object",
            "properties": {
                "itemID": {
                    "type": "string"
                },
                "productID": {
                    "type": "string"
                },
                "productName": {
                    "type": "string"
                },
                "quantity": {
                    "type": "string"
                },
                "transactionID": {
                    "type": "string"
                },
                "unitCost": {
                    "type": "string"
                },
                "unitPrice": {
                    "type": "string"
                }
            }
        },
        "dto.DisbursementResponse": {
            "type": "object",
            "properties": {
                "loan": {
                    "$ref": "#/definitions/domain.Loan"
                },
                "scheduledRepayment": {
                    "$ref": "#/definitions/domain.LoanRepayment"
                }
            }
        },
        "dto.LoanTermsRequest": {
            "type": "object",
            "required": [
                "interestType",
                "tenureDays"
            ],
            "properties": {
                "interestRate": {
                    "type": "string"
                },
                "interestType": {
                    "type": "string",
                    "enum": [
                        "flat",
                        "reducing",
                        "fixed"
                    ]
                },
                "principal": {
                    "type": "string"
                },
                "processingFeeRate": {
                    "type": "string"
                },
                "tenureDays": {
                    "type": "integer",
                    "minimum": 1
                }
            }
        },
        "dto.PaymentRequest": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "policy": {
                    "type": "string",
                    "enum": [
                        "fixed_ratio",
                        "proportional",
                        "interest_first"
                    ]
                }
            }
        },
        "dto.PostResult": {
            "type": "object",
            "properties": {
                "entry": {
                    "$ref": "#/definitions/domain.JournalEntry"
                },
                "movements": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.StockMovement"
                    }
                },
                "noOp": {
                    "type": "boolean"
                }
            }
        },
        "dto.RefundRequest": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "string"
                },
                "reason": {
                    "type": "string",
                    "maxLength": 500
                }
            }
        },
        "dto.RefundResult": {
            "type": "object",
            "properties": {
                "entry": {
                    "$ref": "#/definitions/domain.JournalEntry"
                },
                "fullRefund": {
                    "type": "boolean"
                },
                "movements": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.StockMovement"
                    }
                },
                "returnTransaction": {
                    "$ref": "#/definitions/domain.Transaction"
                }
            }
        },
        "dto.RepaymentListResponse": {
            "type": "object",
            "properties": {
                "repayments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LoanRepayment"
                    }
                }
            }
        },
        "dto.ReversePaymentRequest": {
            "type": "object",
            "required": [
                "reason"
            ],
            "properties": {
                "reason": {
                    "type": "string",
                    "maxLength": 500
                }
            }
        },
        "dto.StatusTransitionRequest": {
            "type": "object",
            "required": [
                "status"
            ],
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "applied",
                        "under_review",
                        "approved",
                        "rejected",
                        "disbursed",
                        "active",
                        "completed",
                        "defaulted",
                        "written_off"
                    ]
                }
            }
        },
        "dto.StockMovementRequest": {
            "type": "object",
            "required": [
                "movementType",
                "productID"
            ],
            "properties": {
                "movementType": {
                    "type": "string",
                    "enum": [
                        "purchase",
                        "sale",
                        "return",
                        "adjustment",
                        "damage",
                        "transfer"
                    ]
                },
                "notes": {
                    "type": "string"
                },
                "productID": {
                    "type": "string"
                },
                "quantity": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "unitCost": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "POS Posting Engine API",
	Description:      "Posts POS sales, purchases and refunds to a double-entry ledger and keeps stock and loan balances.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
