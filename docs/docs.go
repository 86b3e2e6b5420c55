// Package docs holds the Swagger 2.0 document served under /swagger/.
// It is kept in step with the swag annotations in cmd/api and
// internal/handler/http/news by hand; `swag init -g cmd/api/main.go`
// regenerates it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/news": {
            "get": {
                "description": "ニュースを id の昇順で取得します。1ページあたりの件数はサーバー設定で固定です。id は完全一致、title は大文字小文字を区別しない部分一致で絞り込めます。",
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "ニュース一覧取得（ページネーション対応）",
                "parameters": [
                    {"minimum": 1, "type": "integer", "default": 1, "description": "ページ番号 (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "ID 完全一致", "name": "id", "in": "query"},
                    {"type": "string", "description": "タイトル部分一致（大文字小文字を区別しない）", "name": "title", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "ページネーション付きニュース一覧", "schema": {"$ref": "#/definitions/pagination.Response-news_DTO"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "500": {"description": "サーバーエラー", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            },
            "post": {
                "description": "新しいニュースを作成します。title は 5〜225 文字、content は 10 文字以上が必要です。",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "ニュース作成",
                "parameters": [
                    {"description": "ニュース情報", "name": "news", "in": "body", "required": true, "schema": {"$ref": "#/definitions/news.WriteRequest"}}
                ],
                "responses": {
                    "201": {"description": "作成されたニュース", "schema": {"$ref": "#/definitions/news.DTO"}, "headers": {"Location": {"type": "string", "description": "作成されたニュースの URL"}}},
                    "400": {"description": "Bad request - validation failed or malformed JSON", "schema": {"$ref": "#/definitions/respond.ValidationFailure"}},
                    "413": {"description": "Request body too large", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "415": {"description": "Unsupported media type", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "429": {"description": "Too many requests - rate limit exceeded", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}, "headers": {"Retry-After": {"type": "integer", "description": "Seconds until the client should retry"}}},
                    "500": {"description": "サーバーエラー", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/news/{id}": {
            "get": {
                "description": "指定されたIDのニュースを取得します",
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "ニュース詳細取得",
                "parameters": [
                    {"type": "integer", "description": "ニュースID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "ニュース詳細", "schema": {"$ref": "#/definitions/news.DTO"}},
                    "400": {"description": "Bad request - invalid news ID", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not found - news not found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "500": {"description": "サーバーエラー", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            },
            "put": {
                "description": "指定されたIDのニュースを部分更新します。省略したフィールドは変更されません。resource 設定で put が有効な場合のみ公開されます。",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "ニュース更新",
                "parameters": [
                    {"type": "integer", "description": "ニュースID", "name": "id", "in": "path", "required": true},
                    {"description": "更新するフィールド", "name": "news", "in": "body", "required": true, "schema": {"$ref": "#/definitions/news.WriteRequest"}}
                ],
                "responses": {
                    "200": {"description": "更新されたニュース", "schema": {"$ref": "#/definitions/news.DTO"}},
                    "400": {"description": "Bad request - validation failed, invalid ID or malformed JSON", "schema": {"$ref": "#/definitions/respond.ValidationFailure"}},
                    "404": {"description": "Not found - news not found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "405": {"description": "Method not allowed - update is not enabled", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "429": {"description": "Too many requests - rate limit exceeded", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "500": {"description": "サーバーエラー", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "news.DTO": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Service goes live today."},
                "createdAt": {"type": "string", "example": "2025-07-19T09:00:00Z"},
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string", "example": "Launch Update"},
                "updatedAt": {"type": "string", "example": "2025-07-19T09:00:00Z"}
            }
        },
        "news.WriteRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Service goes live today."},
                "title": {"type": "string", "example": "Launch Update"}
            }
        },
        "pagination.Metadata": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "pagination.Response-news_DTO": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/news.DTO"}},
                "pagination": {"$ref": "#/definitions/pagination.Metadata"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "news not found"}
            }
        },
        "respond.Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "respond.ValidationFailure": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "violations": {"type": "array", "items": {"$ref": "#/definitions/respond.Violation"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "News API",
	Description:      "ニュースリソースの REST API\nニュースの作成・取得・一覧（ページネーション、フィルタ）を提供します。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
