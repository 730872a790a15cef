// Package api holds the generated swagger specification. Regenerate with:
//
//	swag init -g internal/http/router.go -o api
package api

import "github.com/swaggo/swag"

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
        "/api/v1/users/register": {
            "post": {
                "tags": ["Users"],
                "summary": "Begin registration",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/v1/users/verify-otp": {
            "post": {
                "tags": ["Users"],
                "summary": "Verify registration code",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/users/login": {
            "post": {
                "tags": ["Users"],
                "summary": "Log in",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/users/refresh-token": {
            "post": {
                "tags": ["Users"],
                "summary": "Refresh tokens",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/users/logout": {
            "post": {
                "tags": ["Users"],
                "security": [{"BearerAuth": []}],
                "summary": "Log out",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/users/forgot-password": {
            "post": {
                "tags": ["Users"],
                "summary": "Request password reset",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/api/v1/users/reset-password/{token}": {
            "post": {
                "tags": ["Users"],
                "summary": "Complete password reset",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/users/change-password": {
            "post": {
                "tags": ["Users"],
                "security": [{"BearerAuth": []}],
                "summary": "Change password",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/users/current-user": {
            "get": {
                "tags": ["Users"],
                "security": [{"BearerAuth": []}],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/users/update-account": {
            "patch": {
                "tags": ["Users"],
                "security": [{"BearerAuth": []}],
                "summary": "Update account",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/v1/users/history": {
            "get": {
                "tags": ["Users"],
                "security": [{"BearerAuth": []}],
                "summary": "Attempt history",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/quizzes/create": {
            "post": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Create quiz",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/quizzes/my-quizzes": {
            "get": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "List own quizzes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/quizzes/{quizID}": {
            "get": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Get quiz",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/quizzes/edit/{quizID}": {
            "get": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Get quiz for editing",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/quizzes/{quizID}/update": {
            "patch": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Update quiz",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/quizzes/{quizID}/delete": {
            "delete": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete quiz",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/quizzes/{quizID}/attempt": {
            "post": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Attempt quiz",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/quizzes/{quizID}/leaderboard": {
            "get": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Quiz leaderboard",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/quizzes/attempt/{attemptID}/results": {
            "get": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Attempt results",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/quizzes/user/attempts": {
            "get": {
                "tags": ["Quizzes"],
                "security": [{"BearerAuth": []}],
                "summary": "Own attempts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "QuizForge API",
	Description:      "Quiz platform backend: email-verified registration, JWT sessions with refresh rotation, quiz authoring, attempts and leaderboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
