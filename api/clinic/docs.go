// Package clinic holds the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g internal/clinic/http/router.go -o api/clinic
package clinic

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "AussieBroadWAN Team",
			"url": "https://github.com/aussiebroadwan/neurohealth"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/usuarios": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Usuarios"
				],
				"summary": "List Users",
				"responses": {
					"200": {
						"description": "All users",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/clinicsdk.User"
							}
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/usuarios/registro": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Usuarios"
				],
				"summary": "Register User",
				"responses": {
					"201": {
						"description": "Created user",
						"schema": {
							"$ref": "#/definitions/clinicsdk.User"
						}
					},
					"400": {
						"description": "Validation message",
						"schema": {
							"type": "string"
						}
					},
					"429": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"description": "Creates a patient or specialist account and sends a welcome email. The role defaults to \"usuario\".",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Account data",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/clinicsdk.RegisterRequest"
						}
					}
				]
			}
		},
		"/usuarios/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Usuarios"
				],
				"summary": "Login",
				"responses": {
					"200": {
						"description": "Authenticated user",
						"schema": {
							"$ref": "#/definitions/clinicsdk.User"
						}
					},
					"401": {
						"description": "Wrong email or password (empty body)",
						"schema": {
							"type": "string"
						}
					},
					"429": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"description": "Checks an email and password. Credentials may be sent as query parameters or as a form body.",
				"consumes": [
					"application/x-www-form-urlencoded"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Email",
						"name": "email",
						"in": "query",
						"required": true
					},
					{
						"type": "string",
						"description": "Password",
						"name": "contrasena",
						"in": "query",
						"required": true
					}
				]
			}
		},
		"/usuarios/especialistas": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Usuarios"
				],
				"summary": "List Specialists",
				"responses": {
					"200": {
						"description": "Users with role especialista",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/clinicsdk.User"
							}
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/usuarios/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Usuarios"
				],
				"summary": "Get User",
				"responses": {
					"200": {
						"description": "User",
						"schema": {
							"$ref": "#/definitions/clinicsdk.User"
						}
					},
					"404": {
						"description": "Usuario no encontrado con ID: {id}",
						"schema": {
							"type": "string"
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/citas": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citas"
				],
				"summary": "List Appointments",
				"responses": {
					"200": {
						"description": "Appointments",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/clinicsdk.AppointmentDetail"
							}
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"description": "Every appointment with the patient and specialist names and the status \"Activo\".\nThe patient name is under \"usuario\" when the appointment has a specialist, otherwise under \"pacienteNombre\"."
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citas"
				],
				"summary": "Book Appointment",
				"responses": {
					"201": {
						"description": "Booked appointment",
						"schema": {
							"$ref": "#/definitions/clinicsdk.Appointment"
						}
					},
					"400": {
						"description": "Usuario no encontrado con ID: {id}",
						"schema": {
							"type": "string"
						}
					},
					"429": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"description": "Books an appointment between an existing patient and an existing specialist, schedules a reminder and sends a confirmation email.\nA failed confirmation email does not fail the booking.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Appointment",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/clinicsdk.CreateAppointmentRequest"
						}
					}
				]
			}
		},
		"/citas/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citas"
				],
				"summary": "Get Appointment",
				"responses": {
					"200": {
						"description": "Appointment",
						"schema": {
							"$ref": "#/definitions/clinicsdk.Appointment"
						}
					},
					"404": {
						"description": "Cita no encontrado con ID: {id}",
						"schema": {
							"type": "string"
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Appointment ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/citas/usuario/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citas"
				],
				"summary": "List Patient Appointments",
				"responses": {
					"200": {
						"description": "Appointments as stored",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/clinicsdk.Appointment"
							}
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Patient ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/citas/especialista/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citas"
				],
				"summary": "List Specialist Appointments",
				"responses": {
					"200": {
						"description": "Appointments with names",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/clinicsdk.AppointmentDetail"
							}
						}
					},
					"500": {
						"description": "error, error_description",
						"schema": {
							"$ref": "#/definitions/clinicsdk.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Specialist ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/livez": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Liveness probe",
				"responses": {
					"200": {
						"description": "status, uptime, version",
						"schema": {
							"$ref": "#/definitions/clinicsdk.HealthResponse"
						}
					}
				},
				"description": "Reports that the process is up, with uptime and build version. Never touches the database."
			}
		},
		"/readyz": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Readiness probe",
				"responses": {
					"200": {
						"description": "status, uptime, version, checks",
						"schema": {
							"$ref": "#/definitions/clinicsdk.HealthResponse"
						}
					},
					"503": {
						"description": "database unreachable",
						"schema": {
							"$ref": "#/definitions/clinicsdk.HealthResponse"
						}
					}
				},
				"description": "Pings the record store. Answers 503 while the database is unreachable."
			}
		}
	},
	"definitions": {
		"clinicsdk.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"error_description": {
					"type": "string"
				}
			}
		},
		"clinicsdk.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"nombre": {
					"type": "string"
				},
				"apellido": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"rol": {
					"type": "string"
				}
			}
		},
		"clinicsdk.RegisterRequest": {
			"type": "object",
			"properties": {
				"nombre": {
					"type": "string"
				},
				"apellido": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"contrasena": {
					"type": "string"
				},
				"rol": {
					"type": "string",
					"description": "Rol defaults to \"usuario\" when empty."
				}
			}
		},
		"clinicsdk.CreateAppointmentRequest": {
			"type": "object",
			"properties": {
				"usuarioId": {
					"type": "string"
				},
				"especialistaId": {
					"type": "string"
				},
				"fecha": {
					"type": "string",
					"example": "2024-05-01"
				},
				"hora": {
					"type": "string",
					"example": "10:00"
				}
			}
		},
		"clinicsdk.Appointment": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"usuarioId": {
					"type": "string"
				},
				"especialistaId": {
					"type": "string"
				},
				"fecha": {
					"type": "string"
				},
				"hora": {
					"type": "string"
				}
			}
		},
		"clinicsdk.AppointmentDetail": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"usuarioId": {
					"type": "string"
				},
				"especialistaId": {
					"type": "string"
				},
				"fecha": {
					"type": "string"
				},
				"hora": {
					"type": "string"
				},
				"usuario": {
					"type": "string"
				},
				"pacienteNombre": {
					"type": "string"
				},
				"especialistaNombre": {
					"type": "string"
				},
				"estado": {
					"type": "string"
				}
			}
		},
		"clinicsdk.HealthChecks": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string"
				}
			}
		},
		"clinicsdk.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"checks": {
					"$ref": "#/definitions/clinicsdk.HealthChecks"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "NeuroHealth Clinic API",
	Description:      "Appointment booking for the NeuroHealth clinic: patient and specialist accounts, appointments, and email notifications.\n\nBusiness rule violations are answered with 400 and a plain text message.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
