// Package docs registra la especificación OpenAPI servida en /swagger/*.
// Regenerar con: swag init -g cmd/api/main.go -o internal/docs
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
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "summary": "Liveness",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mis mascotas",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.PetResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota fundadora",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Datos de la mascota", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.PetResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Ver mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.PetResponse"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}},
                    "422": {"description": "invalid genetic data", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualizar mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Campos a cambiar", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.updatePetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.PetResponse"}}
                }
            }
        },
        "/breedings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["breeding"],
                "summary": "Cruzar dos mascotas",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Padres y nombre de la cría", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/breeding.breedRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/breeding.breedResponse"}},
                    "400": {"description": "cannot breed: incompatible genetic data", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/breedings/preview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["breeding"],
                "summary": "Preview de compatibilidad",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Padre 1", "name": "parent1_id", "in": "query", "required": true},
                    {"type": "string", "description": "Padre 2", "name": "parent2_id", "in": "query", "required": true},
                    {"type": "integer", "description": "Crías simuladas (default 200, max 5000)", "name": "samples", "in": "query"},
                    {"type": "integer", "description": "Semilla del pronóstico", "name": "seed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/breeding.previewResponse"}}
                }
            }
        },
        "/genetics/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["genetics"],
                "summary": "Catálogo genético",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/breeding.catalogResponse"}}
                }
            }
        },
        "/genetics/punnett": {
            "get": {
                "produces": ["application/json"],
                "tags": ["genetics"],
                "summary": "Cuadro de Punnett suelto",
                "parameters": [
                    {"type": "string", "description": "ID del gen", "name": "gene", "in": "query", "required": true},
                    {"type": "string", "description": "Genotipo del padre 1", "name": "parent1", "in": "query", "required": true},
                    {"type": "string", "description": "Genotipo del padre 2", "name": "parent2", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/genetics.PunnettResult"}},
                    "400": {"description": "invalid genotype", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female", "unknown"]},
                "stage": {"type": "string", "enum": ["baby", "juvenile", "adult", "elder"]},
                "seed": {"type": "integer"}
            }
        },
        "pets.updatePetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "stage": {"type": "string"}
            }
        },
        "genetics.Stats": {
            "type": "object",
            "properties": {
                "speed": {"type": "integer"},
                "endurance": {"type": "integer"},
                "rarity_score": {"type": "number"},
                "rarity_tier": {"type": "string"},
                "market_value": {"type": "integer"}
            }
        },
        "pets.PetResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "name": {"type": "string"},
                "sex": {"type": "string"},
                "stage": {"type": "string"},
                "genotype": {"type": "string"},
                "genotypes": {"type": "object", "additionalProperties": {"type": "string"}},
                "phenotype": {"type": "object", "additionalProperties": {"type": "string"}},
                "stats": {"$ref": "#/definitions/genetics.Stats"},
                "parent1_id": {"type": "string"},
                "parent2_id": {"type": "string"},
                "generation": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "breeding.breedRequest": {
            "type": "object",
            "properties": {
                "parent1_id": {"type": "string"},
                "parent2_id": {"type": "string"},
                "name": {"type": "string"},
                "seed": {"type": "integer"}
            }
        },
        "breeding.breedResponse": {
            "type": "object",
            "properties": {
                "child": {"$ref": "#/definitions/pets.PetResponse"},
                "inheritance": {"type": "array", "items": {"type": "object"}},
                "squares": {"type": "array", "items": {"$ref": "#/definitions/genetics.PunnettResult"}}
            }
        },
        "breeding.previewResponse": {
            "type": "object",
            "properties": {
                "squares": {"type": "array", "items": {"$ref": "#/definitions/genetics.PunnettResult"}},
                "forecast": {"type": "object"}
            }
        },
        "breeding.catalogResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "tie_policy": {"type": "string"},
                "genes": {"type": "array", "items": {"type": "object"}},
                "stats": {"type": "object"}
            }
        },
        "genetics.PunnettResult": {
            "type": "object",
            "properties": {
                "gene": {"type": "string"},
                "trait": {"type": "string"},
                "parent1": {"type": "string"},
                "parent2": {"type": "string"},
                "grid": {"type": "array", "items": {"type": "array", "items": {"type": "object"}}},
                "outcomes": {"type": "array", "items": {"type": "object"}},
                "probabilities": {"type": "object", "additionalProperties": {"type": "number"}},
                "phenotype_odds": {"type": "object", "additionalProperties": {"type": "number"}}
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
	Title:            "Pet Genetics API",
	Description:      "Cría de mascotas: genotipos, cuadros de Punnett, fenotipo y stats derivados.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
