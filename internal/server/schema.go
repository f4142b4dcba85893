package server

import (
	"net/http"
	"sprout/internal/advisor"

	"github.com/invopop/jsonschema"
)

// Schemas describes the bodies of the chat endpoints. Response belongs to
// /chat and FruitResponse to /chat/fruit.
type Schemas struct {
	Request       *jsonschema.Schema `json:"request"`
	Response      *jsonschema.Schema `json:"response"`
	FruitResponse *jsonschema.Schema `json:"fruit_response"`
}

// GenerateSchema creates an inline JSON schema for the given type
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var v T

	return reflector.Reflect(v)
}

// BuildSchemas returns the request schema and the response schema of each endpoint.
func BuildSchemas() Schemas {
	return Schemas{
		Request:       GenerateSchema[ChatRequest](),
		Response:      GenerateSchema[advisor.Result](),
		FruitResponse: GenerateSchema[advisor.FruitResult](),
	}
}

func schemaHandler(schemas Schemas) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, schemas)
	}
}
