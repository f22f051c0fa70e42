package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"surveyflow/internal/core/version"
	perr "surveyflow/internal/platform/errors"
)

//go:embed openapi.json
var openapiDoc string

// SpecMutator lets modules tweak the parsed spec before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator

	// docReader is a seam so tests can inject invalid JSON
	docReader = func() string { return openapiDoc }
)

// Register adds a spec mutator; call it while wiring modules
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// reset clears registered mutators for tests
func reset() {
	mu.Lock()
	mutators = nil
	mu.Unlock()
}

// serveDocJSON serves the embedded spec with the server url, build version and shared error responses filled in
func serveDocJSON(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec, err := Spec(baseURL)
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// Spec parses the embedded document and applies the global and registered tweaks
func Spec(baseURL string) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		return nil, err
	}

	ensureServers(spec, baseURL)
	stampVersion(spec)
	ensureErrorResponseDefinition(spec)
	addDefaultResponse(spec, "500", "Internal Server Error", http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered")
	addDefaultResponse(spec, "400", "Bad Request", http.StatusBadRequest, perr.ErrorCodeValidation, "clientId is a required field")

	mu.RLock()
	ms := append([]SpecMutator(nil), mutators...)
	mu.RUnlock()
	for _, m := range ms {
		m(spec)
	}
	return spec, nil
}

// ensureServers makes sure the spec is OAS 3.0.x and has a servers array
// the swagger ui bundle cannot render 3.1 yet
func ensureServers(spec map[string]any, url string) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// stampVersion replaces info.version with the linked build version unless it is a dev build
func stampVersion(spec map[string]any) {
	info, ok := spec["info"].(map[string]any)
	if !ok {
		info = map[string]any{"title": "API"}
		spec["info"] = info
	}
	if v := version.Info().Version; v != "dev" {
		info["version"] = v
	}
	if _, ok := info["version"]; !ok {
		info["version"] = "0.0.0"
	}
}

// ensureErrorResponseDefinition creates the error envelope model if missing
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse injects an error response for key on every operation that lacks one
func addDefaultResponse(spec map[string]any, key, desc string, status int, code perr.ErrorCode, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        int(code),
					"error":       msg,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[key]; !exists {
				responses[key] = resp
			}
		}
	}
}
