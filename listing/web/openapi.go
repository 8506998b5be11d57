package web

import (
	"net/http"

	"gopkg.in/yaml.v3"
)

// Documento OpenAPI mínimo da webapi; só cobre GET /gyms.
type openAPIDoc struct {
	OpenAPI string                      `json:"openapi" yaml:"openapi"`
	Info    openAPIInfo                 `json:"info" yaml:"info"`
	Paths   map[string]map[string]apiOp `json:"paths" yaml:"paths"`
	Tags    []map[string]string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type openAPIInfo struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

type apiOp struct {
	OperationID string                 `json:"operationId" yaml:"operationId"`
	Tags        []string               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Responses   map[string]apiResponse `json:"responses" yaml:"responses"`
}

type apiResponse struct {
	Description string                  `json:"description" yaml:"description"`
	Content     map[string]apiMediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type apiMediaType struct {
	Schema apiSchema `json:"schema" yaml:"schema"`
}

type apiSchema struct {
	Type  string     `json:"type" yaml:"type"`
	Items *apiSchema `json:"items,omitempty" yaml:"items,omitempty"`
}

func openAPIDocument() openAPIDoc {
	return openAPIDoc{
		OpenAPI: "3.1.1",
		Info:    openAPIInfo{Title: "webapi | v1", Version: "1.0.0"},
		Paths: map[string]map[string]apiOp{
			"/gyms": {
				"get": {
					OperationID: "GetGyms",
					Tags:        []string{"webapi"},
					Responses: map[string]apiResponse{
						"200": {
							Description: "OK",
							Content: map[string]apiMediaType{
								"application/json": {Schema: apiSchema{Type: "array", Items: &apiSchema{Type: "string"}}},
							},
						},
					},
				},
			},
		},
		Tags: []map[string]string{{"name": "webapi"}},
	}
}

func serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, openAPIDocument())
}

func serveOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	b, err := yaml.Marshal(openAPIDocument())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(b)
}
