package web

import (
	"encoding/json"
	"net/http"

	"gym-listings/listing/application"
	"gym-listings/listing/domain"

	"go.uber.org/zap"
)

// API expõe a listagem fixa em JSON.
type API struct {
	Catalog application.Catalog
	Logger  *zap.Logger
	// OpenAPI liga /openapi/v1.json e /openapi/v1.yaml (ambiente Development).
	OpenAPI bool
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /gyms", a.GetGyms)
	if a.OpenAPI {
		mux.HandleFunc("GET /openapi/v1.json", serveOpenAPIJSON)
		mux.HandleFunc("GET /openapi/v1.yaml", serveOpenAPIYAML)
	}
}

// GetGyms responde 200 com o array JSON de nomes.
func (a *API) GetGyms(w http.ResponseWriter, r *http.Request) {
	ls, err := a.Catalog.List(r.Context())
	if err != nil {
		a.logger().Error("list gyms failed",
			zap.Error(err),
			zap.String("request_id", RequestIDFrom(r.Context())))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, domain.Names(ls))
}

func (a *API) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
