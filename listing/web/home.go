package web

import (
	"bytes"
	"net/http"

	"gym-listings/listing/application"
	"gym-listings/listing/domain"

	"go.uber.org/zap"
)

// HomeController serve o site: Index com a lista do upstream e Error genérico.
type HomeController struct {
	Home   application.Home
	View   View
	Logger *zap.Logger
}

func (c *HomeController) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.Index)
	mux.HandleFunc("GET /Home", c.Index)
	mux.HandleFunc("GET /Home/Index", c.Index)
	mux.HandleFunc("GET /Home/Error", c.Error)
}

// Index busca a lista; qualquer falha vira a página de erro com status 502.
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	page := c.Home.Index(r.Context())
	if page.Failed {
		c.logger().Warn("listing fetch failed",
			zap.Error(page.Err),
			zap.String("outcome", domain.Outcome(page.Err)),
			zap.String("request_id", RequestIDFrom(r.Context())))
		c.renderError(w, r, http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := c.View.Index(&buf, IndexModel{Gyms: domain.Names(page.Listings)}); err != nil {
		c.logger().Error("render index failed", zap.Error(err))
		c.renderError(w, r, http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Error é a página de erro genérica (200 quando acessada diretamente).
func (c *HomeController) Error(w http.ResponseWriter, r *http.Request) {
	c.renderError(w, r, http.StatusOK)
}

func (c *HomeController) renderError(w http.ResponseWriter, r *http.Request, status int) {
	// sem cache: cada página de erro tem um request id próprio
	w.Header().Set("Cache-Control", "no-store, no-cache")
	w.Header().Set("Pragma", "no-cache")

	var buf bytes.Buffer
	if err := c.View.Error(&buf, ErrorModel{RequestID: RequestIDFrom(r.Context())}); err != nil {
		c.logger().Error("render error page failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (c *HomeController) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
