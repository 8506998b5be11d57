// Package web contém os adapters net/http da listagem: handlers da API e do
// site, views HTML e middlewares de borda (request id, https, recover, log).
package web
