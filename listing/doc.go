// Package listing agrupa as camadas da listagem de academias.
//
// Visão geral (camadas):
//
//   - domain: tipos e contratos (Listing, Source, Page, erros), sem net/http
//   - application: casos de uso (Catalog para a API, Home para a página Index)
//   - infra: fontes concretas (lista fixa, busca HTTP no upstream)
//   - web: handlers net/http, views HTML, request id e redirecionamento HTTPS
//
// Fluxo do mvcapp:
//
//  1. HomeController recebe GET /
//  2. application.Home busca a lista via HTTPSource (GET no UPSTREAM_URL)
//  3. 2xx: a view Index recebe a lista decodificada
//  4. qualquer falha: view Error com o request id, status 502
package listing
