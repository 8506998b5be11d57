package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gym-listings/listing/domain"
)

// maxBodyBytes limita o corpo lido do upstream.
const maxBodyBytes = 1 << 20

// HTTPSource busca a lista com um GET num URL fixo.
//
// 2xx: decodifica o corpo como JSON []string.
// Qualquer outro status: *domain.StatusError. Sem retry.
type HTTPSource struct {
	url      string
	client   *http.Client
	observer domain.FetchObserver
}

type HTTPSourceOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) { s.client = c }
}

func WithFetchObserver(o domain.FetchObserver) HTTPSourceOption {
	return func(s *HTTPSource) { s.observer = o }
}

func NewHTTPSource(url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: NewClient(DefaultClientConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) URL() string { return s.url }

// List implementa domain.Source.
func (s *HTTPSource) List(ctx context.Context) ([]domain.Listing, error) {
	start := time.Now()
	ls, err := s.fetch(ctx)
	if s.observer != nil {
		s.observer.ObserveFetch(domain.Outcome(err), time.Since(start))
	}
	return ls, err
}

func (s *HTTPSource) fetch(ctx context.Context) ([]domain.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drena para reaproveitar a conexão
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.StatusError{URL: s.url, Code: resp.StatusCode}
	}

	var names []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&names); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamDecode, err)
	}

	out := make([]domain.Listing, len(names))
	for i, n := range names {
		out[i] = domain.Listing(n)
	}
	return out, nil
}
