package application

import (
	"context"
	"errors"
	"testing"

	"gym-listings/listing/domain"
)

type fakeSource struct {
	ls    []domain.Listing
	err   error
	calls int
}

func (f *fakeSource) List(context.Context) ([]domain.Listing, error) {
	f.calls++
	return f.ls, f.err
}

func TestHome_Index_ReturnsListings(t *testing.T) {
	src := &fakeSource{ls: []domain.Listing{"Gym A", "Gym B", "Gym C"}}
	page := Home{Source: src}.Index(context.Background())

	if page.Failed {
		t.Fatalf("expected success page, got failure: %v", page.Err)
	}
	if len(page.Listings) != 3 || page.Listings[2] != "Gym C" {
		t.Fatalf("unexpected listings %v", page.Listings)
	}
}

func TestHome_Index_FailureRoutesToErrorPath(t *testing.T) {
	cause := &domain.StatusError{URL: "http://upstream/gyms", Code: 500}
	src := &fakeSource{err: cause}
	page := Home{Source: src}.Index(context.Background())

	if !page.Failed {
		t.Fatalf("expected failed page")
	}
	if !errors.Is(page.Err, domain.ErrUpstreamStatus) {
		t.Fatalf("expected upstream status error, got %v", page.Err)
	}
	if src.calls != 1 {
		t.Fatalf("expected exactly one fetch (no retry), got %d", src.calls)
	}
}

func TestHome_Index_NoSourceFails(t *testing.T) {
	page := Home{}.Index(context.Background())
	if !page.Failed || page.Err == nil {
		t.Fatalf("expected failure without source, got %+v", page)
	}
}

func TestHome_Index_EmptyListIsNotFailure(t *testing.T) {
	page := Home{Source: &fakeSource{}}.Index(context.Background())
	if page.Failed {
		t.Fatalf("expected success for empty list")
	}
	if page.Listings == nil || len(page.Listings) != 0 {
		t.Fatalf("expected empty non-nil listings, got %#v", page.Listings)
	}
}
