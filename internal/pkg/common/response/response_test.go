package response

import (
	"net/url"
	"testing"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestBuildPageLinksMiddlePage(t *testing.T) {
	u := mustURL(t, "/api/v1/slurm/scheduling/node/all?page=2&page_size=10")
	prev, next := BuildPageLinks(u, 2, 10, 35)
	if prev == nil || next == nil {
		t.Fatalf("expected both links, got prev=%v next=%v", prev, next)
	}
	if *prev != "/api/v1/slurm/scheduling/node/all?page=1&page_size=10" {
		t.Errorf("prev = %q", *prev)
	}
	if *next != "/api/v1/slurm/scheduling/node/all?page=3&page_size=10" {
		t.Errorf("next = %q", *next)
	}
}

func TestBuildPageLinksBounds(t *testing.T) {
	u := mustURL(t, "/api/v1/slurm/scheduling/job/all")

	prev, next := BuildPageLinks(u, 1, 10, 35)
	if prev != nil {
		t.Errorf("first page should have no prev, got %q", *prev)
	}
	if next == nil {
		t.Error("first page of 4 should have next")
	}

	prev, next = BuildPageLinks(u, 4, 10, 35)
	if prev == nil {
		t.Error("last page should have prev")
	}
	if next != nil {
		t.Errorf("last page should have no next, got %q", *next)
	}
}

func TestBuildPageLinksEmptyResult(t *testing.T) {
	u := mustURL(t, "/api/v1/slurm/scheduling/job/all?page=1")
	prev, next := BuildPageLinks(u, 1, 10, 0)
	if prev != nil || next != nil {
		t.Errorf("empty result should have no links, got prev=%v next=%v", prev, next)
	}
}

func TestBuildPageLinksPreservesQuery(t *testing.T) {
	u := mustURL(t, "/api/v1/slurm/scheduling/job/all?paging=true&page=1&page_size=5")
	_, next := BuildPageLinks(u, 1, 5, 12)
	if next == nil {
		t.Fatal("expected next link")
	}
	parsed := mustURL(t, *next)
	if got := parsed.Query().Get("paging"); got != "true" {
		t.Errorf("paging query lost, got %q", got)
	}
	if got := parsed.Query().Get("page"); got != "2" {
		t.Errorf("page = %q, want 2", got)
	}
}
