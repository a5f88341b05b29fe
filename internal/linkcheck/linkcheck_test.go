package linkcheck

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/launchdeck/launchdeck/internal/model"
)

func websiteBookmark(id, url string) model.Bookmark {
	return model.Bookmark{ID: id, Title: id, URL: url, Type: model.TypeWebsite}
}

func TestCheckAll_ClassifiesStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/flaky":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	bookmarks := []model.Bookmark{
		websiteBookmark("ok", srv.URL+"/ok"),
		websiteBookmark("gone", srv.URL+"/gone"),
		websiteBookmark("flaky", srv.URL+"/flaky"),
	}

	results := CheckAll(bookmarks, 2, 5*time.Second, nil, nil)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	byID := map[string]Result{}
	for _, r := range results {
		byID[r.Bookmark.ID] = r
	}

	if got := byID["ok"]; got.Status != Healthy || got.StatusCode != 200 {
		t.Errorf("ok: %+v", got)
	}
	if got := byID["gone"]; got.Status != Dead || got.StatusCode != 404 {
		t.Errorf("gone: %+v", got)
	}
	if got := byID["flaky"]; got.Status != Unreachable || got.StatusCode != 500 {
		t.Errorf("flaky: %+v", got)
	}
}

func TestCheckAll_ExcludedDomain404IsNotDead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	// httptest binds to 127.0.0.1; exclude that host.
	bookmarks := []model.Bookmark{websiteBookmark("private", srv.URL+"/repo")}

	results := CheckAll(bookmarks, 1, 5*time.Second, []string{hostOf(t, srv.URL)}, nil)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Status != Unreachable {
		t.Errorf("excluded 404 should be Unreachable, got %v", results[0].Status)
	}
	if results[0].Error == "" {
		t.Error("expected explanatory error for possibly-private link")
	}
}

func TestCheckAll_SkipsNonWebsiteBookmarks(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "p", URL: "file:///usr/bin/editor", Type: model.TypeProgram},
		{ID: "s", URL: "steam://run/123", Type: model.TypeProtocol},
	}

	if results := CheckAll(bookmarks, 2, time.Second, nil, nil); results != nil {
		t.Errorf("expected nil for no website bookmarks, got %d results", len(results))
	}
}

func TestCheckAll_UnreachableHost(t *testing.T) {
	// Reserved TLD, guaranteed not to resolve.
	bookmarks := []model.Bookmark{websiteBookmark("nohost", "https://example.invalid")}

	results := CheckAll(bookmarks, 1, 2*time.Second, nil, nil)

	if len(results) != 1 || results[0].Status != Unreachable {
		t.Fatalf("expected unreachable, got %+v", results)
	}
	if results[0].StatusCode != 0 {
		t.Errorf("expected status code 0 for connection failure, got %d", results[0].StatusCode)
	}
	if results[0].Error == "" {
		t.Error("expected normalized error message")
	}
}

func TestCheckAll_ReportsProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	bookmarks := []model.Bookmark{
		websiteBookmark("a", srv.URL+"/a"),
		websiteBookmark("b", srv.URL+"/b"),
		websiteBookmark("c", srv.URL+"/c"),
	}

	var mu sync.Mutex
	var seen []int
	CheckAll(bookmarks, 3, 5*time.Second, nil, func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		seen = append(seen, completed)
	})

	if len(seen) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(seen))
	}
	if seen[len(seen)-1] != 3 {
		t.Errorf("expected final progress 3, got %d", seen[len(seen)-1])
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`dial tcp: lookup nope.example: no such host`, "DNS failure"},
		{`context deadline exceeded (Client.Timeout exceeded)`, "Timeout"},
		{`dial tcp 127.0.0.1:1: connect: connection refused`, "Connection refused"},
		{`x509: certificate signed by unknown authority`, "TLS/certificate error"},
		{`something else entirely`, "something else entirely"},
	}

	for _, tt := range tests {
		if got := normalizeError(tt.in); got != tt.want {
			t.Errorf("normalizeError(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func hostOf(t *testing.T, rawURL string) string {
	t.Helper()
	// strip "http://"
	return rawURL[len("http://"):]
}
