package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"buzzcut/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", server.URL, server.Client())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestVideoInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("api key missing from request")
		}
		if r.URL.Query().Get("part") != "snippet,statistics,contentDetails" {
			t.Errorf("unexpected part %q", r.URL.Query().Get("part"))
		}
		w.Write([]byte(`{"items":[{
			"snippet":{"title":"Survivre 48h","channelTitle":"InoxTag","publishedAt":"2025-06-01T12:00:00Z"},
			"statistics":{"viewCount":"120000","likeCount":"9000","commentCount":"420"},
			"contentDetails":{"duration":"PT18M2S"}
		}]}`))
	})

	info, err := client.VideoInfo(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("VideoInfo failed: %v", err)
	}
	if info == nil {
		t.Fatal("expected video info")
	}
	if info.Title != "Survivre 48h" || info.ChannelName != "InoxTag" {
		t.Fatalf("unexpected snippet: %+v", info)
	}
	if info.Views != 120000 || info.Likes != 9000 || info.Comments != 420 {
		t.Fatalf("unexpected counters: %+v", info)
	}
	if info.Duration != "PT18M2S" {
		t.Fatalf("unexpected duration: %q", info.Duration)
	}
	if info.PublishedAt.IsZero() {
		t.Fatal("published_at not parsed")
	}
}

func TestVideoInfoAbsentIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})

	info, err := client.VideoInfo(context.Background(), "missing")
	if err != nil {
		t.Fatalf("VideoInfo failed: %v", err)
	}
	if info != nil {
		t.Fatalf("absent video must be nil, got %+v", info)
	}
}

func TestVideoInfoHiddenCounters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{
			"snippet":{"title":"t","channelTitle":"c","publishedAt":"2025-06-01T12:00:00Z"},
			"statistics":{"viewCount":"100"},
			"contentDetails":{"duration":"PT1M"}
		}]}`))
	})

	info, err := client.VideoInfo(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if info.Likes != 0 || info.Comments != 0 {
		t.Fatalf("hidden counters must read zero: %+v", info)
	}
}

func TestChannelIDByName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("type") != "channel" {
			t.Errorf("unexpected type %q", r.URL.Query().Get("type"))
		}
		w.Write([]byte(`{"items":[{"id":{"channelId":"UC123"}}]}`))
	})

	id, err := client.ChannelIDByName(context.Background(), "inoxtag")
	if err != nil {
		t.Fatalf("ChannelIDByName failed: %v", err)
	}
	if id != "UC123" {
		t.Fatalf("channel id = %q", id)
	}
}

func TestChannelIDByNameNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})

	id, err := client.ChannelIDByName(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if id != "" {
		t.Fatalf("no match must be empty, got %q", id)
	}
}

func TestRecentVideoIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("channelId") != "UC123" || q.Get("order") != "date" || q.Get("maxResults") != "5" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"items":[{"id":{"videoId":"v1"}},{"id":{"videoId":"v2"}}]}`))
	})

	ids, err := client.RecentVideoIDs(context.Background(), "UC123", 5)
	if err != nil {
		t.Fatalf("RecentVideoIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "v1" || ids[1] != "v2" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestQuotaErrorIsConfiguration(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.VideoInfo(context.Background(), "abc")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestServerErrorIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.VideoInfo(context.Background(), "abc")
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("  ", "", nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
