package scanner_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"buzzcut/internal/buzz"
	"buzzcut/internal/catalog"
	"buzzcut/internal/category"
	"buzzcut/internal/config"
	"buzzcut/internal/downloader"
	"buzzcut/internal/logging"
	"buzzcut/internal/media"
	"buzzcut/internal/publishqueue"
	"buzzcut/internal/registry"
	"buzzcut/internal/scanner"
	"buzzcut/internal/testsupport"
	"buzzcut/internal/transcribe"
	"buzzcut/internal/videostore"
)

// fakeAPI serves the minimal YouTube Data API surface the scanner touches:
// one channel with one recent video.
func fakeAPI(t *testing.T, videoID string, views int64) *httptest.Server {
	t.Helper()
	publishedAt := time.Now().Add(-10 * time.Hour).UTC().Format(time.RFC3339)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("type") == "channel" {
				fmt.Fprint(w, `{"items":[{"id":{"channelId":"UC123"}}]}`)
				return
			}
			fmt.Fprintf(w, `{"items":[{"id":{"videoId":%q}}]}`, videoID)
		case "/videos":
			fmt.Fprintf(w, `{"items":[{
				"snippet":{"title":"ON A TESTÉ ÇA","channelTitle":"GMK","publishedAt":%q},
				"statistics":{"viewCount":"%d","likeCount":"4000","commentCount":"900"},
				"contentDetails":{"duration":"PT20M"}}]}`, publishedAt, views)
		default:
			http.NotFound(w, r)
		}
	}))
}

// stubFFmpeg writes a shell script that touches its final argument, standing
// in for ffmpeg's output file creation without transcoding anything.
func stubFFmpeg(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\nfor arg; do last=$arg; done\ntouch \"$last\"\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	return path
}

// peakSamples builds ten half-second windows of near silence with one loud
// window third from the start.
func peakSamples() []int16 {
	const windowSize = 8000
	samples := make([]int16, 10*windowSize)
	for i := range samples {
		samples[i] = 10
	}
	for i := 2 * windowSize; i < 3*windowSize; i++ {
		samples[i] = 12000
	}
	return samples
}

type scanFixture struct {
	cfg     *config.Config
	scanner *scanner.Scanner
	videos  *videostore.Store
	queue   *publishqueue.Store
	reg     *registry.Store
}

func newScanFixture(t *testing.T, baseURL string) *scanFixture {
	t.Helper()
	cfg := testsupport.NewConfig(t,
		testsupport.WithChannels("GMK"),
		testsupport.WithAPIBase(baseURL),
	)

	client, err := catalog.NewClient(cfg.YouTube.APIKey, cfg.YouTube.BaseURL, nil)
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}
	classifier, err := category.NewClassifier()
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}

	videos := videostore.NewStore(cfg.VideosPath(), cfg.SnapshotsPath())
	queue := publishqueue.NewStore(cfg.QueuePath())
	reg := registry.NewStore(cfg.RegistryPath(), cfg.Detection.RegistryBucketSeconds)

	s, err := scanner.New(cfg, logging.NewNop(), scanner.Deps{
		Catalog:     client,
		Videos:      videos,
		Registry:    reg,
		Queue:       queue,
		Downloader:  downloader.New("yt-dlp", cfg.Paths.VideosDir),
		Media:       media.NewProcessor(stubFFmpeg(t)),
		Transcriber: transcribe.Noop{},
		Classifier:  classifier,
	})
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	return &scanFixture{cfg: cfg, scanner: s, videos: videos, queue: queue, reg: reg}
}

// seedBaseline persists prior low-traffic videos so the channel has a
// views-per-hour average to compare against.
func (f *scanFixture) seedBaseline(t *testing.T) {
	t.Helper()
	for i := 0; i < 3; i++ {
		rec := buzz.VideoRecord{
			VideoID:     fmt.Sprintf("old%d", i),
			ChannelName: "GMK",
			Title:       "older upload",
			PublishedAt: time.Now().Add(-100 * time.Hour),
			Views:       10000,
		}
		score := buzz.ComputeScore(rec, time.Now())
		rec.Buzz = &score
		if _, err := f.videos.SaveVideo(rec); err != nil {
			t.Fatalf("seed baseline: %v", err)
		}
	}
}

// seedMedia pre-populates the download cache and extracted audio so the
// stubbed ffmpeg only has to refresh timestamps.
func (f *scanFixture) seedMedia(t *testing.T, videoID string) {
	t.Helper()
	videoDir := filepath.Join(f.cfg.Paths.VideosDir, videoID)
	testsupport.WriteFile(t, filepath.Join(videoDir, "video.mp4"), 1024)
	testsupport.WriteWAV(t, filepath.Join(videoDir, "audio.wav"), 16000, peakSamples())
}

func TestScanQueuesClipForBuzzingVideo(t *testing.T) {
	srv := fakeAPI(t, "vid1", 400000)
	defer srv.Close()

	fixture := newScanFixture(t, srv.URL)
	fixture.seedBaseline(t)
	fixture.seedMedia(t, "vid1")

	summary, err := fixture.scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if summary.VideosScanned != 1 {
		t.Fatalf("expected 1 video scanned, got %d", summary.VideosScanned)
	}
	if summary.ClipsCreated != 1 {
		t.Fatalf("expected 1 clip created, got %d", summary.ClipsCreated)
	}

	tasks, err := fixture.queue.List()
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 queued task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Status != publishqueue.StatusPending {
		t.Fatalf("expected pending status, got %s", task.Status)
	}
	if task.VideoID != "vid1" {
		t.Fatalf("unexpected video id: %s", task.VideoID)
	}
	if task.Creator != "GMK" {
		t.Fatalf("unexpected creator: %s", task.Creator)
	}
	if task.CaptionCurrent == "" {
		t.Fatal("expected generated caption text")
	}
	if _, err := os.Stat(task.CaptionPath); err != nil {
		t.Fatalf("caption file missing: %v", err)
	}

	processed, err := fixture.reg.IsProcessed("vid1", task.MomentSec)
	if err != nil {
		t.Fatalf("registry check: %v", err)
	}
	if !processed {
		t.Fatal("expected moment to be registered after queueing")
	}

	if len(summary.Report) == 0 {
		t.Fatal("expected a scan report")
	}
	if summary.Report[0].Verdict != "BUZZING" {
		t.Fatalf("expected BUZZING verdict in report, got %q", summary.Report[0].Verdict)
	}
}

func TestRescanSkipsRegisteredMoments(t *testing.T) {
	srv := fakeAPI(t, "vid1", 400000)
	defer srv.Close()

	fixture := newScanFixture(t, srv.URL)
	fixture.seedBaseline(t)
	fixture.seedMedia(t, "vid1")

	if _, err := fixture.scanner.Scan(context.Background()); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	second, err := fixture.scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if second.ClipsCreated != 0 {
		t.Fatalf("expected no new clips on rescan, got %d", second.ClipsCreated)
	}

	tasks, err := fixture.queue.List()
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected queue to stay at 1 task, got %d", len(tasks))
	}
}

func TestScanWithoutBaselineDoesNotClip(t *testing.T) {
	srv := fakeAPI(t, "vid2", 400000)
	defer srv.Close()

	fixture := newScanFixture(t, srv.URL)
	fixture.seedMedia(t, "vid2")

	summary, err := fixture.scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if summary.ClipsCreated != 0 {
		t.Fatalf("expected no clips without channel history, got %d", summary.ClipsCreated)
	}
	if len(summary.Report) != 1 {
		t.Fatalf("expected 1 report line, got %d", len(summary.Report))
	}
	if summary.Report[0].Verdict != "NOT ENOUGH DATA" {
		t.Fatalf("expected NOT ENOUGH DATA verdict, got %q", summary.Report[0].Verdict)
	}
}

func TestBackfillCaptionsRewritesQueuedClips(t *testing.T) {
	srv := fakeAPI(t, "vid1", 400000)
	defer srv.Close()

	fixture := newScanFixture(t, srv.URL)
	fixture.seedBaseline(t)
	fixture.seedMedia(t, "vid1")

	if _, err := fixture.scanner.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	updated, err := fixture.scanner.BackfillCaptions(context.Background())
	if err != nil {
		t.Fatalf("BackfillCaptions returned error: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 caption updated, got %d", updated)
	}

	tasks, err := fixture.queue.List()
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !tasks[0].Edited {
		t.Fatal("expected backfilled clip to be marked edited")
	}
	if tasks[0].CaptionOriginal == nil {
		t.Fatal("expected original caption snapshot")
	}
}
