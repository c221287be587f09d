package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"buzzcut/internal/services"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// HTTPDoer describes the HTTP client used by the catalog service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// VideoInfo is the catalog's view of a single video.
type VideoInfo struct {
	VideoID     string
	Title       string
	ChannelName string
	PublishedAt time.Time
	Duration    string
	Views       int64
	Likes       int64
	Comments    int64
}

// Client queries the YouTube Data API v3 with an API key.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// NewClient builds a catalog client. An empty baseURL uses the public API
// endpoint; tests point it at a local server.
func NewClient(apiKey, baseURL string, client HTTPDoer) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "init", "youtube api key required", nil)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}, nil
}

// VideoInfo fetches snippet, statistics and duration for one video.
// An unknown id returns (nil, nil).
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", videoID)

	var payload videoListResponse
	if err := c.get(ctx, "videos", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, nil
	}

	item := payload.Items[0]
	published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	return &VideoInfo{
		VideoID:     videoID,
		Title:       item.Snippet.Title,
		ChannelName: item.Snippet.ChannelTitle,
		PublishedAt: published,
		Duration:    item.ContentDetails.Duration,
		Views:       parseCount(item.Statistics.ViewCount),
		Likes:       parseCount(item.Statistics.LikeCount),
		Comments:    parseCount(item.Statistics.CommentCount),
	}, nil
}

// ChannelIDByName resolves a channel name through search. No match returns
// an empty string without error.
func (c *Client) ChannelIDByName(ctx context.Context, channelName string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", channelName)
	params.Set("type", "channel")
	params.Set("maxResults", "1")

	var payload searchListResponse
	if err := c.get(ctx, "search", params, &payload); err != nil {
		return "", err
	}
	if len(payload.Items) == 0 {
		return "", nil
	}
	return payload.Items[0].ID.ChannelID, nil
}

// RecentVideoIDs lists a channel's most recent uploads, newest first.
func (c *Client) RecentVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("order", "date")
	params.Set("type", "video")

	var payload searchListResponse
	if err := c.get(ctx, "search", params, &payload); err != nil {
		return nil, err
	}
	var ids []string
	for _, item := range payload.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.Wrap(services.ErrTransient, "catalog", resource, "build request", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "catalog", resource, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		marker := services.ErrTransient
		if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
			marker = services.ErrConfiguration
		}
		return services.Wrap(marker, "catalog", resource,
			fmt.Sprintf("api returned %d", resp.StatusCode), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrTransient, "catalog", resource, "decode response", err)
	}
	return nil
}

// parseCount reads the API's stringly-typed counters; missing or malformed
// values count as zero, matching how hidden like counts come back.
func parseCount(value string) int64 {
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type videoListResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type searchListResponse struct {
	Items []struct {
		ID struct {
			ChannelID string `json:"channelId"`
			VideoID   string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}
