// Package feed fetches a user's timeline entries from a Twitter-compatible
// JSON API. It is the acquisition side of the pipeline: it turns a username
// into an ordered corpus of tweet texts for the markov package to model,
// skipping replies and retweets along the way.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// pageSize is the most entries the timeline endpoint returns per request.
const pageSize = 200

const defaultBaseURL = "https://api.twitter.com/1.1"

// ErrNoTweets is returned when the requested user has no timeline entries
// at all.
var ErrNoTweets = errors.New("feed: user has no tweets")

// APIError is an error payload returned by the remote API.
type APIError struct {
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("feed: api error: %s", e.Message)
}

// tweet is the subset of a timeline entry the client cares about.
type tweet struct {
	Text            string  `json:"text"`
	InReplyToUserID *int64  `json:"in_reply_to_user_id"`
	RetweetedStatus *status `json:"retweeted_status"`
}

type status struct {
	ID int64 `json:"id"`
}

// Client fetches user timelines. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// ClientOption Is a function that configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL, for self-hosted mirrors and tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

// WithTimeout sets the per-request timeout. Default is 15 seconds.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithLogger sets the logger for the Client. By default, all logs are
// discarded.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a timeline client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Accept", "application/json"),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves up to amount timeline entries for username and returns
// their texts, oldest request order preserved. Fewer than amount entries may
// come back: the account may be smaller than requested, and replies and
// retweets are skipped. The first empty page ends paging; an empty first
// page is ErrNoTweets.
func (c *Client) Fetch(ctx context.Context, username string, amount int) ([]string, error) {
	if amount < 1 {
		return nil, fmt.Errorf("feed: amount %d must be at least 1", amount)
	}

	var texts []string
	remaining := amount
	skipped := 0

	for page := 1; remaining > 0; page++ {
		count := remaining
		if count > pageSize {
			count = pageSize
		}

		var (
			batch  []tweet
			apiErr APIError
		)
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"screen_name": username,
				"count":       strconv.Itoa(count),
				"page":        strconv.Itoa(page),
			}).
			SetResult(&batch).
			SetError(&apiErr).
			Get("/statuses/user_timeline.json")
		if err != nil {
			return nil, fmt.Errorf("feed: timeline request failed: %w", err)
		}
		if resp.IsError() {
			if apiErr.Message == "" {
				apiErr.Message = resp.Status()
			}
			return nil, &apiErr
		}

		if len(batch) == 0 {
			if page == 1 {
				return nil, ErrNoTweets
			}
			break
		}

		for _, tw := range batch {
			if tw.InReplyToUserID != nil || tw.RetweetedStatus != nil {
				skipped++
				continue
			}
			texts = append(texts, tw.Text)
		}
		remaining -= count
	}

	c.logger.Debug("timeline fetched",
		slog.String("username", username),
		slog.Int("requested", amount),
		slog.Int("fetched", len(texts)),
		slog.Int("skipped", skipped),
	)

	return texts, nil
}
