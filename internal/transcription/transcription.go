// Package transcription talks to the external speech-to-text service. A job
// is published, polled until done, and its word-level JSON downloaded.
package transcription

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"interview-insights-go/internal/logger"
)

//go:embed mock/interview.json
var mockInterview []byte

var (
	ErrNoEndpoint = errors.New("transcription endpoint not configured")
	ErrFailed     = errors.New("transcription failed")
	ErrTimeout    = errors.New("transcription did not finish in time")
)

type publishResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		MediaId          string `json:"MediaId"`
		Status           string `json:"Status"`
		TranscriptionURL string `json:"TranscriptionURL"`
		WordsCount       int    `json:"WordsCount"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

type statusResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		Status               string `json:"Status"`
		TranscriptionTextURL string `json:"TranscriptionTextURL"`
		WordsCount           int    `json:"WordsCount"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

type Options struct {
	BaseURL string
	// Mock returns a bundled sample interview instead of calling the service.
	Mock         bool
	HTTPClient   *http.Client
	PollInterval time.Duration
	MaxPolls     int
	// RetryWindow bounds the backoff applied to each HTTP exchange.
	RetryWindow time.Duration
}

type Client struct {
	opts Options
	log  *logrus.Entry
}

func New(opts Options, log *logrus.Entry) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 12 * time.Second}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 1500 * time.Millisecond
	}
	if opts.MaxPolls <= 0 {
		opts.MaxPolls = 40
	}
	if opts.RetryWindow <= 0 {
		opts.RetryWindow = 12 * time.Second
	}
	if log == nil {
		log = logger.New().Component("transcription")
	}
	return &Client{opts: opts, log: log}
}

// GetWords returns the word-level transcript JSON for the recording at audioURL.
func (c *Client) GetWords(ctx context.Context, audioURL string) ([]byte, error) {
	if c.opts.Mock {
		c.log.WithField("audio_url", audioURL).Info("mock transcription")
		return mockInterview, nil
	}
	if c.opts.BaseURL == "" {
		return nil, ErrNoEndpoint
	}
	log := c.log.WithField("audio_url", audioURL)

	mediaID, readyURL, err := c.publish(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	if readyURL == "" {
		log = log.WithField("media_id", mediaID)
		log.Info("transcription queued")
		if readyURL, err = c.poll(ctx, mediaID); err != nil {
			return nil, err
		}
	}
	log.WithField("words_url", readyURL).Info("downloading transcript")
	return c.download(ctx, readyURL)
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.opts.BaseURL, "/") + path
}

func (c *Client) publish(ctx context.Context, audioURL string) (string, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	_ = w.WriteField("recordingLink", audioURL)
	_ = w.WriteField("outputFormat", "words")
	_ = w.WriteField("diarize", "true")
	_ = w.Close()
	form := b.Bytes()

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/transcribe"), bytes.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req, nil
	}
	var resp publishResponse
	if err := c.doJSON(ctx, newReq, &resp); err != nil {
		return "", "", fmt.Errorf("publish: %w", err)
	}
	if resp.Code != http.StatusOK {
		return "", "", fmt.Errorf("publish: code=%d reason=%s", resp.Code, resp.Reason)
	}
	if resp.Data.TranscriptionURL != "" && strings.EqualFold(resp.Data.Status, "success") {
		return "", resp.Data.TranscriptionURL, nil
	}
	if resp.Data.MediaId == "" {
		return "", "", fmt.Errorf("publish: response carries neither media id nor transcript url")
	}
	return resp.Data.MediaId, "", nil
}

func (c *Client) poll(ctx context.Context, mediaID string) (string, error) {
	u, err := url.Parse(c.endpoint("/getstatus"))
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("mediaId", mediaID)
	u.RawQuery = q.Encode()

	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()
	for i := 0; i < c.opts.MaxPolls; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
		newReq := func() (*http.Request, error) {
			return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		}
		var s statusResponse
		if err := c.doJSON(ctx, newReq, &s); err != nil {
			c.log.WithError(err).WithField("attempt", i+1).Warn("status check failed")
			continue
		}
		switch s.Data.Status {
		case "Success":
			return s.Data.TranscriptionTextURL, nil
		case "Failed":
			return "", fmt.Errorf("%w: %s", ErrFailed, s.Reason)
		}
	}
	return "", ErrTimeout
}

func (c *Client) download(ctx context.Context, wordsURL string) ([]byte, error) {
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, wordsURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		b, err := c.exchange(req)
		if err != nil {
			return err
		}
		body = b
		return nil
	}
	if err := backoff.Retry(op, c.backoff(ctx)); err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, newReq func() (*http.Request, error), target any) error {
	op := func() error {
		req, err := newReq()
		if err != nil {
			return backoff.Permanent(err)
		}
		body, err := c.exchange(req)
		if err != nil {
			return err
		}
		if len(body) == 0 {
			return errors.New("empty body")
		}
		if err := json.Unmarshal(body, target); err != nil {
			return backoff.Permanent(fmt.Errorf("json decode error: %v body=%s", err, truncate(body)))
		}
		return nil
	}
	return backoff.Retry(op, c.backoff(ctx))
}

// exchange performs one request. Client errors are permanent; server errors
// and transport failures are retried.
func (c *Client) exchange(req *http.Request) ([]byte, error) {
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(body))
	case resp.StatusCode >= 400:
		return nil, backoff.Permanent(fmt.Errorf("request rejected %d: %s", resp.StatusCode, truncate(body)))
	}
	return body, nil
}

func (c *Client) backoff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = c.opts.RetryWindow
	return backoff.WithContext(bo, ctx)
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
