package standings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/upstream"
)

const (
	// Source labels where the HTML came from.
	Source = "Wikipedia"
	// MinContentLength is the shortest fragment accepted as real content; shorter
	// responses are the API's way of saying the page is empty.
	MinContentLength = 200
	// CandidateYears is how many seasons are tried, newest first.
	CandidateYears = 2

	defaultRequestTimeout = 9 * time.Second
)

// ErrNoCandidates is returned when no candidate pair was attempted.
var ErrNoCandidates = errors.New("no Wikipedia candidates returned standings")

// Getter is the outbound dependency; *upstream.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// Pair is two template titles that must both resolve for an attempt to count.
type Pair struct {
	AFC string
	NFC string
}

// Result is the concatenated HTML of a successful pair.
type Result struct {
	Source string   `json:"source"`
	Titles []string `json:"titles"`
	HTML   string   `json:"html"`
}

// FetcherConfig controls a Fetcher.
type FetcherConfig struct {
	APIURL         string
	RequestTimeout time.Duration
	Client         Getter
	Logger         *slog.Logger
}

// Fetcher resolves the newest available standings templates.
type Fetcher struct {
	apiURL  string
	timeout time.Duration
	client  Getter
	logger  *slog.Logger
	now     func() time.Time
}

// NewFetcher constructs a Fetcher with defaults applied.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Fetcher{
		apiURL:  cfg.APIURL,
		timeout: timeout,
		client:  cfg.Client,
		logger:  cfg.Logger,
		now:     time.Now,
	}
}

// Candidates returns the title pairs for year and the seasons before it, newest first.
func Candidates(year int) []Pair {
	pairs := make([]Pair, 0, CandidateYears)
	for y := year; y > year-CandidateYears; y-- {
		pairs = append(pairs, Pair{
			AFC: fmt.Sprintf("Template:%d AFC standings", y),
			NFC: fmt.Sprintf("Template:%d NFC standings", y),
		})
	}
	return pairs
}

// Fetch tries the current season's pair, then older ones, returning the first
// pair whose halves both succeed. When every pair fails the last error is returned.
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	return f.FetchYear(ctx, f.now().Year())
}

// FetchYear is Fetch anchored at an explicit season.
func (f *Fetcher) FetchYear(ctx context.Context, year int) (Result, error) {
	lastErr := ErrNoCandidates
	for _, pair := range Candidates(year) {
		afc, nfc, err := f.fetchPair(ctx, pair)
		if err == nil {
			return Result{
				Source: Source,
				Titles: []string{pair.AFC, pair.NFC},
				HTML:   afc + "\n\n" + nfc,
			}, nil
		}
		lastErr = err
		if logger := logging.FromContext(ctx, f.logger); logger != nil {
			logger.Warn("standings candidate failed",
				slog.String(logging.FieldTitle, pair.AFC),
				slog.String("error", err.Error()),
			)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return Result{}, lastErr
}

// fetchPair fetches both halves concurrently; the first failure cancels the sibling.
func (f *Fetcher) fetchPair(ctx context.Context, pair Pair) (string, string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
		html     [2]string
	)
	for i, title := range []string{pair.AFC, pair.NFC} {
		wg.Add(1)
		go func(i int, title string) {
			defer wg.Done()
			out, err := f.fetchTemplateHTML(ctx, title)
			if err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
			html[i] = out
		}(i, title)
	}
	wg.Wait()

	if firstErr != nil {
		return "", "", firstErr
	}
	return html[0], html[1], nil
}

type parseResponse struct {
	Parse *struct {
		Text map[string]string `json:"text"`
	} `json:"parse"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (f *Fetcher) fetchTemplateHTML(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.client.Get(ctx, f.parseURL(title))
	if err != nil {
		if statusErr, ok := upstream.AsStatusError(err); ok {
			return "", fmt.Errorf("Wikipedia HTTP %d: %w", statusErr.StatusCode, err)
		}
		return "", err
	}

	var payload parseResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding parse response for %q: %w", title, err)
	}
	if payload.Error != nil && payload.Parse == nil {
		return "", fmt.Errorf("Wikipedia parse error for %q: %s: %w", title, payload.Error.Code, upstream.ErrNoContent)
	}

	var html string
	if payload.Parse != nil {
		html = payload.Parse.Text["*"]
	}
	if utf8.RuneCountInString(html) < MinContentLength {
		return "", fmt.Errorf("Wikipedia parse returned no html for %q: %w", title, upstream.ErrNoContent)
	}
	return html, nil
}

func (f *Fetcher) parseURL(title string) string {
	q := url.Values{}
	q.Set("action", "parse")
	q.Set("format", "json")
	q.Set("prop", "text")
	q.Set("section", "0")
	q.Set("origin", "*")
	q.Set("page", title)
	return f.apiURL + "?" + q.Encode()
}
