package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-strategy-sim-go/log"
)

const defaultBaseURL = "http://localhost:8721"

// NewClient returns a Provider backed by the HTTP session archive API.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 60 * time.Second},
		l:       log.Default().Named("telemetry"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Client struct {
	baseURL string
	hc      *http.Client
	l       *log.Logger
}

type ClientOption func(c *Client)

// WithBaseURL configures the HTTP(S) URL of the session archive API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.hc = hc }
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.hc.Timeout = timeout }
}

func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.l = l }
}

func (c *Client) Session(
	ctx context.Context, year int, race string, kind SessionKind,
) (Session, error) {
	return &archiveSession{client: c, year: year, race: race, kind: kind}, nil
}

// wire format of the archive API
type (
	wireLap struct {
		Driver      string `json:"driver"`
		LapNumber   int    `json:"lapNumber"`
		LapTimeMs   *int64 `json:"lapTimeMs"`
		Stint       int    `json:"stint"`
		Compound    string `json:"compound"`
		TyreLife    int    `json:"tyreLife"`
		Position    int    `json:"position"`
		PitInMs     *int64 `json:"pitInMs"`
		PitOutMs    *int64 `json:"pitOutMs"`
		TrackStatus string `json:"trackStatus"`
	}
	wireLapsResponse struct {
		Laps []wireLap `json:"laps"`
	}
	wireSample struct {
		TimeMs int64   `json:"timeMs"`
		Speed  float64 `json:"speed"`
	}
	wireTelemetryResponse struct {
		Samples []wireSample `json:"samples"`
	}
)

type archiveSession struct {
	client *Client
	year   int
	race   string
	kind   SessionKind
	loaded bool
	laps   []RawLap
}

func (s *archiveSession) Load(ctx context.Context) error {
	u := fmt.Sprintf("%s/archive/%d/%s/%s/laps",
		s.client.baseURL, s.year, url.PathEscape(s.race), url.PathEscape(string(s.kind)))
	var resp wireLapsResponse
	if err := s.client.getJSON(ctx, u, &resp); err != nil {
		return fmt.Errorf("loading session %d %s: %w", s.year, s.race, err)
	}
	s.laps = lo.Map(resp.Laps, func(wl wireLap, _ int) RawLap {
		return RawLap{
			Driver:      wl.Driver,
			LapNumber:   wl.LapNumber,
			LapTime:     msToDuration(wl.LapTimeMs),
			Stint:       wl.Stint,
			Compound:    wl.Compound,
			TyreLife:    wl.TyreLife,
			Position:    wl.Position,
			PitInTime:   msToDuration(wl.PitInMs),
			PitOutTime:  msToDuration(wl.PitOutMs),
			TrackStatus: wl.TrackStatus,
		}
	})
	s.loaded = true
	s.client.l.Debug("session loaded",
		log.Int("year", s.year),
		log.String("race", s.race),
		log.Int("laps", len(s.laps)))
	return nil
}

func (s *archiveSession) Laps() ([]RawLap, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.laps, nil
}

func (s *archiveSession) DriverLaps(driver string) ([]RawLap, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return lo.Filter(s.laps, func(rl RawLap, _ int) bool {
		return rl.Driver == driver
	}), nil
}

//nolint:whitespace // readability
func (s *archiveSession) Telemetry(
	ctx context.Context, driver string, lapNumber int,
) ([]TelemetrySample, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	u := fmt.Sprintf("%s/archive/%d/%s/%s/telemetry?driver=%s&lap=%d",
		s.client.baseURL, s.year, url.PathEscape(s.race),
		url.PathEscape(string(s.kind)), url.QueryEscape(driver), lapNumber)
	var resp wireTelemetryResponse
	if err := s.client.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("loading telemetry for %s lap %d: %w",
			driver, lapNumber, err)
	}
	return lo.Map(resp.Samples, func(ws wireSample, _ int) TelemetrySample {
		return TelemetrySample{
			Time:  time.Duration(ws.TimeMs) * time.Millisecond,
			Speed: ws.Speed,
		}
	}), nil
}

func (c *Client) getJSON(ctx context.Context, u string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("archive API returned %d: %s", res.StatusCode, string(body))
	}
	return json.NewDecoder(res.Body).Decode(target)
}

func msToDuration(ms *int64) time.Duration {
	if ms == nil {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}
