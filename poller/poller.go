// Package poller refetches a JSON endpoint on a fixed interval and exposes
// the latest payload, a loading flag and the last error.
package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const DefaultInterval = 5 * time.Second

// State is what a consumer renders from.
type State struct {
	Data    json.RawMessage `json:"data"`
	Loading bool            `json:"loading"`
	Error   string          `json:"error"`
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *Poller) { p.client = c }
}

// WithOnUpdate registers fn to receive every new State. fn runs on the
// polling goroutine and must not call Stop.
func WithOnUpdate(fn func(State)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

// Poller polls one URL. Pollers never share requests or results.
type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	onUpdate func(State)

	mu      sync.Mutex
	state   State
	timer   *time.Timer
	started bool
	stopped bool

	// held while onUpdate runs so Stop can wait it out
	notifyMu sync.Mutex
}

func New(url string, opts ...Option) *Poller {
	p := &Poller{
		url:      url,
		interval: DefaultInterval,
		client:   http.DefaultClient,
		state:    State{Loading: true},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start fetches immediately and then again interval after every outcome,
// success or failure. It returns at once; calling it twice is a no-op.
// Cancelling ctx tears the poller down the same way Stop does.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.poll(ctx)
}

// Stop cancels the next scheduled fetch. A fetch already in flight is left to
// finish but its result is discarded. No OnUpdate call happens after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()

	p.notifyMu.Lock()
	p.notifyMu.Unlock()
}

// State returns a copy of the latest state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) poll(ctx context.Context) {
	data, err := p.fetch(ctx)

	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	// A cancelled ctx is teardown like Stop: the aborted fetch is not reported.
	if p.stopped || ctx.Err() != nil {
		p.stopped = true
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.state.Error = err.Error()
	} else {
		p.state.Data = data
		p.state.Error = ""
	}
	p.state.Loading = false
	st := p.state
	p.timer = time.AfterFunc(p.interval, func() { p.poll(ctx) })
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(st)
	}
}

func (p *Poller) fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
			return nil, errors.New(failure.Error)
		}
		return nil, errors.New(http.StatusText(resp.StatusCode))
	}

	return unwrap(body)
}

// unwrap returns the "data" member of an envelope, or the whole payload when
// there is none.
func unwrap(body []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			return data, nil
		}
		return json.RawMessage(body), nil
	}
	if !json.Valid(body) {
		return nil, errors.New("invalid JSON response")
	}
	return json.RawMessage(body), nil
}
