package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quest-client/internal/domain"
)

const (
	defaultProgressInterval = 500 * time.Millisecond
	defaultProgressCeiling  = 90.0
	defaultProgressStep     = 30.0
)

// ProgressSimulator drives a cosmetic percentage while a submission is in flight.
// It never reaches 100 on its own; only a finished call reports completion.
type ProgressSimulator struct {
	interval time.Duration
	ceiling  float64
	maxStep  float64
	report   func(percent float64)

	mu      sync.Mutex
	rnd     *rand.Rand
	percent float64
	cancel  context.CancelFunc
	done    chan struct{}
}

// ProgressOption tunes a ProgressSimulator.
type ProgressOption func(*ProgressSimulator)

func WithProgressInterval(d time.Duration) ProgressOption {
	return func(p *ProgressSimulator) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithProgressCeiling(ceiling float64) ProgressOption {
	return func(p *ProgressSimulator) {
		if ceiling > 0 && ceiling < 100 {
			p.ceiling = ceiling
		}
	}
}

func WithProgressStep(step float64) ProgressOption {
	return func(p *ProgressSimulator) {
		if step > 0 {
			p.maxStep = step
		}
	}
}

// WithProgressSource is test-only for deterministic increments.
func WithProgressSource(src rand.Source) ProgressOption {
	return func(p *ProgressSimulator) {
		p.rnd = rand.New(src)
	}
}

func NewProgressSimulator(report func(percent float64), opts ...ProgressOption) *ProgressSimulator {
	p := &ProgressSimulator{
		interval: defaultProgressInterval,
		ceiling:  defaultProgressCeiling,
		maxStep:  defaultProgressStep,
		report:   report,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins ticking from zero. It returns false if the simulator is already running.
func (p *ProgressSimulator) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.percent = 0
	go p.run(ctx, p.done)
	return true
}

// Stop cancels the ticker and waits for it to exit. Safe to call when idle.
func (p *ProgressSimulator) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the ticker goroutine is active.
func (p *ProgressSimulator) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *ProgressSimulator) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if percent, ok := p.step(); ok {
				p.emit(percent)
			}
		}
	}
}

func (p *ProgressSimulator) step() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.percent >= p.ceiling {
		return p.percent, false
	}
	p.percent += p.rnd.Float64() * p.maxStep
	if p.percent > p.ceiling {
		p.percent = p.ceiling
	}
	return p.percent, true
}

func (p *ProgressSimulator) emit(percent float64) {
	if p.report != nil {
		p.report(percent)
	}
}

// Track runs fn with the simulator ticking and always stops it before returning.
// A successful call reports 100.
func (p *ProgressSimulator) Track(fn func() error) error {
	started := p.Start()
	if started {
		defer p.Stop()
	}
	if err := fn(); err != nil {
		return err
	}
	if started {
		p.Stop()
	}
	p.emit(100)
	return nil
}

// WithProgress decorates a verifier so batch submissions drive the simulator.
func WithProgress(v Verifier, sim *ProgressSimulator) Verifier {
	return &progressVerifier{Verifier: v, sim: sim}
}

type progressVerifier struct {
	Verifier
	sim *ProgressSimulator
}

func (v *progressVerifier) SubmitBatch(ctx context.Context, entries []domain.AnswerEntry) (domain.VerificationResponse, error) {
	var resp domain.VerificationResponse
	err := v.sim.Track(func() error {
		var err error
		resp, err = v.Verifier.SubmitBatch(ctx, entries)
		return err
	})
	return resp, err
}
