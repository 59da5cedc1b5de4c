package verify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dkalenko/medfact/internal/api"
	"github.com/dkalenko/medfact/internal/cache"
	"github.com/dkalenko/medfact/internal/model"
	"github.com/dkalenko/medfact/internal/notify"
)

// State is the lifecycle position of one verification flow
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// ValidationMessage is shown when a claim is empty after trimming
const ValidationMessage = "Please enter a claim to verify."

// TransportMessage is the generic fallback for unreachable-backend errors
const TransportMessage = "Could not reach the verification service. Please try again."

// ErrBusy is returned when Submit is called while a request is in flight.
// The concurrent call is a no-op: no second network request is issued and
// the flow state is untouched.
var ErrBusy = errors.New("a verification is already in progress")

// Verifier is the backend call the flow depends on
type Verifier interface {
	Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error)
}

// Snapshot is a point-in-time view of the flow
type Snapshot struct {
	State   State
	Result  *model.VerificationResult
	Message string // Error message when State is StateError
}

// Flow owns the lifecycle of claim verification: input validation, request
// dispatch, the loading window, and success/error resolution. At most one
// request is in flight per flow; each resolved result fully replaces the
// prior one.
type Flow struct {
	client   Verifier
	cache    cache.Cache
	cacheTTL time.Duration
	notifier *notify.Center

	mu      sync.Mutex
	state   State
	result  *model.VerificationResult
	errMsg  string
	cancel  context.CancelFunc
	closing bool
}

// FlowOption configures a Flow
type FlowOption func(*Flow)

// WithCache lets the flow resolve repeat claims without a network call.
// A force-refresh submission bypasses and then repopulates the cache.
func WithCache(c cache.Cache, ttl time.Duration) FlowOption {
	return func(f *Flow) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithNotifier routes failure messages to a notification center
func WithNotifier(n *notify.Center) FlowOption {
	return func(f *Flow) { f.notifier = n }
}

// NewFlow creates an idle verification flow
func NewFlow(client Verifier, opts ...FlowOption) *Flow {
	f := &Flow{
		client: client,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns a snapshot of the flow
func (f *Flow) State() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{State: f.state, Result: f.result, Message: f.errMsg}
}

// Reset returns the flow to idle, clearing any result or error
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoading {
		return
	}
	f.state = StateIdle
	f.result = nil
	f.errMsg = ""
}

// Submit runs one verification. Empty claims fail validation before any
// network call. While a submission is loading, further calls return ErrBusy.
// The loading state is always exited, on success and on failure alike.
func (f *Flow) Submit(ctx context.Context, claimText string, forceRefresh bool) (*model.VerificationResult, error) {
	trimmed := strings.TrimSpace(claimText)
	if trimmed == "" {
		f.fail(ValidationMessage)
		return nil, errors.New(ValidationMessage)
	}

	reqCtx, err := f.enterLoading(ctx)
	if err != nil {
		return nil, err
	}

	if !forceRefresh {
		if cached, ok := f.lookupCache(trimmed); ok {
			f.succeed(cached)
			return cached, nil
		}
	}

	result, err := f.client.Verify(reqCtx, model.VerificationRequest{
		ClaimText:    trimmed,
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		f.fail(failureMessage(err))
		return nil, err
	}

	f.storeCache(trimmed, result)
	f.succeed(result)
	return result, nil
}

// Close cancels any in-flight request. The flow must not be reused after.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closing = true
	if f.cancel != nil {
		f.cancel()
	}
}

// enterLoading transitions to loading, rejecting concurrent submissions
func (f *Flow) enterLoading(ctx context.Context) (context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closing {
		return nil, errors.New("flow is closed")
	}
	if f.state == StateLoading {
		return nil, ErrBusy
	}

	reqCtx, cancel := context.WithCancel(ctx)
	f.state = StateLoading
	f.result = nil
	f.errMsg = ""
	f.cancel = cancel
	return reqCtx, nil
}

func (f *Flow) succeed(result *model.VerificationResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finishLocked()
	f.state = StateSuccess
	f.result = result
}

func (f *Flow) fail(message string) {
	f.mu.Lock()
	f.finishLocked()
	f.state = StateError
	f.result = nil
	f.errMsg = message
	notifier := f.notifier
	f.mu.Unlock()

	if notifier != nil {
		notifier.Show(message, notify.SeverityError)
	}
}

func (f *Flow) finishLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flow) lookupCache(claim string) (*model.VerificationResult, bool) {
	if f.cache == nil {
		return nil, false
	}

	data, found := f.cache.Get(cache.Key(claim))
	if !found {
		return nil, false
	}

	var result model.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = f.cache.Delete(cache.Key(claim))
		return nil, false
	}
	return &result, true
}

func (f *Flow) storeCache(claim string, result *model.VerificationResult) {
	if f.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = f.cache.Set(cache.Key(claim), data, f.cacheTTL)
}

// failureMessage maps an error to the user-facing message: the backend's
// reported error field (or its status fallback) for API errors, a generic
// transport message for everything else
func failureMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return TransportMessage
}
