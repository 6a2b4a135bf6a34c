package service

import (
	"errors"
	"fmt"
	"github.com/Avi18971911/Lens/pkg/request/fixture"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
	"sync"
)

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrDuplicateRequest = errors.New("request id already exists")
	ErrDuplicateSpan    = errors.New("span id appears more than once in the trace")
	ErrInvalidRequest   = errors.New("request failed validation")
)

// RequestStore keeps the known requests in memory in insertion order. Stored requests are never
// modified, so callers may cache anything derived from them by request id.
type RequestStore struct {
	mu       sync.RWMutex
	requests []traceModel.Request
	byId     map[string]int
	validate *validator.Validate
	logger   *zap.Logger
}

func NewRequestStore(logger *zap.Logger) *RequestStore {
	return &RequestStore{
		requests: make([]traceModel.Request, 0),
		byId:     make(map[string]int),
		validate: validator.New(),
		logger:   logger,
	}
}

// Add validates every request and stores all of them, or none if any is rejected.
func (rs *RequestStore) Add(requests ...traceModel.Request) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	incoming := make(map[string]struct{}, len(requests))
	for i := range requests {
		if err := rs.check(&requests[i]); err != nil {
			return err
		}
		if _, ok := incoming[requests[i].Id]; ok {
			return fmt.Errorf("request %s: %w", requests[i].Id, ErrDuplicateRequest)
		}
		incoming[requests[i].Id] = struct{}{}
	}
	for _, request := range requests {
		if request.Trace.RequestId == "" {
			request.Trace.RequestId = request.Id
		}
		rs.byId[request.Id] = len(rs.requests)
		rs.requests = append(rs.requests, request)
	}
	rs.logger.Info("Added requests to store", zap.Int("added", len(requests)), zap.Int("total", len(rs.requests)))
	return nil
}

func (rs *RequestStore) check(request *traceModel.Request) error {
	if err := rs.validate.Struct(request); err != nil {
		return fmt.Errorf("request %s: %w: %v", request.Id, ErrInvalidRequest, err)
	}
	if _, ok := rs.byId[request.Id]; ok {
		return fmt.Errorf("request %s: %w", request.Id, ErrDuplicateRequest)
	}
	seen := make(map[string]struct{}, len(request.Trace.Spans))
	for _, span := range request.Trace.Spans {
		if _, ok := seen[span.Id]; ok {
			return fmt.Errorf("request %s span %s: %w", request.Id, span.Id, ErrDuplicateSpan)
		}
		seen[span.Id] = struct{}{}
	}
	return nil
}

// LoadFixture adds the bundled sample requests.
func (rs *RequestStore) LoadFixture() error {
	requests, err := fixture.SampleRequests()
	if err != nil {
		return fmt.Errorf("failed to load sample requests: %w", err)
	}
	return rs.Add(requests...)
}

// Requests returns the stored requests in insertion order.
func (rs *RequestStore) Requests() []traceModel.Request {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	res := make([]traceModel.Request, len(rs.requests))
	copy(res, rs.requests)
	return res
}

func (rs *RequestStore) Get(id string) (traceModel.Request, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	i, ok := rs.byId[id]
	if !ok {
		return traceModel.Request{}, fmt.Errorf("request %s: %w", id, ErrRequestNotFound)
	}
	return rs.requests[i], nil
}

func (rs *RequestStore) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.requests)
}
