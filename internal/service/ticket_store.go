package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/classifier"
	"github.com/spec-kit/triage-service/internal/clock"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

const (
	DefaultInferenceDelay = 1500 * time.Millisecond
	DefaultResponseDelay  = 2 * time.Second

	maxIDAttempts = 16
)

var errIDSpaceExhausted = errors.New("could not allocate a unique ticket id")

// TicketStore owns every ticket created during the process lifetime. It is
// the only writer of the collection.
type TicketStore struct {
	classifier     *classifier.Classifier
	clock          clock.Clock
	inferenceDelay time.Duration
	responseDelay  time.Duration
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	newID          func() string

	mu      sync.RWMutex
	tickets []domain.Ticket // newest first
	issued  map[string]struct{}
	timers  map[string]*clock.Timer
	closed  bool

	sessionsMu sync.Mutex
	sessions   map[string]*Session
	sessionTTL time.Duration
	lastSweep  time.Time
}

// TicketStoreDependencies bundles collaborators for the ticket store. Zero
// values select production defaults.
type TicketStoreDependencies struct {
	Classifier     *classifier.Classifier
	Clock          clock.Clock
	InferenceDelay time.Duration
	ResponseDelay  time.Duration
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	// NewID generates candidate ticket ids. Collisions are retried.
	NewID func() string
	// SessionTTL evicts sessions idle for longer than this. Zero keeps
	// sessions for the process lifetime.
	SessionTTL time.Duration
}

// NewTicketStore constructs the store.
func NewTicketStore(deps TicketStoreDependencies) *TicketStore {
	s := &TicketStore{
		classifier:     deps.Classifier,
		clock:          deps.Clock,
		inferenceDelay: deps.InferenceDelay,
		responseDelay:  deps.ResponseDelay,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		newID:          deps.NewID,
		issued:         make(map[string]struct{}),
		timers:         make(map[string]*clock.Timer),
		sessions:       make(map[string]*Session),
		sessionTTL:     deps.SessionTTL,
	}
	if s.classifier == nil {
		s.classifier = classifier.New(nil)
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.inferenceDelay == 0 {
		s.inferenceDelay = DefaultInferenceDelay
	}
	if s.responseDelay == 0 {
		s.responseDelay = DefaultResponseDelay
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.newID == nil {
		s.newID = generateTicketID
	}
	return s
}

// Registry returns the category registry used for classification.
func (s *TicketStore) Registry() *classifier.Registry {
	return s.classifier.Registry()
}

// Submit validates the request, waits out the simulated inference latency,
// classifies the text and stores a new Processing ticket at the front of
// the collection. The Responded transition is scheduled on the store's
// clock and runs detached from the caller.
func (s *TicketStore) Submit(ctx context.Context, text, user string) (domain.Ticket, error) {
	if err := validateSubmission(text, user); err != nil {
		return domain.Ticket{}, err
	}

	select {
	case <-s.clock.After(s.inferenceDelay):
	case <-ctx.Done():
		return domain.Ticket{}, fmt.Errorf("simulated inference: %w", ctx.Err())
	}

	classification := s.classifier.Classify(text)

	s.mu.Lock()
	id, err := s.allocateIDLocked()
	if err != nil {
		s.mu.Unlock()
		return domain.Ticket{}, apperrors.NewInternalError(err)
	}
	ticket := domain.Ticket{
		ID:         id,
		User:       user,
		Text:       text,
		CreatedAt:  s.clock.Now(),
		Status:     domain.TicketStatusProcessing,
		Category:   classification.Category,
		Confidence: classification.Confidence,
		Priority:   classification.Priority,
		Color:      classification.Color,
		Response:   classification.Response,
	}
	s.tickets = append([]domain.Ticket{ticket}, s.tickets...)
	s.mu.Unlock()

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("category", string(ticket.Category)),
		zap.Float64("confidence", ticket.Confidence))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			User:       ticket.User,
			Category:   ticket.Category,
			Priority:   ticket.Priority,
			Confidence: ticket.Confidence,
		},
	})

	s.scheduleResponse(ticket.ID)
	return ticket, nil
}

// List returns a copy of all tickets, newest first.
func (s *TicketStore) List() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Get returns the ticket with the given id.
func (s *TicketStore) Get(id string) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.tickets[i], nil
	}
	return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// Filter returns the tickets matching searchTerm and category, newest first.
func (s *TicketStore) Filter(searchTerm, category string) []domain.Ticket {
	return FilterTickets(s.List(), searchTerm, category)
}

// Stats aggregates the current tickets per category.
func (s *TicketStore) Stats() Stats {
	return ComputeStats(s.Registry().Names(), s.List())
}

// Close drops every pending Responded transition. Tickets stay readable.
func (s *TicketStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *TicketStore) scheduleResponse(id string) {
	timer := s.clock.AfterFunc(s.responseDelay, func() {
		s.markResponded(id)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		timer.Stop()
		return
	}
	if i := s.indexLocked(id); i >= 0 && s.tickets[i].Status == domain.TicketStatusProcessing {
		s.timers[id] = timer
	}
}

// markResponded is a no-op unless the ticket exists and is still Processing.
func (s *TicketStore) markResponded(id string) {
	s.mu.Lock()
	delete(s.timers, id)
	i := s.indexLocked(id)
	if s.closed || i < 0 || !isValidTransition(s.tickets[i].Status, domain.TicketStatusResponded) {
		s.mu.Unlock()
		return
	}
	s.tickets[i].Status = domain.TicketStatusResponded
	s.mu.Unlock()

	s.logger.Debug("ticket responded", zap.String("ticket_id", id))
	s.publishEvent(context.Background(), events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: id,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: domain.TicketStatusProcessing,
			NewStatus: domain.TicketStatusResponded,
		},
	})
}

func (s *TicketStore) indexLocked(id string) int {
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TicketStore) allocateIDLocked() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if _, taken := s.issued[id]; taken {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	return "", errIDSpaceExhausted
}

func (s *TicketStore) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

// Escalated is listed for a future manual escalation API; nothing in the
// store moves a ticket there.
var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusProcessing: {domain.TicketStatusResponded, domain.TicketStatusEscalated},
	domain.TicketStatusResponded:  {domain.TicketStatusEscalated},
	domain.TicketStatusEscalated:  {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func validateSubmission(text, user string) error {
	var missing []string
	if strings.TrimSpace(text) == "" {
		missing = append(missing, "text")
	}
	if strings.TrimSpace(user) == "" {
		missing = append(missing, "user")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("please fill in all fields", map[string]any{"missing": missing})
	}
	return nil
}

func generateTicketID() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
