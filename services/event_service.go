package services

import (
	"context"
	"strings"

	"lumentix/auth"
	"lumentix/clock"
	"lumentix/internal/status"
	"lumentix/models"
	"lumentix/monitoring"
	"lumentix/notify"
	"lumentix/storage"
)

// EventService owns event records and their status state machine.
type EventService struct {
	store   storage.Store
	auth    auth.Authorizer
	clock   clock.Clock
	notify  *notify.Emitter
	monitor *monitoring.Monitor
}

func NewEventService(store storage.Store, authorizer auth.Authorizer, clk clock.Clock, emitter *notify.Emitter, monitor *monitoring.Monitor) *EventService {
	return &EventService{
		store:   store,
		auth:    authorizer,
		clock:   clk,
		notify:  emitter,
		monitor: monitor,
	}
}

type CreateEventInput struct {
	Organizer   string `json:"organizer"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartTime   int64  `json:"start_time"`
	EndTime     int64  `json:"end_time"`
	TicketPrice int64  `json:"ticket_price"`
	MaxTickets  uint32 `json:"max_tickets"`
}

// CreateEvent registers a new event in Draft status and returns its id.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (eventID uint64, err error) {
	defer func() { track(s.monitor, "create_event", err) }()

	if err = s.auth.RequireAuthorized(ctx, in.Organizer); err != nil {
		return 0, err
	}

	for _, field := range []string{in.Organizer, in.Name, in.Description, in.Location} {
		if strings.TrimSpace(field) == "" {
			return 0, status.ErrEmptyField
		}
	}
	if in.TicketPrice <= 0 {
		return 0, status.ErrInvalidAmount
	}
	if in.MaxTickets == 0 {
		return 0, status.ErrInvalidCapacity
	}
	if in.StartTime >= in.EndTime {
		return 0, status.ErrInvalidTimeRange
	}

	tx := storage.NewTx(s.store)

	eventID, err = tx.NextEventID(ctx)
	if err != nil {
		return 0, err
	}

	event := &models.Event{
		ID:          eventID,
		Organizer:   in.Organizer,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		TicketPrice: in.TicketPrice,
		MaxTickets:  in.MaxTickets,
		TicketsSold: 0,
		Status:      models.EventDraft,
	}
	if err = tx.PutEvent(event); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	s.notify.Emit(ctx, "event_created", map[string]any{
		"event_id":  eventID,
		"organizer": in.Organizer,
		"name":      in.Name,
	})

	return eventID, nil
}

// UpdateStatus moves an event through its lifecycle. Only the organizer
// may transition an event, and only along Draft -> Published,
// Published -> Cancelled, or Published -> Completed after the end time.
func (s *EventService) UpdateStatus(ctx context.Context, eventID uint64, newStatus models.EventStatus, caller string) (err error) {
	defer func() { track(s.monitor, "update_event_status", err) }()

	if err = s.auth.RequireAuthorized(ctx, caller); err != nil {
		return err
	}
	if !newStatus.Valid() {
		return status.ErrInvalidStatusTransition
	}

	tx := storage.NewTx(s.store)

	event, err := tx.Event(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Organizer != caller {
		return status.ErrUnauthorized
	}
	if !event.Status.CanTransitionTo(newStatus) {
		return status.ErrInvalidStatusTransition
	}
	if newStatus == models.EventCompleted && s.clock.Now() <= event.EndTime {
		return status.ErrInvalidStatusTransition
	}

	previous := event.Status
	event.Status = newStatus
	if err = tx.PutEvent(event); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	s.notify.Emit(ctx, "event_status_updated", map[string]any{
		"event_id": eventID,
		"from":     string(previous),
		"to":       string(newStatus),
	})

	return nil
}

// GetEvent returns the event record by id.
func (s *EventService) GetEvent(ctx context.Context, eventID uint64) (*models.Event, error) {
	return storage.NewTx(s.store).Event(ctx, eventID)
}

// GetAvailability returns the number of tickets still purchasable.
func (s *EventService) GetAvailability(ctx context.Context, eventID uint64) (uint32, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return event.Availability(), nil
}
