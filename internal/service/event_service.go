package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/itsmeERRORr/esportscalendar/internal/finance"
	"github.com/itsmeERRORr/esportscalendar/internal/fx"
	"github.com/itsmeERRORr/esportscalendar/internal/lifecycle"
	"github.com/itsmeERRORr/esportscalendar/internal/models"
	"github.com/itsmeERRORr/esportscalendar/internal/repository"
	"github.com/itsmeERRORr/esportscalendar/internal/stats"
	"github.com/itsmeERRORr/esportscalendar/monitoring"
	"github.com/itsmeERRORr/esportscalendar/pkg/logger"
	"github.com/itsmeERRORr/esportscalendar/pkg/rabbitmq"
)

var ErrEventNotFound = errors.New("event not found")

// RateSource provides the latest EUR-based rate table.
type RateSource interface {
	Latest(ctx context.Context) (fx.RateTable, error)
}

// Publisher notifies downstream consumers of event changes.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type Dashboard struct {
	Summary        stats.Summary
	MonthlyRevenue []stats.MonthRevenue
	NextEvents     stats.NextEvents
	PendingEvents  []models.Event
	PaidEvents     []models.Event
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, userID, id uint) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, userID, id uint) error
	ListEvents(ctx context.Context, userID uint) ([]models.Event, error)
	GetDashboard(ctx context.Context, userID uint) (*Dashboard, error)
}

type eventService struct {
	repo      repository.EventRepository
	fxRates   RateSource
	publisher Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewEventService(repo repository.EventRepository, fxRates RateSource, publisher Publisher, log *logger.Logger) EventService {
	return &eventService{
		repo:      repo,
		fxRates:   fxRates,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// CreateEvent derives every computed field before persisting: the end
// date is clamped to the start date, the day count recomputed, the quote
// derived from the rates, and the euro conversion applied.
func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	s.normalizeDates(event)
	event.Budgeted = finance.DeriveBudget(event.Rate, event.TravelRate, event.NumberOfDays)
	s.applyConversion(ctx, event)

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	s.publish(rabbitmq.KeyEventCreated, event)
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, userID, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.UserID != userID {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// UpdateEvent has full replace semantics. The derived day count and the
// euro conversion are always recomputed; the budgeted quote keeps the
// client-supplied value, since a manual override is allowed after
// creation.
func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	existing, err := s.GetEvent(ctx, event.UserID, event.ID)
	if err != nil {
		return err
	}
	event.CreatedAt = existing.CreatedAt

	s.normalizeDates(event)
	s.applyConversion(ctx, event)

	if err := s.repo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	s.publish(rabbitmq.KeyEventUpdated, event)
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, userID, id uint) error {
	event, err := s.GetEvent(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.publish(rabbitmq.KeyEventDeleted, event)
	return nil
}

// ListEvents returns the user's events with the status sweep applied.
// Stale Confirmed events are corrected in the returned collection even
// when writing the correction back fails.
func (s *eventService) ListEvents(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.loadAndSweep(ctx, userID)
}

func (s *eventService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	events, err := s.loadAndSweep(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	d := &Dashboard{
		Summary:        stats.Summarize(events, today),
		MonthlyRevenue: stats.MonthlyRevenue(events),
		NextEvents:     stats.Upcoming(events, today),
	}
	for i := range events {
		switch events[i].Status {
		case models.StatusUnpaid:
			d.PendingEvents = append(d.PendingEvents, events[i])
		case models.StatusPaid:
			d.PaidEvents = append(d.PaidEvents, events[i])
		}
	}
	return d, nil
}

func (s *eventService) loadAndSweep(ctx context.Context, userID uint) ([]models.Event, error) {
	events, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	for _, changed := range lifecycle.Sweep(events, s.now()) {
		monitoring.RecordSweepTransition()
		if err := s.repo.Update(ctx, changed); err != nil {
			monitoring.RecordSweepPersistFailure()
			s.log.WithEventID(changed.ID).WithField("error", err.Error()).
				Error("failed to persist sweep transition")
			continue
		}
		s.publish(rabbitmq.KeyEventStatusSwept, changed)
	}

	return events, nil
}

// normalizeDates zeroes the time-of-day, clamps an end date that
// precedes the start date, and rederives the inclusive day count.
func (s *eventService) normalizeDates(event *models.Event) {
	event.StartDate = models.Midnight(event.StartDate)
	event.EndDate = models.Midnight(event.EndDate)
	if event.EndDate.Before(event.StartDate) {
		event.EndDate = event.StartDate
	}
	event.NumberOfDays = event.Duration()
}

// applyConversion recomputes the euro-normalized fields with the latest
// rate table. A provider failure degrades to an empty table, which
// leaves foreign amounts at a 1:1 rate.
func (s *eventService) applyConversion(ctx context.Context, event *models.Event) {
	rates := s.latestRates(ctx)
	if finance.ApplyConversion(event, rates) {
		monitoring.RecordMissingRateFallback(event.Currency)
		s.log.WithField("currency", event.Currency).
			Warn("no exchange rate available, treating amount as euros")
	}
}

func (s *eventService) latestRates(ctx context.Context) fx.RateTable {
	if s.fxRates == nil {
		return fx.RateTable{}
	}
	rates, err := s.fxRates.Latest(ctx)
	if err != nil {
		monitoring.RecordRateFetchFailure()
		s.log.WithField("error", err.Error()).Warn("rate fetch failed, conversions degrade to 1:1")
		return fx.RateTable{}
	}
	return rates
}

func (s *eventService) publish(routingKey string, event *models.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		s.log.WithEventID(event.ID).WithField("error", err.Error()).
			Warn("failed to publish " + routingKey)
	}
}
