// Package alert implements the alert use cases.
package alert

import (
	"context"
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/alert"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertService raises alerts and moves them through open, acknowledged and resolved
type AlertService struct {
	*crud.Service[alert.Alert, AlertResponse]
	userRepo  identity.UserRepository
	publisher shared.EventPublisher
	now       func() time.Time
}

// NewAlertService creates a new AlertService
func NewAlertService(repo alert.AlertRepository, userRepo identity.UserRepository, publisher shared.EventPublisher, logger *zap.Logger) *AlertService {
	return &AlertService{
		Service:   crud.NewService[alert.Alert, AlertResponse](repo, "Alert", ToAlertResponse, logger),
		userRepo:  userRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create raises an alert and publishes alert.created
func (s *AlertService) Create(ctx context.Context, req CreateAlertRequest) (*AlertResponse, error) {
	if err := crud.EnsureOptionalExists[identity.User](ctx, s.userRepo, req.UserID, "User", "userId"); err != nil {
		return nil, err
	}

	a, err := alert.NewAlert(req.Title, req.Message)
	if err != nil {
		return nil, err
	}
	if req.Type != "" {
		a.Type = alert.Type(req.Type)
	}
	if req.Severity != "" {
		a.Severity = alert.Severity(req.Severity)
	}
	a.UserID = req.UserID
	a.EntityType = strings.TrimSpace(req.EntityType)
	a.EntityID = req.EntityID
	a.DueDate = req.DueDate.Ptr()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.Save(ctx, a)
	if err != nil {
		return nil, err
	}
	s.Logger().Info("Alert raised",
		zap.String("alert_id", a.ID.String()),
		zap.String("severity", string(a.Severity)),
	)
	crud.Publish(ctx, s.publisher, s.Logger(), alert.EventTypeAlertCreated, alert.NewCreatedEvent(a))
	return resp, nil
}

// Update changes the fields present in req
func (s *AlertService) Update(ctx context.Context, id uuid.UUID, req UpdateAlertRequest) (*AlertResponse, error) {
	a, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		if err := crud.EnsureOptionalExists[identity.User](ctx, s.userRepo, req.UserID, "User", "userId"); err != nil {
			return nil, err
		}
		a.UserID = req.UserID
	}
	crud.SetTrimmed(&a.Title, req.Title)
	crud.SetTrimmed(&a.Message, req.Message)
	crud.SetEnum(&a.Type, req.Type)
	crud.SetEnum(&a.Severity, req.Severity)
	crud.SetTrimmed(&a.EntityType, req.EntityType)
	if req.EntityID != nil {
		a.EntityID = req.EntityID
	}
	crud.SetDate(&a.DueDate, req.DueDate)

	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.Touch()
	return s.Save(ctx, a)
}

// Acknowledge marks an open alert as seen
func (s *AlertService) Acknowledge(ctx context.Context, id uuid.UUID) (*AlertResponse, error) {
	return s.transition(ctx, id, (*alert.Alert).Acknowledge)
}

// Resolve closes an alert
func (s *AlertService) Resolve(ctx context.Context, id uuid.UUID) (*AlertResponse, error) {
	return s.transition(ctx, id, (*alert.Alert).Resolve)
}

func (s *AlertService) transition(ctx context.Context, id uuid.UUID, apply func(*alert.Alert, time.Time) error) (*AlertResponse, error) {
	a, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(a, s.now()); err != nil {
		return nil, err
	}
	resp, err := s.Save(ctx, a)
	if err != nil {
		return nil, err
	}
	s.Logger().Info("Alert status changed",
		zap.String("alert_id", a.ID.String()),
		zap.String("status", string(a.Status)),
	)
	return resp, nil
}
