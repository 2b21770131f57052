package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_communication_service.go -package mocks github.com/relasjon/crm/internal/domain CommunicationService
//go:generate mockgen -destination mocks/mock_communication_repository.go -package mocks github.com/relasjon/crm/internal/domain CommunicationRepository

// CommunicationType is the channel of a logged interaction
type CommunicationType string

const (
	CommunicationMeeting CommunicationType = "meeting"
	CommunicationEmail   CommunicationType = "email"
	CommunicationPhone   CommunicationType = "phone"
	CommunicationOther   CommunicationType = "other"
)

func (t CommunicationType) Valid() bool {
	switch t {
	case CommunicationMeeting, CommunicationEmail, CommunicationPhone, CommunicationOther:
		return true
	}
	return false
}

// CommunicationLog records one interaction with a customer
type CommunicationLog struct {
	ID                string            `json:"id"`
	CustomerID        string            `json:"customer_id"`
	ContactID         *string           `json:"contact_id,omitempty"`
	Type              CommunicationType `json:"type"`
	CommunicationDate time.Time         `json:"communication_date"`
	Subject           string            `json:"subject"`
	Description       *string           `json:"description,omitempty"`
	LoggedBy          string            `json:"logged_by"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	Customer Ownership `json:"-"`
}

// RecentCommunication is a log entry with the names needed by activity feeds
type RecentCommunication struct {
	CommunicationLog
	CustomerName string  `json:"customer_name"`
	ContactName  *string `json:"contact_name,omitempty"`
}

type CreateCommunicationRequest struct {
	CustomerID        string            `json:"customer_id"`
	ContactID         *string           `json:"contact_id,omitempty"`
	Type              CommunicationType `json:"type"`
	CommunicationDate *time.Time        `json:"communication_date,omitempty"`
	Subject           string            `json:"subject"`
	Description       *string           `json:"description,omitempty"`
}

// Validate coerces the request. A missing date means now.
func (r *CreateCommunicationRequest) Validate(loggedBy string, now time.Time) (*CommunicationLog, error) {
	l := &CommunicationLog{
		CustomerID:  strings.TrimSpace(r.CustomerID),
		ContactID:   cleanString(r.ContactID),
		Type:        r.Type,
		Subject:     strings.TrimSpace(r.Subject),
		Description: cleanString(r.Description),
		LoggedBy:    loggedBy,
	}
	if r.CommunicationDate != nil {
		l.CommunicationDate = *r.CommunicationDate
	} else {
		l.CommunicationDate = now
	}
	if !govalidator.IsUUID(l.CustomerID) {
		return nil, NewValidationError("customer_id", "customer is required")
	}
	if err := l.Validate(now); err != nil {
		return nil, err
	}
	return l, nil
}

// CommunicationPatch is a partial update. Customer and logger cannot change.
type CommunicationPatch struct {
	ContactID         Optional[string]            `json:"contact_id"`
	Type              Optional[CommunicationType] `json:"type"`
	CommunicationDate Optional[time.Time]         `json:"communication_date"`
	Subject           Optional[string]            `json:"subject"`
	Description       Optional[string]            `json:"description"`
}

// Validate checks the patch fields that need no stored log
func (p *CommunicationPatch) Validate(now time.Time) error {
	switch {
	case p.Type.Set && p.Type.Null:
		return NewValidationError("type", "type is required")
	case p.Type.Set && !p.Type.Value.Valid():
		return NewValidationError("type", "invalid communication type")
	case p.CommunicationDate.Set && p.CommunicationDate.Null:
		return NewValidationError("communication_date", "date is required")
	case p.CommunicationDate.Set && p.CommunicationDate.Value.After(now):
		return NewValidationError("communication_date", "date cannot be in the future")
	case p.Subject.Set && (p.Subject.Null || strings.TrimSpace(p.Subject.Value) == ""):
		return NewValidationError("subject", "subject is required")
	}
	return nil
}

func (p *CommunicationPatch) Apply(l *CommunicationLog, now time.Time) error {
	if err := p.Validate(now); err != nil {
		return err
	}
	applyOptional(&l.ContactID, p.ContactID)
	l.ContactID = cleanString(l.ContactID)
	applyRequired(&l.Type, p.Type)
	applyRequired(&l.CommunicationDate, p.CommunicationDate)
	applyRequired(&l.Subject, p.Subject)
	l.Subject = strings.TrimSpace(l.Subject)
	applyOptional(&l.Description, p.Description)
	l.Description = cleanString(l.Description)
	return l.Validate(now)
}

// ContactChanged reports whether the patch points the log at a contact
func (p *CommunicationPatch) ContactChanged() bool {
	return p.ContactID.Set && !p.ContactID.Null
}

// Validate rejects dates after now
func (l *CommunicationLog) Validate(now time.Time) error {
	if !l.Type.Valid() {
		return NewValidationError("type", "invalid communication type")
	}
	if l.CommunicationDate.IsZero() {
		return NewValidationError("communication_date", "date is required")
	}
	if l.CommunicationDate.After(now) {
		return NewValidationError("communication_date", "date cannot be in the future")
	}
	if l.Subject == "" {
		return NewValidationError("subject", "subject is required")
	}
	if len([]rune(l.Subject)) > maxNameLength {
		return NewValidationError("subject", "subject must be at most 200 characters")
	}
	if l.ContactID != nil && !govalidator.IsUUID(*l.ContactID) {
		return NewValidationError("contact_id", "invalid contact for this customer")
	}
	if l.Description != nil && len(*l.Description) > maxTextLength {
		return NewValidationError("description", "description is too long")
	}
	return nil
}

type CommunicationRepository interface {
	Create(ctx context.Context, identity *Identity, log *CommunicationLog) error
	GetByID(ctx context.Context, identity *Identity, id string) (*CommunicationLog, error)
	ListForCustomer(ctx context.Context, identity *Identity, customerID string, limit int) ([]*CommunicationLog, error)
	ListRecent(ctx context.Context, identity *Identity, limit int) ([]*RecentCommunication, error)
	Update(ctx context.Context, identity *Identity, id string, fn func(*CommunicationLog) error) (*CommunicationLog, error)
	Delete(ctx context.Context, identity *Identity, id string, fn func(*CommunicationLog) error) error
}

type CommunicationService interface {
	Create(ctx context.Context, req *CreateCommunicationRequest) Result[EntityRef]
	Update(ctx context.Context, id string, patch *CommunicationPatch) Result[EntityRef]
	Delete(ctx context.Context, id string) Result[EntityRef]
	GetByID(ctx context.Context, id string) Result[*CommunicationLog]
	ListForCustomer(ctx context.Context, customerID string) Result[[]*CommunicationLog]
	ListRecent(ctx context.Context, limit int) Result[[]*RecentCommunication]
}
