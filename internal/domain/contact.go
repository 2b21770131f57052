package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_contact_service.go -package mocks github.com/relasjon/crm/internal/domain ContactService
//go:generate mockgen -destination mocks/mock_contact_repository.go -package mocks github.com/relasjon/crm/internal/domain ContactRepository

// Contact is a person working at a customer
type Contact struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	FullName        string    `json:"full_name"`
	Email           *string   `json:"email,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	JobTitle        *string   `json:"job_title,omitempty"`
	Department      *string   `json:"department,omitempty"`
	LinkedInURL     *string   `json:"linkedin_url,omitempty"`
	IsDecisionMaker bool      `json:"is_decision_maker"`
	IsPrimary       bool      `json:"is_primary"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedBy       string    `json:"created_by"`
	UpdatedBy       *string   `json:"updated_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Customer is the parent's ownership, filled in by the repository
	Customer Ownership `json:"-"`
}

// CreateContactRequest is the input for adding a contact to a customer
type CreateContactRequest struct {
	CustomerID      string  `json:"customer_id"`
	FullName        string  `json:"full_name"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	Department      *string `json:"department,omitempty"`
	LinkedInURL     *string `json:"linkedin_url,omitempty"`
	IsDecisionMaker bool    `json:"is_decision_maker"`
	IsPrimary       bool    `json:"is_primary"`
	Notes           *string `json:"notes,omitempty"`
}

func (r *CreateContactRequest) Validate(createdBy string) (*Contact, error) {
	c := &Contact{
		CustomerID:      strings.TrimSpace(r.CustomerID),
		FullName:        strings.TrimSpace(r.FullName),
		Email:           cleanString(r.Email),
		Phone:           cleanString(r.Phone),
		JobTitle:        cleanString(r.JobTitle),
		Department:      cleanString(r.Department),
		LinkedInURL:     cleanString(r.LinkedInURL),
		IsDecisionMaker: r.IsDecisionMaker,
		IsPrimary:       r.IsPrimary,
		Notes:           cleanString(r.Notes),
		CreatedBy:       createdBy,
	}
	if !govalidator.IsUUID(c.CustomerID) {
		return nil, NewValidationError("customer_id", "customer is required")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ContactPatch is a partial update of a contact. The parent customer cannot change.
type ContactPatch struct {
	FullName        Optional[string] `json:"full_name"`
	Email           Optional[string] `json:"email"`
	Phone           Optional[string] `json:"phone"`
	JobTitle        Optional[string] `json:"job_title"`
	Department      Optional[string] `json:"department"`
	LinkedInURL     Optional[string] `json:"linkedin_url"`
	IsDecisionMaker Optional[bool]   `json:"is_decision_maker"`
	IsPrimary       Optional[bool]   `json:"is_primary"`
	Notes           Optional[string] `json:"notes"`
}

func (p *ContactPatch) Validate() error {
	if p.FullName.Set && (p.FullName.Null || strings.TrimSpace(p.FullName.Value) == "") {
		return NewValidationError("full_name", "full name is required")
	}
	return nil
}

func (p *ContactPatch) Apply(c *Contact) error {
	if err := p.Validate(); err != nil {
		return err
	}
	applyRequired(&c.FullName, p.FullName)
	c.FullName = strings.TrimSpace(c.FullName)
	applyOptional(&c.Email, p.Email)
	applyOptional(&c.Phone, p.Phone)
	applyOptional(&c.JobTitle, p.JobTitle)
	applyOptional(&c.Department, p.Department)
	applyOptional(&c.LinkedInURL, p.LinkedInURL)
	if p.IsDecisionMaker.Set {
		c.IsDecisionMaker = p.IsDecisionMaker.Value
	}
	if p.IsPrimary.Set {
		c.IsPrimary = p.IsPrimary.Value
	}
	applyOptional(&c.Notes, p.Notes)

	c.Email = cleanString(c.Email)
	c.Phone = cleanString(c.Phone)
	c.JobTitle = cleanString(c.JobTitle)
	c.Department = cleanString(c.Department)
	c.LinkedInURL = cleanString(c.LinkedInURL)
	c.Notes = cleanString(c.Notes)

	return c.Validate()
}

func (c *Contact) Validate() error {
	if c.FullName == "" {
		return NewValidationError("full_name", "full name is required")
	}
	if len([]rune(c.FullName)) > maxNameLength {
		return NewValidationError("full_name", "full name must be at most 200 characters")
	}
	if c.Email != nil && !govalidator.IsEmail(*c.Email) {
		return NewValidationError("email", "invalid email address")
	}
	if c.Phone != nil && !govalidator.IsByteLength(*c.Phone, 0, 50) {
		return NewValidationError("phone", "phone number is too long")
	}
	if c.JobTitle != nil && !govalidator.IsByteLength(*c.JobTitle, 0, maxShortLength) {
		return NewValidationError("job_title", "job title is too long")
	}
	if c.Department != nil && !govalidator.IsByteLength(*c.Department, 0, maxShortLength) {
		return NewValidationError("department", "department is too long")
	}
	if c.LinkedInURL != nil && !govalidator.IsURL(*c.LinkedInURL) {
		return NewValidationError("linkedin_url", "LinkedIn URL must be a valid URL")
	}
	if c.Notes != nil && len(*c.Notes) > maxTextLength {
		return NewValidationError("notes", "notes are too long")
	}
	return nil
}

// ContactRepository stores contacts. Writes that leave IsPrimary set clear
// every other primary contact of the same customer in the same transaction.
type ContactRepository interface {
	Create(ctx context.Context, identity *Identity, contact *Contact) error
	GetByID(ctx context.Context, identity *Identity, id string) (*Contact, error)
	ListForCustomer(ctx context.Context, identity *Identity, customerID string, limit int) ([]*Contact, error)
	Update(ctx context.Context, identity *Identity, id string, fn func(*Contact) error) (*Contact, error)
	Delete(ctx context.Context, identity *Identity, id string, fn func(*Contact) error) error
}

type ContactService interface {
	Create(ctx context.Context, req *CreateContactRequest) Result[EntityRef]
	Update(ctx context.Context, id string, patch *ContactPatch) Result[EntityRef]
	Delete(ctx context.Context, id string) Result[EntityRef]
	GetByID(ctx context.Context, id string) Result[*Contact]
	ListForCustomer(ctx context.Context, customerID string) Result[[]*Contact]
	SetPrimary(ctx context.Context, id string) Result[EntityRef]
}
