package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_deal_service.go -package mocks github.com/relasjon/crm/internal/domain DealService
//go:generate mockgen -destination mocks/mock_deal_repository.go -package mocks github.com/relasjon/crm/internal/domain DealRepository

// DealStage is a pipeline stage
type DealStage string

const (
	DealStageLead        DealStage = "lead"
	DealStageQualified   DealStage = "qualified"
	DealStageProposal    DealStage = "proposal"
	DealStageNegotiation DealStage = "negotiation"
	DealStageWon         DealStage = "won"
	DealStageLost        DealStage = "lost"
)

func (s DealStage) Valid() bool {
	switch s {
	case DealStageLead, DealStageQualified, DealStageProposal, DealStageNegotiation, DealStageWon, DealStageLost:
		return true
	}
	return false
}

// Terminal reports whether the stage closes the deal
func (s DealStage) Terminal() bool {
	return s == DealStageWon || s == DealStageLost
}

const DefaultCurrency = "NOK"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Deal is a sales opportunity at a customer
type Deal struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customer_id"`
	ContactID         *string    `json:"contact_id,omitempty"`
	Name              string     `json:"name"`
	Value             float64    `json:"value"`
	Currency          string     `json:"currency"`
	Stage             DealStage  `json:"stage"`
	Probability       int        `json:"probability"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	ActualCloseDate   *time.Time `json:"actual_close_date,omitempty"`
	AssignedTo        *string    `json:"assigned_to,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	CreatedBy         string     `json:"created_by"`
	UpdatedBy         *string    `json:"updated_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Customer Ownership `json:"-"`
}

// TransitionStage moves the deal to next and stamps the close date when the
// deal enters a terminal stage from a non-terminal one. Re-saving a terminal
// stage leaves the close date alone.
func (d *Deal) TransitionStage(next DealStage, today time.Time) {
	if next.Terminal() && !d.Stage.Terminal() {
		stamp := DateOf(today)
		d.ActualCloseDate = &stamp
	}
	d.Stage = next
}

type CreateDealRequest struct {
	CustomerID        string     `json:"customer_id"`
	ContactID         *string    `json:"contact_id,omitempty"`
	Name              string     `json:"name"`
	Value             float64    `json:"value"`
	Currency          string     `json:"currency,omitempty"`
	Stage             DealStage  `json:"stage,omitempty"`
	Probability       *int       `json:"probability,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	AssignedTo        *string    `json:"assigned_to,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// Validate coerces the request into a Deal. A deal created directly in a
// terminal stage gets today's close date.
func (r *CreateDealRequest) Validate(createdBy string, today time.Time) (*Deal, error) {
	d := &Deal{
		CustomerID:        strings.TrimSpace(r.CustomerID),
		ContactID:         cleanString(r.ContactID),
		Name:              strings.TrimSpace(r.Name),
		Value:             r.Value,
		Currency:          strings.ToUpper(strings.TrimSpace(r.Currency)),
		Stage:             DealStageLead,
		Probability:       10,
		ExpectedCloseDate: truncateDate(r.ExpectedCloseDate),
		AssignedTo:        cleanString(r.AssignedTo),
		Notes:             cleanString(r.Notes),
		CreatedBy:         createdBy,
	}
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}
	if r.Probability != nil {
		d.Probability = *r.Probability
	}
	if !govalidator.IsUUID(d.CustomerID) {
		return nil, NewValidationError("customer_id", "customer is required")
	}
	if r.Stage != "" {
		if !r.Stage.Valid() {
			return nil, NewValidationError("stage", "invalid stage")
		}
		d.TransitionStage(r.Stage, today)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// DealPatch is a partial update of a deal. The parent customer cannot change.
type DealPatch struct {
	ContactID         Optional[string]    `json:"contact_id"`
	Name              Optional[string]    `json:"name"`
	Value             Optional[float64]   `json:"value"`
	Currency          Optional[string]    `json:"currency"`
	Stage             Optional[DealStage] `json:"stage"`
	Probability       Optional[int]       `json:"probability"`
	ExpectedCloseDate Optional[time.Time] `json:"expected_close_date"`
	AssignedTo        Optional[string]    `json:"assigned_to"`
	Notes             Optional[string]    `json:"notes"`
}

// Apply merges the patch into the stored deal d. Stage changes go through
// TransitionStage so the close date is decided against the stored stage.
func (p *DealPatch) Apply(d *Deal, today time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	applyOptional(&d.ContactID, p.ContactID)
	d.ContactID = cleanString(d.ContactID)
	applyRequired(&d.Name, p.Name)
	d.Name = strings.TrimSpace(d.Name)
	applyRequired(&d.Value, p.Value)
	applyRequired(&d.Currency, p.Currency)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if p.Stage.Set {
		d.TransitionStage(p.Stage.Value, today)
	}
	applyRequired(&d.Probability, p.Probability)
	applyOptional(&d.ExpectedCloseDate, p.ExpectedCloseDate)
	d.ExpectedCloseDate = truncateDate(d.ExpectedCloseDate)
	applyOptional(&d.AssignedTo, p.AssignedTo)
	d.AssignedTo = cleanString(d.AssignedTo)
	applyOptional(&d.Notes, p.Notes)
	d.Notes = cleanString(d.Notes)

	return d.Validate()
}

// Validate rejects cleared required fields and unknown stages before the
// stored deal is loaded
func (p *DealPatch) Validate() error {
	switch {
	case p.Name.Set && (p.Name.Null || strings.TrimSpace(p.Name.Value) == ""):
		return NewValidationError("name", "name is required")
	case p.Value.Set && p.Value.Null:
		return NewValidationError("value", "value is required")
	case p.Currency.Set && p.Currency.Null:
		return NewValidationError("currency", "currency is required")
	case p.Stage.Set && p.Stage.Null:
		return NewValidationError("stage", "stage is required")
	case p.Stage.Set && !p.Stage.Value.Valid():
		return NewValidationError("stage", "invalid stage")
	case p.Probability.Set && p.Probability.Null:
		return NewValidationError("probability", "probability is required")
	}
	return nil
}

// ContactChanged reports whether applying the patch can point the deal at another contact
func (p *DealPatch) ContactChanged() bool {
	return p.ContactID.Set && !p.ContactID.Null
}

func (d *Deal) Validate() error {
	if d.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if len([]rune(d.Name)) > maxNameLength {
		return NewValidationError("name", "name must be at most 200 characters")
	}
	if d.Value < 0 {
		return NewValidationError("value", "value cannot be negative")
	}
	if !currencyPattern.MatchString(d.Currency) {
		return NewValidationError("currency", "currency must be a 3-letter code")
	}
	if !d.Stage.Valid() {
		return NewValidationError("stage", "invalid stage")
	}
	if d.Probability < 0 || d.Probability > 100 {
		return NewValidationError("probability", "probability must be between 0 and 100")
	}
	if d.ContactID != nil && !govalidator.IsUUID(*d.ContactID) {
		return NewValidationError("contact_id", "invalid contact for this customer")
	}
	if d.AssignedTo != nil && !govalidator.IsUUID(*d.AssignedTo) {
		return NewValidationError("assigned_to", "assigned user is invalid")
	}
	if d.Notes != nil && len(*d.Notes) > maxTextLength {
		return NewValidationError("notes", "notes are too long")
	}
	return nil
}

// DealRepository stores deals
type DealRepository interface {
	Create(ctx context.Context, identity *Identity, deal *Deal) error
	GetByID(ctx context.Context, identity *Identity, id string) (*Deal, error)
	ListForCustomer(ctx context.Context, identity *Identity, customerID string, limit int) ([]*Deal, error)
	ListByStage(ctx context.Context, identity *Identity, stage DealStage, limit int) ([]*Deal, error)
	Update(ctx context.Context, identity *Identity, id string, fn func(*Deal) error) (*Deal, error)
	Delete(ctx context.Context, identity *Identity, id string, fn func(*Deal) error) error
}

type DealService interface {
	Create(ctx context.Context, req *CreateDealRequest) Result[EntityRef]
	Update(ctx context.Context, id string, patch *DealPatch) Result[EntityRef]
	Delete(ctx context.Context, id string) Result[EntityRef]
	GetByID(ctx context.Context, id string) Result[*Deal]
	ListForCustomer(ctx context.Context, customerID string) Result[[]*Deal]
	ListByStage(ctx context.Context, stage DealStage) Result[[]*Deal]
}
