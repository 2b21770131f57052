package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_customer_service.go -package mocks github.com/relasjon/crm/internal/domain CustomerService
//go:generate mockgen -destination mocks/mock_customer_repository.go -package mocks github.com/relasjon/crm/internal/domain CustomerRepository

// LifecycleStage is where a customer is in the sales lifecycle
type LifecycleStage string

const (
	LifecycleLead     LifecycleStage = "lead"
	LifecycleProspect LifecycleStage = "prospect"
	LifecycleCustomer LifecycleStage = "customer"
	LifecycleActive   LifecycleStage = "active"
	LifecycleFormer   LifecycleStage = "former"
)

func (s LifecycleStage) Valid() bool {
	switch s {
	case LifecycleLead, LifecycleProspect, LifecycleCustomer, LifecycleActive, LifecycleFormer:
		return true
	}
	return false
}

// CustomerStatus is the commercial status of a customer
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusPotential CustomerStatus = "potential"
	CustomerStatusLost      CustomerStatus = "lost"
)

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusPotential, CustomerStatusLost:
		return true
	}
	return false
}

// Customer is a company profile
type Customer struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	OrgNumber       *string        `json:"org_number,omitempty"`
	Industry        *string        `json:"industry,omitempty"`
	Website         *string        `json:"website,omitempty"`
	Address         *string        `json:"address,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	LifecycleStage  LifecycleStage `json:"lifecycle_stage"`
	Status          CustomerStatus `json:"status"`
	LeadSource      *string        `json:"lead_source,omitempty"`
	AnnualRevenue   *float64       `json:"annual_revenue,omitempty"`
	NextContactDate *time.Time     `json:"next_contact_date,omitempty"`
	CreatedBy       string         `json:"created_by"`
	AssignedTo      *string        `json:"assigned_to,omitempty"`
	UpdatedBy       *string        `json:"updated_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Ownership holds the authorization columns of a customer. Child entities
// carry their parent's ownership so checks need no extra round-trip.
type Ownership struct {
	CreatedBy  string  `json:"-"`
	AssignedTo *string `json:"-"`
}

func (c *Customer) Ownership() Ownership {
	return Ownership{CreatedBy: c.CreatedBy, AssignedTo: c.AssignedTo}
}

// CustomerWithStats is a row of the customers_with_stats view
type CustomerWithStats struct {
	Customer
	ContactCount       int        `json:"contact_count"`
	DealCount          int        `json:"deal_count"`
	OpenDealValue      float64    `json:"open_deal_value"`
	CommunicationCount int        `json:"communication_count"`
	LastCommunication  *time.Time `json:"last_communication_at,omitempty"`
	PrimaryContactName *string    `json:"primary_contact_name,omitempty"`
}

var orgNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)

const (
	maxNameLength  = 200
	maxShortLength = 100
	maxTextLength  = 5000
)

// CreateCustomerRequest is the input for creating a customer
type CreateCustomerRequest struct {
	Name            string         `json:"name"`
	OrgNumber       *string        `json:"org_number,omitempty"`
	Industry        *string        `json:"industry,omitempty"`
	Website         *string        `json:"website,omitempty"`
	Address         *string        `json:"address,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	LifecycleStage  LifecycleStage `json:"lifecycle_stage,omitempty"`
	Status          CustomerStatus `json:"status,omitempty"`
	LeadSource      *string        `json:"lead_source,omitempty"`
	AnnualRevenue   *float64       `json:"annual_revenue,omitempty"`
	NextContactDate *time.Time     `json:"next_contact_date,omitempty"`
	AssignedTo      *string        `json:"assigned_to,omitempty"`
}

// Validate coerces the request into a Customer owned by createdBy
func (r *CreateCustomerRequest) Validate(createdBy string) (*Customer, error) {
	c := &Customer{
		Name:            strings.TrimSpace(r.Name),
		OrgNumber:       normalizeOrgNumber(r.OrgNumber),
		Industry:        cleanString(r.Industry),
		Website:         cleanString(r.Website),
		Address:         cleanString(r.Address),
		Notes:           cleanString(r.Notes),
		LifecycleStage:  r.LifecycleStage,
		Status:          r.Status,
		LeadSource:      cleanString(r.LeadSource),
		AnnualRevenue:   r.AnnualRevenue,
		NextContactDate: truncateDate(r.NextContactDate),
		CreatedBy:       createdBy,
		AssignedTo:      cleanString(r.AssignedTo),
	}
	if c.LifecycleStage == "" {
		c.LifecycleStage = LifecycleLead
	}
	if c.Status == "" {
		c.Status = CustomerStatusPotential
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// CustomerPatch is a partial update. Absent fields stay unchanged and an
// explicit null clears an optional field.
type CustomerPatch struct {
	Name            Optional[string]         `json:"name"`
	OrgNumber       Optional[string]         `json:"org_number"`
	Industry        Optional[string]         `json:"industry"`
	Website         Optional[string]         `json:"website"`
	Address         Optional[string]         `json:"address"`
	Notes           Optional[string]         `json:"notes"`
	LifecycleStage  Optional[LifecycleStage] `json:"lifecycle_stage"`
	Status          Optional[CustomerStatus] `json:"status"`
	LeadSource      Optional[string]         `json:"lead_source"`
	AnnualRevenue   Optional[float64]        `json:"annual_revenue"`
	NextContactDate Optional[time.Time]      `json:"next_contact_date"`
	AssignedTo      Optional[string]         `json:"assigned_to"`
}

// Apply merges the patch into c and re-validates the result.
// created_by is never touched.
func (p *CustomerPatch) Apply(c *Customer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	applyRequired(&c.Name, p.Name)
	c.Name = strings.TrimSpace(c.Name)
	applyOptional(&c.OrgNumber, p.OrgNumber)
	c.OrgNumber = normalizeOrgNumber(c.OrgNumber)
	applyOptional(&c.Industry, p.Industry)
	applyOptional(&c.Website, p.Website)
	applyOptional(&c.Address, p.Address)
	applyOptional(&c.Notes, p.Notes)
	applyRequired(&c.LifecycleStage, p.LifecycleStage)
	applyRequired(&c.Status, p.Status)
	applyOptional(&c.LeadSource, p.LeadSource)
	applyOptional(&c.AnnualRevenue, p.AnnualRevenue)
	applyOptional(&c.NextContactDate, p.NextContactDate)
	c.NextContactDate = truncateDate(c.NextContactDate)
	applyOptional(&c.AssignedTo, p.AssignedTo)

	c.Industry = cleanString(c.Industry)
	c.Website = cleanString(c.Website)
	c.Address = cleanString(c.Address)
	c.Notes = cleanString(c.Notes)
	c.LeadSource = cleanString(c.LeadSource)
	c.AssignedTo = cleanString(c.AssignedTo)

	return c.Validate()
}

// Validate checks what the patch can get wrong without the stored row:
// clearing a required field or naming an unknown enum value.
func (p *CustomerPatch) Validate() error {
	switch {
	case p.Name.Set && (p.Name.Null || strings.TrimSpace(p.Name.Value) == ""):
		return NewValidationError("name", "name is required")
	case p.LifecycleStage.Set && p.LifecycleStage.Null:
		return NewValidationError("lifecycle_stage", "lifecycle stage is required")
	case p.LifecycleStage.Set && !p.LifecycleStage.Value.Valid():
		return NewValidationError("lifecycle_stage", "invalid lifecycle stage")
	case p.Status.Set && p.Status.Null:
		return NewValidationError("status", "status is required")
	case p.Status.Set && !p.Status.Value.Valid():
		return NewValidationError("status", "invalid status")
	}
	return nil
}

// Validate checks field rules in a fixed order and reports the first failure
func (c *Customer) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if len([]rune(c.Name)) > maxNameLength {
		return NewValidationError("name", "name must be at most 200 characters")
	}
	if c.OrgNumber != nil && !orgNumberPattern.MatchString(*c.OrgNumber) {
		return NewValidationError("org_number", "organization number must be 9 digits")
	}
	if c.Industry != nil && !govalidator.IsByteLength(*c.Industry, 0, maxShortLength) {
		return NewValidationError("industry", "industry is too long")
	}
	if c.Website != nil && !govalidator.IsURL(*c.Website) {
		return NewValidationError("website", "website must be a valid URL")
	}
	if c.Address != nil && len(*c.Address) > maxTextLength {
		return NewValidationError("address", "address is too long")
	}
	if c.Notes != nil && len(*c.Notes) > maxTextLength {
		return NewValidationError("notes", "notes are too long")
	}
	if !c.LifecycleStage.Valid() {
		return NewValidationError("lifecycle_stage", "invalid lifecycle stage")
	}
	if !c.Status.Valid() {
		return NewValidationError("status", "invalid status")
	}
	if c.LeadSource != nil && !govalidator.IsByteLength(*c.LeadSource, 0, maxShortLength) {
		return NewValidationError("lead_source", "lead source is too long")
	}
	if c.AnnualRevenue != nil && *c.AnnualRevenue < 0 {
		return NewValidationError("annual_revenue", "annual revenue cannot be negative")
	}
	if c.AssignedTo != nil && !govalidator.IsUUID(*c.AssignedTo) {
		return NewValidationError("assigned_to", "assigned user is invalid")
	}
	return nil
}

func normalizeOrgNumber(s *string) *string {
	s = cleanString(s)
	if s == nil {
		return nil
	}
	compact := strings.ReplaceAll(*s, " ", "")
	return &compact
}

// truncateDate drops the time of day for DATE columns
func truncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := DateOf(*t)
	return &d
}

// DateOf returns midnight UTC of t's calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ListCustomersParams filters the paginated customer list
type ListCustomersParams struct {
	Page           int            `json:"page"`
	Limit          int            `json:"limit"`
	Search         string         `json:"search,omitempty"`
	Status         CustomerStatus `json:"status,omitempty"`
	LifecycleStage LifecycleStage `json:"lifecycle_stage,omitempty"`
	AssignedTo     string         `json:"assigned_to,omitempty"`
	MineOnly       bool           `json:"mine_only,omitempty"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize applies defaults and caps
func (p *ListCustomersParams) Normalize() error {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	if p.Status != "" && !p.Status.Valid() {
		return NewValidationError("status", "invalid status")
	}
	if p.LifecycleStage != "" && !p.LifecycleStage.Valid() {
		return NewValidationError("lifecycle_stage", "invalid lifecycle stage")
	}
	if p.AssignedTo != "" && !govalidator.IsUUID(p.AssignedTo) {
		return NewValidationError("assigned_to", "assigned user is invalid")
	}
	return nil
}

// Page is one page of a listing together with the totals needed for paging
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPage computes TotalPages from total and limit
func NewPage[T any](items []T, page, limit, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &Page[T]{Items: items, Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// CustomerRepository is the storage of customers. Every call runs with the
// given identity installed for row-level security.
type CustomerRepository interface {
	Create(ctx context.Context, identity *Identity, customer *Customer) error
	GetByID(ctx context.Context, identity *Identity, id string) (*Customer, error)
	GetWithStats(ctx context.Context, identity *Identity, id string) (*CustomerWithStats, error)
	List(ctx context.Context, identity *Identity, params ListCustomersParams) (*Page[CustomerWithStats], error)

	// Update locks the row, hands it to fn and writes back what fn left in it
	Update(ctx context.Context, identity *Identity, id string, fn func(*Customer) error) (*Customer, error)
	// Delete locks the row, hands it to fn and deletes it if fn returns nil
	Delete(ctx context.Context, identity *Identity, id string, fn func(*Customer) error) error
}

// CustomerService is the customer entry point used by the HTTP layer
type CustomerService interface {
	Create(ctx context.Context, req *CreateCustomerRequest) Result[EntityRef]
	Update(ctx context.Context, id string, patch *CustomerPatch) Result[EntityRef]
	Delete(ctx context.Context, id string) Result[EntityRef]
	GetByID(ctx context.Context, id string) Result[*Customer]
	GetWithStats(ctx context.Context, id string) Result[*CustomerWithStats]
	List(ctx context.Context, params ListCustomersParams) Result[*Page[CustomerWithStats]]
}
