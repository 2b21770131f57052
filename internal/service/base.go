package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
	"github.com/relasjon/crm/pkg/tracing"
)

const (
	// ListLimit caps the child listings of a customer
	ListLimit = 100
	// DefaultRecentLimit is used when ListRecent gets no positive limit
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
	// ProfileListLimit bounds the assignee picker
	ProfileListLimit = 200
)

// Deps are the collaborators shared by every service
type Deps struct {
	Identities  domain.IdentityProvider
	Invalidator domain.Invalidator
	Logger      logger.Logger
	Presenter   domain.ErrorPresenter

	// Now defaults to time.Now in UTC
	Now func() time.Time
}

type base struct {
	name        string
	identities  domain.IdentityProvider
	invalidator domain.Invalidator
	logger      logger.Logger
	presenter   domain.ErrorPresenter
	now         func() time.Time
}

func newBase(name string, deps Deps) base {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	identities := deps.Identities
	if identities == nil {
		identities = ContextIdentityProvider{}
	}
	return base{
		name:        name,
		identities:  identities,
		invalidator: deps.Invalidator,
		logger:      deps.Logger,
		presenter:   deps.Presenter,
		now:         now,
	}
}

// run executes one service call: it opens a span, resolves the caller,
// converts panics and maps every failure into a Result.
func run[T any](ctx context.Context, b *base, method, entity string, op func(ctx context.Context, identity *domain.Identity) (T, error)) (res domain.Result[T]) {
	ctx, span := tracing.StartServiceSpan(ctx, b.name, method)
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s.%s: %v", b.name, method, r)
			b.logger.WithField("method", b.name+"."+method).Error(err.Error())
			res = domain.Fail[T](b.presenter, domain.NewDatabaseError(err))
		}
		tracing.EndSpan(span, err)
	}()

	identity, err := b.identities.CurrentIdentity(ctx)
	if err != nil {
		return failure[T](b, method, entity, err)
	}
	if identity != nil {
		tracing.AddAttribute(ctx, "crm.user_id", identity.ID)
	}

	data, err := op(ctx, identity)
	if err != nil {
		return failure[T](b, method, entity, err)
	}
	return domain.OK(data)
}

func failure[T any](b *base, method, entity string, err error) domain.Result[T] {
	appErr := domain.MapStorageError(err, entity)
	log := b.logger.WithFields(map[string]interface{}{
		"method": b.name + "." + method,
		"code":   string(appErr.Code),
	})
	if appErr.Code == domain.ErrCodeDatabase {
		log.Error(fmt.Sprintf("Storage operation failed: %v", err))
	} else {
		log.Debug(appErr.Error())
	}
	return domain.Fail[T](b.presenter, appErr)
}

// invalidate pushes cache hints. A failed hint is logged and never fails the mutation.
func (b *base) invalidate(ctx context.Context, paths ...string) {
	if b.invalidator == nil || len(paths) == 0 {
		return
	}
	if err := b.invalidator.Invalidate(ctx, paths...); err != nil {
		b.logger.WithField("paths", paths).Warn(fmt.Sprintf("Failed to invalidate cached pages: %v", err))
	}
}

// requireID rejects malformed ids as not found so storage never sees them
func requireID(id, entity string) error {
	if !govalidator.IsUUID(id) {
		return domain.NewNotFoundError(entity)
	}
	return nil
}

// clamp applies a default and an upper bound to a caller supplied limit
func clamp(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// checkContact verifies that contactID names a contact the caller can see
// and that it belongs to customerID
func checkContact(ctx context.Context, contacts domain.ContactRepository, identity *domain.Identity, customerID string, contactID *string) error {
	if contactID == nil {
		return nil
	}
	if !govalidator.IsUUID(*contactID) {
		return domain.ErrInvalidContactForCustomer
	}
	c, err := contacts.GetByID(ctx, identity, *contactID)
	if err != nil {
		if domain.IsCode(err, domain.ErrCodeNotFound) {
			return domain.ErrInvalidContactForCustomer
		}
		return err
	}
	if c.CustomerID != customerID {
		return domain.ErrInvalidContactForCustomer
	}
	return nil
}
