package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/policy"
)

var profileColumns = []string{
	"p.id", "p.email", "p.display_name", "p.avatar_url", "p.role",
	"p.last_login_at", "p.created_at", "p.updated_at",
}

// ProfileRepository implements domain.ProfileRepository on PostgreSQL
type ProfileRepository struct {
	store
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *sql.DB, policies *policy.Engine) domain.ProfileRepository {
	return &ProfileRepository{store: newStore(db, policies)}
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &p.AvatarURL, &p.Role, &p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) get(ctx context.Context, tx *sql.Tx, identity *domain.Identity, id string, forUpdate bool) (*domain.Profile, error) {
	b := psql.Select(profileColumns...).
		From("profiles p").
		Where(sq.Eq{"p.id": id}).
		Where(r.scope(identity, policy.TableProfiles, "p"))
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	row, err := queryRow(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	p, err := scanProfile(row)
	if err != nil {
		return nil, notFound(err, "profile", "get")
	}
	return p, nil
}

// Ensure inserts profile unless a row with its id exists, then returns the
// stored row. Concurrent callers converge on the same row.
func (r *ProfileRepository) Ensure(ctx context.Context, identity *domain.Identity, profile *domain.Profile) (*domain.Profile, error) {
	var stored *domain.Profile
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		if err := r.policies.Authorize(identity, policy.TableProfiles, policy.OpInsert, policy.ProfileRow(profile)); err != nil {
			return err
		}
		now := r.now()
		insert := psql.Insert("profiles").
			Columns("id", "email", "display_name", "avatar_url", "role", "created_at", "updated_at").
			Values(profile.ID, profile.Email, profile.DisplayName, profile.AvatarURL, profile.Role, now, now).
			Suffix("ON CONFLICT (id) DO NOTHING")
		if _, err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("failed to ensure profile: %w", err)
		}
		var err error
		stored, err = r.get(ctx, tx, identity, profile.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, identity *domain.Identity, id string) (*domain.Profile, error) {
	var p *domain.Profile
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		var err error
		p, err = r.get(ctx, tx, identity, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns profiles ordered by display name, used for assignee pickers
func (r *ProfileRepository) List(ctx context.Context, identity *domain.Identity, limit int) ([]*domain.Profile, error) {
	profiles := []*domain.Profile{}
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		b := psql.Select(profileColumns...).
			From("profiles p").
			Where(r.scope(identity, policy.TableProfiles, "p")).
			OrderBy("p.display_name", "p.id")
		if limit > 0 {
			b = b.Limit(uint64(limit))
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			p, err := scanProfile(rows)
			if err != nil {
				return fmt.Errorf("failed to scan profile: %w", err)
			}
			profiles = append(profiles, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update writes the editable fields fn leaves in the locked profile.
// Role and email are not written here.
func (r *ProfileRepository) Update(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.Profile) error) (*domain.Profile, error) {
	var updated *domain.Profile
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		p, err := lockAuthorized(
			func(lock bool) (*domain.Profile, error) { return r.get(ctx, tx, identity, id, lock) },
			func(row *domain.Profile) error {
				return r.policies.Authorize(identity, policy.TableProfiles, policy.OpUpdate, policy.ProfileRow(row))
			},
		)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		p.ID = id
		p.UpdatedAt = r.now()
		update := psql.Update("profiles").
			Set("display_name", p.DisplayName).
			Set("avatar_url", p.AvatarURL).
			Where(sq.Eq{"id": p.ID})
		n, err := exec(ctx, tx, update)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		if err := requireAffected(n, "profile"); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// TouchLastLogin stamps the caller's own profile
func (r *ProfileRepository) TouchLastLogin(ctx context.Context, identity *domain.Identity, at time.Time) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		update := psql.Update("profiles").
			Set("last_login_at", at.UTC()).
			Where(sq.Eq{"id": identity.ID})
		if _, err := exec(ctx, tx, update); err != nil {
			return fmt.Errorf("failed to touch last login: %w", err)
		}
		return nil
	})
}

// RegisterIdentity inserts the identity mirror row. The insert trigger on
// identities then creates the profile.
func (r *ProfileRepository) RegisterIdentity(ctx context.Context, identity *domain.Identity) error {
	metadata := identity.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return domain.NewValidationError("metadata", "metadata must be a JSON object")
	}
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		row := policy.Row{Columns: map[string]string{"id": identity.ID}}
		if err := r.policies.Authorize(identity, policy.TableIdentities, policy.OpInsert, row); err != nil {
			return err
		}
		var email interface{}
		if identity.Email != "" {
			email = identity.Email
		}
		insert := psql.Insert("identities").
			Columns("id", "email", "raw_user_meta_data", "created_at").
			Values(identity.ID, email, string(raw), r.now()).
			Suffix("ON CONFLICT (id) DO NOTHING")
		if _, err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("failed to register identity: %w", err)
		}
		return nil
	})
}
