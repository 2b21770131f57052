// Package schema holds the DDL of the CRM database. Row security policies
// are not written here; they are rendered from internal/policy.
package schema

// TableDefinitions creates every table. Order matters for foreign keys.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS identities (
		id UUID PRIMARY KEY,
		email VARCHAR(255),
		raw_user_meta_data JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL DEFAULT '',
		display_name VARCHAR(100) NOT NULL,
		avatar_url TEXT,
		role VARCHAR(20) NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
		last_login_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL CHECK (length(btrim(name)) > 0),
		org_number VARCHAR(9) CHECK (org_number ~ '^[0-9]{9}$'),
		industry VARCHAR(100),
		website TEXT,
		address TEXT,
		notes TEXT,
		lifecycle_stage VARCHAR(20) NOT NULL DEFAULT 'lead'
			CHECK (lifecycle_stage IN ('lead', 'prospect', 'customer', 'active', 'former')),
		status VARCHAR(20) NOT NULL DEFAULT 'potential'
			CHECK (status IN ('active', 'inactive', 'potential', 'lost')),
		lead_source VARCHAR(100),
		annual_revenue NUMERIC(15, 2) CHECK (annual_revenue >= 0),
		next_contact_date DATE,
		created_by UUID NOT NULL,
		assigned_to UUID,
		updated_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		full_name VARCHAR(200) NOT NULL CHECK (length(btrim(full_name)) > 0),
		email VARCHAR(255),
		phone VARCHAR(50),
		job_title VARCHAR(100),
		department VARCHAR(100),
		linkedin_url TEXT,
		is_decision_maker BOOLEAN NOT NULL DEFAULT FALSE,
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT,
		created_by UUID NOT NULL,
		updated_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		contact_id UUID REFERENCES contacts(id) ON DELETE SET NULL,
		name VARCHAR(200) NOT NULL CHECK (length(btrim(name)) > 0),
		value NUMERIC(15, 2) NOT NULL DEFAULT 0 CHECK (value >= 0),
		currency CHAR(3) NOT NULL DEFAULT 'NOK' CHECK (currency ~ '^[A-Z]{3}$'),
		stage VARCHAR(20) NOT NULL DEFAULT 'lead'
			CHECK (stage IN ('lead', 'qualified', 'proposal', 'negotiation', 'won', 'lost')),
		probability INTEGER NOT NULL DEFAULT 10 CHECK (probability BETWEEN 0 AND 100),
		expected_close_date DATE,
		actual_close_date DATE,
		assigned_to UUID,
		notes TEXT,
		created_by UUID NOT NULL,
		updated_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS communication_logs (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		contact_id UUID REFERENCES contacts(id) ON DELETE SET NULL,
		type VARCHAR(20) NOT NULL CHECK (type IN ('meeting', 'email', 'phone', 'other')),
		communication_date TIMESTAMPTZ NOT NULL,
		subject VARCHAR(200) NOT NULL CHECK (length(btrim(subject)) > 0),
		description TEXT,
		logged_by UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// IndexDefinitions creates lookup indexes and the primary-contact guarantee
var IndexDefinitions = []string{
	`CREATE INDEX IF NOT EXISTS idx_customers_created_by ON customers(created_by)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_assigned_to ON customers(assigned_to)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_updated_at ON customers(updated_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_customer_id ON contacts(customer_id)`,
	// at most one primary contact per customer
	`CREATE UNIQUE INDEX IF NOT EXISTS contacts_one_primary ON contacts(customer_id) WHERE is_primary`,
	`CREATE INDEX IF NOT EXISTS idx_deals_customer_id ON deals(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage)`,
	`CREATE INDEX IF NOT EXISTS idx_communication_logs_customer_id ON communication_logs(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_communication_logs_date ON communication_logs(communication_date DESC)`,
}

// FunctionDefinitions are the helper functions used by policies and triggers.
// The current identity is installed per transaction with
// set_config('app.current_user_id', ..., true).
var FunctionDefinitions = []string{
	`CREATE OR REPLACE FUNCTION app_current_user_id() RETURNS UUID
		LANGUAGE sql STABLE AS $$
		SELECT NULLIF(current_setting('app.current_user_id', true), '')::uuid
	$$`,
	`CREATE OR REPLACE FUNCTION app_is_system() RETURNS BOOLEAN
		LANGUAGE sql STABLE AS $$
		SELECT COALESCE(current_setting('app.system', true), '') = 'on'
	$$`,
	`CREATE OR REPLACE FUNCTION crm_set_updated_at() RETURNS trigger
		LANGUAGE plpgsql AS $$
	BEGIN
		NEW.updated_at := CURRENT_TIMESTAMP;
		RETURN NEW;
	END $$`,
	`CREATE OR REPLACE FUNCTION crm_keep_created_by() RETURNS trigger
		LANGUAGE plpgsql AS $$
	BEGIN
		NEW.created_by := OLD.created_by;
		RETURN NEW;
	END $$`,
	`CREATE OR REPLACE FUNCTION crm_keep_child_columns() RETURNS trigger
		LANGUAGE plpgsql AS $$
	BEGIN
		NEW.customer_id := OLD.customer_id;
		IF TG_TABLE_NAME = 'communication_logs' THEN
			NEW.logged_by := OLD.logged_by;
		END IF;
		RETURN NEW;
	END $$`,
	`CREATE OR REPLACE FUNCTION crm_check_contact_customer() RETURNS trigger
		LANGUAGE plpgsql AS $$
	BEGIN
		IF NEW.contact_id IS NOT NULL AND NOT EXISTS (
			SELECT 1 FROM contacts WHERE id = NEW.contact_id AND customer_id = NEW.customer_id
		) THEN
			RAISE EXCEPTION 'contact % does not belong to customer %', NEW.contact_id, NEW.customer_id
				USING ERRCODE = 'check_violation';
		END IF;
		RETURN NEW;
	END $$`,
	// one minute of tolerance for clock skew between application and database hosts
	`CREATE OR REPLACE FUNCTION crm_check_communication_date() RETURNS trigger
		LANGUAGE plpgsql AS $$
	BEGIN
		IF NEW.communication_date > CURRENT_TIMESTAMP + INTERVAL '1 minute' THEN
			RAISE EXCEPTION 'communication date is in the future'
				USING ERRCODE = 'check_violation';
		END IF;
		RETURN NEW;
	END $$`,
	// Creates the profile of a newly registered identity. Failures are
	// downgraded to a warning so signup never fails because of the profile.
	`CREATE OR REPLACE FUNCTION ensure_profile_for_identity() RETURNS trigger
		LANGUAGE plpgsql AS $$
	DECLARE
		display TEXT;
	BEGIN
		display := COALESCE(
			NULLIF(btrim(NEW.raw_user_meta_data->>'full_name'), ''),
			NULLIF(btrim(NEW.raw_user_meta_data->>'name'), ''),
			NULLIF(btrim(NEW.email), ''),
			'User'
		);
		BEGIN
			PERFORM set_config('app.system', 'on', true);
			INSERT INTO profiles (id, email, display_name, role)
			VALUES (NEW.id, COALESCE(NEW.email, ''), left(display, 100), 'user')
			ON CONFLICT (id) DO NOTHING;
			PERFORM set_config('app.system', '', true);
		EXCEPTION WHEN OTHERS THEN
			RAISE WARNING 'ensure_profile_for_identity failed for %: %', NEW.id, SQLERRM;
		END;
		RETURN NEW;
	END $$`,
}

// TriggerDefinitions wire the functions above to their tables
var TriggerDefinitions = []string{
	`DROP TRIGGER IF EXISTS crm_customers_updated_at ON customers`,
	`CREATE TRIGGER crm_customers_updated_at BEFORE UPDATE ON customers FOR EACH ROW EXECUTE FUNCTION crm_set_updated_at()`,
	`DROP TRIGGER IF EXISTS crm_customers_created_by ON customers`,
	`CREATE TRIGGER crm_customers_created_by BEFORE UPDATE ON customers FOR EACH ROW EXECUTE FUNCTION crm_keep_created_by()`,

	`DROP TRIGGER IF EXISTS crm_contacts_updated_at ON contacts`,
	`CREATE TRIGGER crm_contacts_updated_at BEFORE UPDATE ON contacts FOR EACH ROW EXECUTE FUNCTION crm_set_updated_at()`,
	`DROP TRIGGER IF EXISTS crm_contacts_created_by ON contacts`,
	`CREATE TRIGGER crm_contacts_created_by BEFORE UPDATE ON contacts FOR EACH ROW EXECUTE FUNCTION crm_keep_created_by()`,
	`DROP TRIGGER IF EXISTS crm_contacts_child ON contacts`,
	`CREATE TRIGGER crm_contacts_child BEFORE UPDATE ON contacts FOR EACH ROW EXECUTE FUNCTION crm_keep_child_columns()`,

	`DROP TRIGGER IF EXISTS crm_deals_updated_at ON deals`,
	`CREATE TRIGGER crm_deals_updated_at BEFORE UPDATE ON deals FOR EACH ROW EXECUTE FUNCTION crm_set_updated_at()`,
	`DROP TRIGGER IF EXISTS crm_deals_created_by ON deals`,
	`CREATE TRIGGER crm_deals_created_by BEFORE UPDATE ON deals FOR EACH ROW EXECUTE FUNCTION crm_keep_created_by()`,
	`DROP TRIGGER IF EXISTS crm_deals_child ON deals`,
	`CREATE TRIGGER crm_deals_child BEFORE UPDATE ON deals FOR EACH ROW EXECUTE FUNCTION crm_keep_child_columns()`,
	`DROP TRIGGER IF EXISTS crm_deals_contact ON deals`,
	`CREATE TRIGGER crm_deals_contact BEFORE INSERT OR UPDATE ON deals FOR EACH ROW EXECUTE FUNCTION crm_check_contact_customer()`,

	`DROP TRIGGER IF EXISTS crm_communication_logs_updated_at ON communication_logs`,
	`CREATE TRIGGER crm_communication_logs_updated_at BEFORE UPDATE ON communication_logs FOR EACH ROW EXECUTE FUNCTION crm_set_updated_at()`,
	`DROP TRIGGER IF EXISTS crm_communication_logs_child ON communication_logs`,
	`CREATE TRIGGER crm_communication_logs_child BEFORE UPDATE ON communication_logs FOR EACH ROW EXECUTE FUNCTION crm_keep_child_columns()`,
	`DROP TRIGGER IF EXISTS crm_communication_logs_contact ON communication_logs`,
	`CREATE TRIGGER crm_communication_logs_contact BEFORE INSERT OR UPDATE ON communication_logs FOR EACH ROW EXECUTE FUNCTION crm_check_contact_customer()`,
	`DROP TRIGGER IF EXISTS crm_communication_logs_date ON communication_logs`,
	`CREATE TRIGGER crm_communication_logs_date BEFORE INSERT OR UPDATE OF communication_date ON communication_logs FOR EACH ROW EXECUTE FUNCTION crm_check_communication_date()`,

	`DROP TRIGGER IF EXISTS crm_profiles_updated_at ON profiles`,
	`CREATE TRIGGER crm_profiles_updated_at BEFORE UPDATE ON profiles FOR EACH ROW EXECUTE FUNCTION crm_set_updated_at()`,

	`DROP TRIGGER IF EXISTS crm_identities_profile ON identities`,
	`CREATE TRIGGER crm_identities_profile AFTER INSERT ON identities FOR EACH ROW EXECUTE FUNCTION ensure_profile_for_identity()`,
}

// ViewDefinitions create read projections. security_invoker makes the view
// apply the caller's row security instead of the owner's.
var ViewDefinitions = []string{
	`DROP VIEW IF EXISTS customers_with_stats`,
	`CREATE VIEW customers_with_stats WITH (security_invoker = true) AS
	SELECT
		c.id, c.name, c.org_number, c.industry, c.website, c.address, c.notes,
		c.lifecycle_stage, c.status, c.lead_source, c.annual_revenue, c.next_contact_date,
		c.created_by, c.assigned_to, c.updated_by, c.created_at, c.updated_at,
		(SELECT count(*) FROM contacts k WHERE k.customer_id = c.id) AS contact_count,
		(SELECT count(*) FROM deals d WHERE d.customer_id = c.id) AS deal_count,
		(SELECT COALESCE(sum(d.value), 0) FROM deals d
			WHERE d.customer_id = c.id AND d.stage NOT IN ('won', 'lost')) AS open_deal_value,
		(SELECT count(*) FROM communication_logs l WHERE l.customer_id = c.id) AS communication_count,
		(SELECT max(l.communication_date) FROM communication_logs l WHERE l.customer_id = c.id) AS last_communication_at,
		(SELECT k.full_name FROM contacts k WHERE k.customer_id = c.id AND k.is_primary LIMIT 1) AS primary_contact_name
	FROM customers c`,
}

// TableNames lists the tables in creation order
var TableNames = []string{
	"settings",
	"identities",
	"profiles",
	"customers",
	"contacts",
	"deals",
	"communication_logs",
}
