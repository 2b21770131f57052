package policy

// Operation is a row access kind
type Operation string

const (
	OpSelect Operation = "select"
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	// OpUpdateCheck is checked against the row as it will be after an update
	OpUpdateCheck Operation = "update_check"
	OpDelete      Operation = "delete"
)

// Table names carrying row-level policies
const (
	TableCustomers      = "customers"
	TableContacts       = "contacts"
	TableDeals          = "deals"
	TableCommunications = "communication_logs"
	TableProfiles       = "profiles"
	TableIdentities     = "identities"
)

// TablePolicy holds one predicate per operation for a table. An unset
// predicate denies the operation.
type TablePolicy struct {
	Table       string
	Entity      string
	Select      Predicate
	Insert      Predicate
	Update      Predicate
	UpdateCheck Predicate
	Delete      Predicate
}

// Predicate returns the predicate guarding op
func (t TablePolicy) Predicate(op Operation) Predicate {
	switch op {
	case OpSelect:
		return t.Select
	case OpInsert:
		return t.Insert
	case OpUpdate:
		return t.Update
	case OpUpdateCheck:
		if t.UpdateCheck.IsZero() {
			return t.Update
		}
		return t.UpdateCheck
	case OpDelete:
		return t.Delete
	}
	return Predicate{}
}

// Policy returns the rule chain evaluated in application code for op
func (t TablePolicy) Policy(op Operation) Policy {
	return Policy{
		DenyIfNoIdentity(),
		AllowIf(t.Predicate(op)),
		AlwaysDeny(),
	}
}

func creatorOrAssignee() Predicate {
	return Or(IsColumn("created_by"), IsColumn("assigned_to"))
}

// Generation2 is the current rule set.
//
//	customers:          read by everyone signed in; insert as creator; update/delete by creator or assignee
//	contacts:           every operation needs an accessible parent customer
//	deals:              read by creator, assignee or via the customer; insert as creator on an accessible customer;
//	                    update/delete by creator or assignee
//	communication_logs: read/insert by everyone signed in; update/delete by the logger
//	profiles:           read by everyone signed in; insert/update own row; system inserts for the signup trigger
//	identities:         own row only
func Generation2() []TablePolicy {
	return []TablePolicy{
		{
			Table:  TableCustomers,
			Entity: "customer",
			Select: Authenticated(),
			Insert: IsColumn("created_by"),
			Update: creatorOrAssignee(),
			// the new row only has to be signed in so an assignee can hand the customer over
			UpdateCheck: Authenticated(),
			Delete:      creatorOrAssignee(),
		},
		{
			Table:       TableContacts,
			Entity:      "contact",
			Select:      ParentCustomerAccessible(),
			Insert:      ParentCustomerAccessible(),
			Update:      ParentCustomerAccessible(),
			UpdateCheck: ParentCustomerAccessible(),
			Delete:      ParentCustomerAccessible(),
		},
		{
			Table:       TableDeals,
			Entity:      "deal",
			Select:      Or(IsColumn("created_by"), IsColumn("assigned_to"), ParentCustomerAccessible()),
			Insert:      And(IsColumn("created_by"), ParentCustomerAccessible()),
			Update:      creatorOrAssignee(),
			UpdateCheck: Authenticated(),
			Delete:      creatorOrAssignee(),
		},
		{
			Table:       TableCommunications,
			Entity:      "communication",
			Select:      Authenticated(),
			Insert:      Authenticated(),
			Update:      IsColumn("logged_by"),
			UpdateCheck: IsColumn("logged_by"),
			Delete:      IsColumn("logged_by"),
		},
		{
			Table:       TableProfiles,
			Entity:      "profile",
			Select:      Authenticated(),
			Insert:      Or(IsColumn("id"), System()),
			Update:      IsColumn("id"),
			UpdateCheck: IsColumn("id"),
		},
		{
			Table:  TableIdentities,
			Entity: "identity",
			Select: IsColumn("id"),
			Insert: IsColumn("id"),
		},
	}
}

// LegacyPolicyNames are the permissive policies of the first schema
// revision. They granted every signed-in user full access and are dropped
// before the current rules are installed.
var LegacyPolicyNames = map[string][]string{
	TableCustomers: {
		"Authenticated users can view customers",
		"Authenticated users can insert customers",
		"Authenticated users can update customers",
		"Authenticated users can delete customers",
	},
	TableContacts: {
		"Authenticated users can view contacts",
		"Authenticated users can insert contacts",
		"Authenticated users can update contacts",
		"Authenticated users can delete contacts",
	},
	TableDeals: {
		"Authenticated users can view deals",
		"Authenticated users can insert deals",
		"Authenticated users can update deals",
		"Authenticated users can delete deals",
	},
}
