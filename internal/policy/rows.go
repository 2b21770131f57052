package policy

import "github.com/relasjon/crm/internal/domain"

func ownershipColumns(o domain.Ownership) map[string]string {
	cols := map[string]string{"created_by": o.CreatedBy}
	if o.AssignedTo != nil {
		cols["assigned_to"] = *o.AssignedTo
	}
	return cols
}

func CustomerRow(c *domain.Customer) Row {
	cols := ownershipColumns(c.Ownership())
	cols["id"] = c.ID
	return Row{Columns: cols}
}

func ContactRow(c *domain.Contact) Row {
	return Row{
		Columns: map[string]string{
			"id":          c.ID,
			"customer_id": c.CustomerID,
			"created_by":  c.CreatedBy,
		},
		Parent: ownershipColumns(c.Customer),
	}
}

func DealRow(d *domain.Deal) Row {
	cols := map[string]string{
		"id":          d.ID,
		"customer_id": d.CustomerID,
		"created_by":  d.CreatedBy,
	}
	if d.AssignedTo != nil {
		cols["assigned_to"] = *d.AssignedTo
	}
	return Row{Columns: cols, Parent: ownershipColumns(d.Customer)}
}

func CommunicationRow(l *domain.CommunicationLog) Row {
	return Row{
		Columns: map[string]string{
			"id":          l.ID,
			"customer_id": l.CustomerID,
			"logged_by":   l.LoggedBy,
		},
		Parent: ownershipColumns(l.Customer),
	}
}

func ProfileRow(p *domain.Profile) Row {
	return Row{Columns: map[string]string{"id": p.ID}}
}
