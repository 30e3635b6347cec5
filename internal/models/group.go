package models

import "slices"

// Group is the fixed, ordered set of members sharing expenses.
// Order is significant: settlement suggestions walk members in this order.
type Group struct {
	// Name is the display name of the group (e.g., "Office", "Flatmates").
	Name string

	// Members is the ordered list of participant names.
	Members []string
}

// Has reports whether name is a member of the group.
func (g Group) Has(name string) bool {
	return slices.Contains(g.Members, name)
}
