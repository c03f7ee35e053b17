package repository

// Page captures skip/limit pagination shared by all list queries.
type Page struct {
	Skip  int
	Limit int
}

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// Normalize clamps the page to safe bounds: skip is floored at zero, limit
// defaults to 100 and is capped so a single call cannot drain a table.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}
