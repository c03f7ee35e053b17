package auth

import (
	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/repository"
)

// Principal is the authenticated caller as seen by the authorization filter.
type Principal struct {
	ID           string
	Email        string
	Role         domain.Role
	DepartmentID *string
}

// NewPrincipal flattens a user into a principal.
func NewPrincipal(user *domain.User) Principal {
	return Principal{
		ID:           user.ID,
		Email:        user.Email,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	}
}

// IsAdmin reports whether the principal holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// CanReadTicket implements the visibility matrix: administrators see all,
// requesters see their own tickets, support agents see tickets in their
// department or assigned to them.
func CanReadTicket(p Principal, ticket *domain.Ticket) bool {
	switch p.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleRequester:
		return ticket.RequesterID == p.ID
	case domain.RoleSupport:
		if p.DepartmentID != nil && *p.DepartmentID == ticket.DepartmentID {
			return true
		}
		return ticket.AssigneeID != nil && *ticket.AssigneeID == p.ID
	}
	return false
}

// CanUpdateTicket shares the read scope for every role.
func CanUpdateTicket(p Principal, ticket *domain.Ticket) bool {
	return CanReadTicket(p, ticket)
}

// CanCommentTicket shares the read scope.
func CanCommentTicket(p Principal, ticket *domain.Ticket) bool {
	return CanReadTicket(p, ticket)
}

// CanAccessAttachment gates attachment reads and deletes by the owning
// ticket's read scope, so one policy covers tickets, comments and files.
func CanAccessAttachment(p Principal, ticket *domain.Ticket) bool {
	return CanReadTicket(p, ticket)
}

// CanAccessMessage restricts private messages to their sender unless the
// principal is an administrator.
func CanAccessMessage(p Principal, msg *domain.Message) bool {
	return p.IsAdmin() || msg.SenderID == p.ID
}

// ScopeTickets narrows a ticket list filter to the principal's visibility.
// Lists are never denied outright; out-of-scope rows simply do not appear.
func ScopeTickets(p Principal, filter *repository.TicketFilter) {
	switch p.Role {
	case domain.RoleAdmin:
	case domain.RoleRequester:
		id := p.ID
		filter.RequesterID = &id
	case domain.RoleSupport:
		filter.Scope = &repository.SupportScope{
			DepartmentID: p.DepartmentID,
			UserID:       p.ID,
		}
	default:
		// unknown roles see nothing they did not request themselves
		id := p.ID
		filter.RequesterID = &id
	}
}

// ScopeMessages returns the sender restriction for message lists: nil for
// administrators (all messages), the principal's id otherwise.
func ScopeMessages(p Principal) *string {
	if p.IsAdmin() {
		return nil
	}
	id := p.ID
	return &id
}
