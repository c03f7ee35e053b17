package http

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/repository"
)

// In-memory repositories backing the route tests. Missing rows surface as
// pgx.ErrNoRows, matching the Postgres implementations.

type memUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: make(map[string]*domain.User)} }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context, page repository.Page) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memDepartmentRepo struct {
	seq         int
	departments map[string]*domain.Department
}

func newMemDepartmentRepo() *memDepartmentRepo {
	return &memDepartmentRepo{departments: make(map[string]*domain.Department)}
}

func (r *memDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	r.seq++
	dept.ID = fmt.Sprintf("dept-%d", r.seq)
	dept.CreatedAt = time.Now()
	cp := *dept
	r.departments[dept.ID] = &cp
	return nil
}

func (r *memDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *dept
	return &cp, nil
}

func (r *memDepartmentRepo) GetByName(_ context.Context, name string) (*domain.Department, error) {
	for _, dept := range r.departments {
		if dept.Name == name {
			cp := *dept
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memDepartmentRepo) List(_ context.Context, page repository.Page) ([]domain.Department, error) {
	var out []domain.Department
	for _, dept := range r.departments {
		out = append(out, *dept)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memDepartmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.departments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.departments, id)
	return nil
}

type memCategoryRepo struct {
	seq          int
	categories   map[string]*domain.Category
	associations map[string]map[string]bool
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{
		categories:   make(map[string]*domain.Category),
		associations: make(map[string]map[string]bool),
	}
}

func (r *memCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.seq++
	category.ID = fmt.Sprintf("cat-%d", r.seq)
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *category
	return &cp, nil
}

func (r *memCategoryRepo) GetByName(_ context.Context, name string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.Name == name {
			cp := *category
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memCategoryRepo) List(_ context.Context, page repository.Page) ([]domain.Category, error) {
	var out []domain.Category
	for _, category := range r.categories {
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	delete(r.associations, id)
	return nil
}

func (r *memCategoryRepo) AssignDepartment(_ context.Context, categoryID, departmentID string) (bool, error) {
	if r.associations[categoryID] == nil {
		r.associations[categoryID] = make(map[string]bool)
	}
	if r.associations[categoryID][departmentID] {
		return false, nil
	}
	r.associations[categoryID][departmentID] = true
	return true, nil
}

func (r *memCategoryRepo) RemoveDepartment(_ context.Context, categoryID, departmentID string) (bool, error) {
	if !r.associations[categoryID][departmentID] {
		return false, nil
	}
	delete(r.associations[categoryID], departmentID)
	return true, nil
}

func (r *memCategoryRepo) ListDepartments(_ context.Context, categoryID string) ([]domain.Department, error) {
	return nil, nil
}

type memTicketRepo struct {
	seq     int
	tickets map[string]*domain.Ticket

	// wired by the test app so Delete cascades like the schema's FKs do
	comments    *memCommentRepo
	attachments *memAttachmentRepo
}

func newMemTicketRepo() *memTicketRepo { return &memTicketRepo{tickets: make(map[string]*domain.Ticket)} }

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *ticket
	return &cp, nil
}

func (r *memTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.DepartmentID != nil && ticket.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.RequesterID != nil && ticket.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.Scope != nil {
			inDept := filter.Scope.DepartmentID != nil && ticket.DepartmentID == *filter.Scope.DepartmentID
			assigned := ticket.AssigneeID != nil && *ticket.AssigneeID == filter.Scope.UserID
			if !inDept && !assigned {
				continue
			}
		}
		out = append(out, *ticket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	if r.comments != nil {
		r.comments.removeByTicket(id)
	}
	if r.attachments != nil {
		r.attachments.removeByTicket(id)
	}
	return nil
}

type memCommentRepo struct {
	seq      int
	comments []domain.Comment
}

func newMemCommentRepo() *memCommentRepo { return &memCommentRepo{} }

func (r *memCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *memCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *memCommentRepo) removeByTicket(ticketID string) {
	kept := r.comments[:0]
	for _, comment := range r.comments {
		if comment.TicketID != ticketID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
}

type memMessageRepo struct {
	seq      int
	messages map[string]*domain.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{messages: make(map[string]*domain.Message)}
}

func (r *memMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.seq++
	msg.ID = fmt.Sprintf("msg-%d", r.seq)
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	cp := *msg
	r.messages[msg.ID] = &cp
	return nil
}

func (r *memMessageRepo) Update(_ context.Context, msg *domain.Message) error {
	if _, ok := r.messages[msg.ID]; !ok {
		return pgx.ErrNoRows
	}
	msg.UpdatedAt = time.Now()
	cp := *msg
	r.messages[msg.ID] = &cp
	return nil
}

func (r *memMessageRepo) GetByID(_ context.Context, id string) (*domain.Message, error) {
	msg, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *msg
	return &cp, nil
}

func (r *memMessageRepo) List(_ context.Context, senderID *string, page repository.Page) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range r.messages {
		if senderID != nil && msg.SenderID != *senderID {
			continue
		}
		out = append(out, *msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.messages, id)
	return nil
}

type memAttachmentRepo struct {
	seq         int
	attachments map[string]*domain.Attachment
}

func newMemAttachmentRepo() *memAttachmentRepo {
	return &memAttachmentRepo{attachments: make(map[string]*domain.Attachment)}
}

func (r *memAttachmentRepo) Create(_ context.Context, attachment *domain.Attachment) error {
	r.seq++
	attachment.ID = fmt.Sprintf("att-%d", r.seq)
	cp := *attachment
	r.attachments[attachment.ID] = &cp
	return nil
}

func (r *memAttachmentRepo) GetByID(_ context.Context, id string) (*domain.Attachment, error) {
	attachment, ok := r.attachments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *attachment
	return &cp, nil
}

func (r *memAttachmentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Attachment, error) {
	var out []domain.Attachment
	for _, attachment := range r.attachments {
		if attachment.TicketID == ticketID {
			out = append(out, *attachment)
		}
	}
	return out, nil
}

func (r *memAttachmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.attachments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.attachments, id)
	return nil
}

func (r *memAttachmentRepo) removeByTicket(ticketID string) {
	for id, attachment := range r.attachments {
		if attachment.TicketID == ticketID {
			delete(r.attachments, id)
		}
	}
}
