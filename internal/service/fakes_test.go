package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/events"
	"github.com/soportek/helpdesk-service/internal/repository"
)

// In-memory repository fakes. Absent rows return pgx.ErrNoRows so the error
// mapping behaves the same as against Postgres.

type fakeUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, page repository.Page) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), nil
}

func (r *fakeUserRepo) add(user domain.User) *domain.User {
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[user.ID] = &user
	return &user
}

type fakeDepartmentRepo struct {
	seq         int
	departments map[string]*domain.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[string]*domain.Department)}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	r.seq++
	dept.ID = fmt.Sprintf("dept-%d", r.seq)
	dept.CreatedAt = time.Now()
	cp := *dept
	r.departments[dept.ID] = &cp
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *dept
	return &cp, nil
}

func (r *fakeDepartmentRepo) GetByName(_ context.Context, name string) (*domain.Department, error) {
	for _, dept := range r.departments {
		if dept.Name == name {
			cp := *dept
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDepartmentRepo) List(_ context.Context, page repository.Page) ([]domain.Department, error) {
	var out []domain.Department
	for _, dept := range r.departments {
		out = append(out, *dept)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, page), nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.departments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.departments, id)
	return nil
}

func (r *fakeDepartmentRepo) add(dept domain.Department) *domain.Department {
	r.seq++
	if dept.ID == "" {
		dept.ID = fmt.Sprintf("dept-%d", r.seq)
	}
	r.departments[dept.ID] = &dept
	return &dept
}

type fakeCategoryRepo struct {
	seq          int
	categories   map[string]*domain.Category
	associations map[string]map[string]bool
	departments  *fakeDepartmentRepo
}

func newFakeCategoryRepo(departments *fakeDepartmentRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories:   make(map[string]*domain.Category),
		associations: make(map[string]map[string]bool),
		departments:  departments,
	}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.seq++
	category.ID = fmt.Sprintf("cat-%d", r.seq)
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *category
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.Name == name {
			cp := *category
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoryRepo) List(_ context.Context, page repository.Page) ([]domain.Category, error) {
	var out []domain.Category
	for _, category := range r.categories {
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, page), nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	delete(r.associations, id)
	return nil
}

func (r *fakeCategoryRepo) AssignDepartment(_ context.Context, categoryID, departmentID string) (bool, error) {
	if r.associations[categoryID] == nil {
		r.associations[categoryID] = make(map[string]bool)
	}
	if r.associations[categoryID][departmentID] {
		return false, nil
	}
	r.associations[categoryID][departmentID] = true
	return true, nil
}

func (r *fakeCategoryRepo) RemoveDepartment(_ context.Context, categoryID, departmentID string) (bool, error) {
	if !r.associations[categoryID][departmentID] {
		return false, nil
	}
	delete(r.associations[categoryID], departmentID)
	return true, nil
}

func (r *fakeCategoryRepo) ListDepartments(_ context.Context, categoryID string) ([]domain.Department, error) {
	var out []domain.Department
	for deptID := range r.associations[categoryID] {
		if dept, ok := r.departments.departments[deptID]; ok {
			out = append(out, *dept)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeTicketRepo struct {
	seq     int
	tickets map[string]*domain.Ticket

	// wired by fixtures so Delete cascades like the schema's FKs do
	comments    *fakeCommentRepo
	attachments *fakeAttachmentRepo
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *ticket
	return &cp, nil
}

func (r *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
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
		if filter.Scope != nil && !scopeMatches(filter.Scope, ticket) {
			continue
		}
		out = append(out, *ticket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, filter.Page), nil
}

func scopeMatches(scope *repository.SupportScope, ticket *domain.Ticket) bool {
	if scope.DepartmentID != nil && ticket.DepartmentID == *scope.DepartmentID {
		return true
	}
	return ticket.AssigneeID != nil && *ticket.AssigneeID == scope.UserID
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
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

type fakeCommentRepo struct {
	seq      int
	comments []domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo { return &fakeCommentRepo{} }

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) removeByTicket(ticketID string) {
	kept := r.comments[:0]
	for _, comment := range r.comments {
		if comment.TicketID != ticketID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
}

type fakeMessageRepo struct {
	seq      int
	messages map[string]*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*domain.Message)}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.seq++
	msg.ID = fmt.Sprintf("msg-%d", r.seq)
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	cp := *msg
	r.messages[msg.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) Update(_ context.Context, msg *domain.Message) error {
	if _, ok := r.messages[msg.ID]; !ok {
		return pgx.ErrNoRows
	}
	msg.UpdatedAt = time.Now()
	cp := *msg
	r.messages[msg.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*domain.Message, error) {
	msg, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *msg
	return &cp, nil
}

func (r *fakeMessageRepo) List(_ context.Context, senderID *string, page repository.Page) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range r.messages {
		if senderID != nil && msg.SenderID != *senderID {
			continue
		}
		out = append(out, *msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.messages, id)
	return nil
}

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) lastType() events.EventType {
	if len(d.published) == 0 {
		return ""
	}
	return d.published[len(d.published)-1].Type
}

func paginate[T any](items []T, page repository.Page) []T {
	page = page.Normalize()
	if page.Skip >= len(items) {
		return nil
	}
	items = items[page.Skip:]
	if len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}
