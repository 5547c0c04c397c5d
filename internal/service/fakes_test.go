package service

import (
	"context"
	"strings"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/facebook"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository interfaces. They implement just enough
// of the mongo repos' semantics (duplicate keys, not-found sentinels) for the
// service tests.

// --- UserRepository ---

type fakeUserRepo struct {
	users     map[primitive.ObjectID]*domain.User
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.TenantID == user.TenantID && strings.EqualFold(u.Email, user.Email) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	stored.CreatedAt = time.Now().UTC()
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetStaffByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if (u.Role == domain.RoleCoach || u.Role == domain.RoleSuperAdmin) && strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByTenantAndEmail(_ context.Context, tenantID primitive.ObjectID, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.TenantID == tenantID && strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListLeads(_ context.Context, tenantID primitive.ObjectID, status domain.LeadStatus) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.TenantID != tenantID || u.Role != domain.RoleConsumer {
			continue
		}
		if status != "" && u.LeadStatus != status {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) LeadsWithCallbacksBetween(_ context.Context, tenantID primitive.ObjectID, from, to time.Time) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.TenantID != tenantID || u.Role != domain.RoleConsumer {
			continue
		}
		for _, fu := range u.FollowUps {
			if fu.CallbackAt == nil {
				continue
			}
			at := *fu.CallbackAt
			if !at.Before(from) && at.Before(to) {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// --- ClientRepository ---

type fakeClientRepo struct {
	clients map[primitive.ObjectID]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[primitive.ObjectID]*domain.Client{}}
}

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *client
	stored.ID = id
	r.clients[id] = &stored
	return id, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientRepo) ListByTenant(_ context.Context, tenantID primitive.ObjectID) ([]domain.Client, error) {
	var out []domain.Client
	for _, c := range r.clients {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) ReplacePlan(_ context.Context, clientID primitive.ObjectID, kind domain.PlanKind, plan *domain.Plan) error {
	c, ok := r.clients[clientID]
	if !ok {
		return repository.ErrNotFound
	}
	c.SetPlan(kind, plan)
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.clients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

// --- CatalogRepository ---

type fakeCatalogRepo struct {
	foods    map[primitive.ObjectID]domain.FoodItem
	workouts map[primitive.ObjectID]domain.WorkoutItem

	// Captured by the search methods for pagination assertions.
	lastPage  int
	lastLimit int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		foods:    map[primitive.ObjectID]domain.FoodItem{},
		workouts: map[primitive.ObjectID]domain.WorkoutItem{},
	}
}

func (r *fakeCatalogRepo) addFood(item domain.FoodItem) primitive.ObjectID {
	id := primitive.NewObjectID()
	item.ID = id
	r.foods[id] = item
	return id
}

func (r *fakeCatalogRepo) addWorkout(item domain.WorkoutItem) primitive.ObjectID {
	id := primitive.NewObjectID()
	item.ID = id
	r.workouts[id] = item
	return id
}

func (r *fakeCatalogRepo) SearchFoods(_ context.Context, query string, page, limit int) ([]domain.FoodRow, error) {
	r.lastPage, r.lastLimit = page, limit
	var out []domain.FoodRow
	for _, f := range r.foods {
		if query == "" || strings.Contains(strings.ToLower(f.FoodName), strings.ToLower(query)) {
			out = append(out, domain.FoodRow{ID: f.ID, FoodName: f.FoodName, Category: f.Category, Calories: f.Calories})
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) SearchWorkouts(_ context.Context, query string, page, limit int) ([]domain.WorkoutRow, error) {
	r.lastPage, r.lastLimit = page, limit
	var out []domain.WorkoutRow
	for _, w := range r.workouts {
		if query == "" || strings.Contains(strings.ToLower(w.WorkoutName), strings.ToLower(query)) {
			out = append(out, domain.WorkoutRow{ID: w.ID, WorkoutName: w.WorkoutName, Category: w.Category, Difficulty: w.Difficulty})
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetFoodsByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.FoodItem, error) {
	var out []domain.FoodItem
	for _, id := range ids {
		if f, ok := r.foods[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetWorkoutsByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.WorkoutItem, error) {
	var out []domain.WorkoutItem
	for _, id := range ids {
		if w, ok := r.workouts[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) CreateFood(_ context.Context, item *domain.FoodItem) (primitive.ObjectID, error) {
	return r.addFood(*item), nil
}

func (r *fakeCatalogRepo) CreateWorkout(_ context.Context, item *domain.WorkoutItem) (primitive.ObjectID, error) {
	return r.addWorkout(*item), nil
}

func (r *fakeCatalogRepo) DeleteFood(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.foods[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.foods, id)
	return nil
}

func (r *fakeCatalogRepo) DeleteWorkout(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

// --- TenantRepository ---

type fakeTenantRepo struct {
	tenants map[primitive.ObjectID]*domain.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[primitive.ObjectID]*domain.Tenant{}}
}

func (r *fakeTenantRepo) Create(_ context.Context, tenant *domain.Tenant) (primitive.ObjectID, error) {
	for _, t := range r.tenants {
		if strings.EqualFold(t.Name, tenant.Name) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := *tenant
	stored.ID = id
	r.tenants[id] = &stored
	return id, nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	copied.PricingPlans = append([]domain.PricingPlan(nil), t.PricingPlans...)
	return &copied, nil
}

func (r *fakeTenantRepo) GetByFacebookPage(_ context.Context, pageID string) (*domain.Tenant, error) {
	for _, t := range r.tenants {
		if t.FacebookPageID != "" && t.FacebookPageID == pageID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTenantRepo) List(_ context.Context) ([]domain.Tenant, error) {
	var out []domain.Tenant
	for _, t := range r.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(_ context.Context, tenant *domain.Tenant) error {
	if _, ok := r.tenants[tenant.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *tenant
	stored.PricingPlans = append([]domain.PricingPlan(nil), tenant.PricingPlans...)
	r.tenants[tenant.ID] = &stored
	return nil
}

// --- ContentRepository ---

type fakeContentRepo struct {
	defaults  map[int]domain.DailyContent
	overrides map[string]domain.ContentOverride
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		defaults:  map[int]domain.DailyContent{},
		overrides: map[string]domain.ContentOverride{},
	}
}

func (r *fakeContentRepo) GetDefaultByDay(_ context.Context, dayOfYear int) (*domain.DailyContent, error) {
	d, ok := r.defaults[dayOfYear]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *fakeContentRepo) GetOverrideByDateKey(_ context.Context, dateKey string) (*domain.ContentOverride, error) {
	o, ok := r.overrides[dateKey]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *fakeContentRepo) UpsertOverride(_ context.Context, override *domain.ContentOverride) error {
	r.overrides[override.DateKey] = *override
	return nil
}

func (r *fakeContentRepo) DeleteOverride(_ context.Context, dateKey string) error {
	if _, ok := r.overrides[dateKey]; !ok {
		return repository.ErrNotFound
	}
	delete(r.overrides, dateKey)
	return nil
}

func (r *fakeContentRepo) ReplaceDefaults(_ context.Context, entries []domain.DailyContent) error {
	r.defaults = map[int]domain.DailyContent{}
	for _, e := range entries {
		r.defaults[e.DayOfYear] = e
	}
	return nil
}

// --- GraphClient ---

type fakeGraphClient struct {
	leads map[string]*facebook.LeadData
	errs  map[string]error
}

func newFakeGraphClient() *fakeGraphClient {
	return &fakeGraphClient{
		leads: map[string]*facebook.LeadData{},
		errs:  map[string]error{},
	}
}

func (c *fakeGraphClient) FetchLead(_ context.Context, leadgenID string) (*facebook.LeadData, error) {
	if err, ok := c.errs[leadgenID]; ok {
		return nil, err
	}
	if lead, ok := c.leads[leadgenID]; ok {
		return lead, nil
	}
	return nil, &facebook.GraphError{StatusCode: 404, Message: "unknown leadgen id"}
}
