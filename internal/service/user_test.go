package service

import (
	"context"
	"strings"
	"testing"

	"github.com/erp-suite/backend/internal/config"
	"github.com/erp-suite/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users       map[int64]*model.User
	userRoles   map[int64][]int64
	roles       map[string]*model.Role
	nextID      int64
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     map[int64]*model.User{},
		userRoles: map[int64][]int64{},
		roles: map[string]*model.Role{
			"Admin":   {ID: 1, Name: "Admin"},
			"Manager": {ID: 2, Name: "Manager"},
			"Staff":   {ID: 3, Name: "Staff"},
		},
		nextID: 1,
	}
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	f.createCalls++
	created := *u
	created.ID = f.nextID
	f.nextID++
	f.users[created.ID] = &created
	return &created, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id int64, email, firstName, lastName string) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Email = email
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListRoles(ctx context.Context) ([]model.Role, error) {
	out := []model.Role{}
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeUserRepo) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	r, ok := f.roles[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r, nil
}

func (f *fakeUserRepo) GetRoleNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	names := []string{}
	for _, roleID := range f.userRoles[userID] {
		for _, r := range f.roles {
			if r.ID == roleID {
				names = append(names, r.Name)
			}
		}
	}
	return names, nil
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID, roleID int64) error {
	f.userRoles[userID] = append(f.userRoles[userID], roleID)
	return nil
}

func (f *fakeUserRepo) RemoveRole(ctx context.Context, userID, roleID int64) error {
	current := f.userRoles[userID]
	kept := current[:0]
	removed := false
	for _, id := range current {
		if id == roleID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return pgx.ErrNoRows
	}
	f.userRoles[userID] = kept
	return nil
}

func TestEnsureAdminCreatesUserWithAdminRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	err := svc.EnsureAdmin(context.Background(), config.AdminConfig{Username: "admin", Password: "Admin@123"})
	require.NoError(t, err)

	user, err := repo.GetUserByLogin(context.Background(), "admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Admin@123")))

	roles, err := repo.GetRoleNamesForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Admin"}, roles)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	cfg := config.AdminConfig{Username: "admin", Password: "Admin@123"}

	require.NoError(t, svc.EnsureAdmin(context.Background(), cfg))
	require.NoError(t, svc.EnsureAdmin(context.Background(), cfg))
	assert.Equal(t, 1, repo.createCalls)
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.EnsureAdmin(context.Background(), config.AdminConfig{Username: "admin"})
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestCreateUserStoresHashedPasswordAndRoles(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.CreateUser(context.Background(), model.CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Secret@123",
		Roles:    []string{"Staff"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Staff"}, resp.Roles)

	stored := repo.users[resp.ID]
	assert.NotEqual(t, "Secret@123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret@123")))
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), model.CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Secret@123",
		Roles:    []string{"Wizard"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
