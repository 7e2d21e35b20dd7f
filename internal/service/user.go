package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/erp-suite/backend/internal/config"
	"github.com/erp-suite/backend/internal/db"
	"github.com/erp-suite/backend/internal/model"
)

type userRepo interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, email, firstName, lastName string) error
	DeleteUser(ctx context.Context, id int64) error
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRoleByName(ctx context.Context, name string) (*model.Role, error)
	GetRoleNamesForUser(ctx context.Context, userID int64) ([]string, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error
}

type UserService struct {
	repo userRepo
}

func NewUserService(repo userRepo) *UserService {
	return &UserService{repo: repo}
}

// EnsureAdmin creates the bootstrap admin account with the Admin role if no
// user with the configured username exists yet.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.Password) == "" {
		return fmt.Errorf("%w: ADMIN_USERNAME/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	if _, err := s.repo.GetUserByLogin(ctx, cfg.Username); err == nil {
		return nil
	} else if !db.IsNoRows(err) {
		return err
	}

	hash, err := HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     cfg.Username,
		Email:        cfg.Username + "@localhost",
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
	})
	if err != nil {
		return err
	}

	role, err := s.repo.GetRoleByName(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.repo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return err
	}

	log.Printf("Created bootstrap admin user %q (id=%d)", user.Username, user.ID)
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		roles, err := s.repo.GetRoleNamesForUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toUserResponse(&u, roles))
	}
	return out, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	roles, err := s.repo.GetRoleNamesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user, roles)
	return &resp, nil
}

func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	for _, name := range req.Roles {
		role, err := s.repo.GetRoleByName(ctx, name)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, name)
			}
			return nil, err
		}
		if err := s.repo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}

	return s.GetUser(ctx, user.ID)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) error {
	current, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	email := current.Email
	if req.Email != "" {
		email = req.Email
	}

	if err := s.repo.UpdateUser(ctx, id, email, req.FirstName, req.LastName); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.repo.ListRoles(ctx)
}

func (s *UserService) AssignRole(ctx context.Context, userID int64, roleName string) error {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	role, err := s.repo.GetRoleByName(ctx, roleName)
	if err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, roleName)
		}
		return err
	}
	return s.repo.AssignRole(ctx, userID, role.ID)
}

func (s *UserService) RemoveRole(ctx context.Context, userID int64, roleName string) error {
	role, err := s.repo.GetRoleByName(ctx, roleName)
	if err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, roleName)
		}
		return err
	}
	if err := s.repo.RemoveRole(ctx, userID, role.ID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func toUserResponse(u *model.User, roles []string) model.UserResponse {
	return model.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Roles:     roles,
	}
}
