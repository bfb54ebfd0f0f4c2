package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskhub-api/internal/apperr"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/internal/domain/repository"
	"github.com/oksasatya/taskhub-api/internal/validation"
	"github.com/oksasatya/taskhub-api/pkg/pagination"
)

// CredentialHasher is the credential service boundary; the bcrypt
// implementation lives in pkg/helpers.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// UserService executes the create/edit/view actions for the users
// resource in the fixed order validate, authorize, execute.
type UserService struct {
	Repo   repository.UserRepository
	Hasher CredentialHasher
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, hasher CredentialHasher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Hasher: hasher, Logger: logger}
}

var userUpdatableFields = []string{"username", "email", "full_name", "password", "role", "is_active"}

type userCreateRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Password string  `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type userEditRequest struct {
	ID       int64   `json:"id"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type userViewRequest struct {
	ID       *int64  `json:"id"`
	Username *string `json:"username"`
	Page     *int    `json:"page"`
	Size     *int    `json:"size"`
}

// userPayload is the client-visible shape of a user. The password hash
// never leaves the service.
func userPayload(u *entity.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"full_name":  u.FullName,
		"role":       u.Role,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func (s *UserService) Create(ctx context.Context, actor entity.Actor, p dispatch.Payload) (dispatch.Result, error) {
	if err := validation.RequireFields(p, "username", "email", "full_name", "password"); err != nil {
		return dispatch.Result{}, err
	}
	var req userCreateRequest
	if err := p.Decode(&req); err != nil {
		return dispatch.Result{}, err
	}
	if err := validation.Length("username", req.Username, 3, 50); err != nil {
		return dispatch.Result{}, err
	}
	if err := validation.Email(req.Email); err != nil {
		return dispatch.Result{}, err
	}
	if err := validation.Length("full_name", req.FullName, 2, 100); err != nil {
		return dispatch.Result{}, err
	}
	if err := validation.Password(req.Password); err != nil {
		return dispatch.Result{}, err
	}
	if req.Role != nil {
		if err := validation.Enum("role", *req.Role); err != nil {
			return dispatch.Result{}, err
		}
	}

	if err := canCreateUser(actor); err != nil {
		return dispatch.Result{}, err
	}

	if err := s.checkUnique(ctx, req.Username, req.Email, 0); err != nil {
		return dispatch.Result{}, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return dispatch.Result{}, err
	}

	u := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	if req.Role != nil {
		u.Role = entity.Role(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.Repo.Insert(ctx, u); err != nil {
		return dispatch.Result{}, mapDuplicate(err)
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user created")
	return dispatch.Result{Data: userPayload(u), Message: "User created successfully"}, nil
}

func (s *UserService) Edit(ctx context.Context, actor entity.Actor, p dispatch.Payload) (dispatch.Result, error) {
	if err := validation.RequireFields(p, "id"); err != nil {
		return dispatch.Result{}, err
	}
	if err := validation.RequireUpdatable(p, userUpdatableFields...); err != nil {
		return dispatch.Result{}, err
	}
	var req userEditRequest
	if err := p.Decode(&req); err != nil {
		return dispatch.Result{}, err
	}
	if req.Username != nil {
		if err := validation.Length("username", *req.Username, 3, 50); err != nil {
			return dispatch.Result{}, err
		}
	}
	if req.Email != nil {
		if err := validation.Email(*req.Email); err != nil {
			return dispatch.Result{}, err
		}
	}
	if req.FullName != nil {
		if err := validation.Length("full_name", *req.FullName, 2, 100); err != nil {
			return dispatch.Result{}, err
		}
	}
	if req.Password != nil {
		if err := validation.Password(*req.Password); err != nil {
			return dispatch.Result{}, err
		}
	}
	if req.Role != nil {
		if err := validation.Enum("role", *req.Role); err != nil {
			return dispatch.Result{}, err
		}
	}

	u, err := s.Repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dispatch.Result{}, apperr.Business("User not found")
		}
		return dispatch.Result{}, err
	}

	if err := canEditUser(actor, u); err != nil {
		return dispatch.Result{}, err
	}

	newUsername, newEmail := u.Username, u.Email
	if req.Username != nil {
		newUsername = *req.Username
	}
	if req.Email != nil {
		newEmail = *req.Email
	}
	if newUsername != u.Username || newEmail != u.Email {
		if err := s.checkUnique(ctx, newUsername, newEmail, u.ID); err != nil {
			return dispatch.Result{}, err
		}
	}

	u.Username = newUsername
	u.Email = newEmail
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := s.Hasher.Hash(*req.Password)
		if err != nil {
			return dispatch.Result{}, err
		}
		u.PasswordHash = hash
	}
	if req.Role != nil {
		u.Role = entity.Role(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return dispatch.Result{}, mapDuplicate(err)
	}

	s.Logger.WithField("user_id", u.ID).Info("user updated")
	return dispatch.Result{Data: userPayload(u), Message: "User updated successfully"}, nil
}

func (s *UserService) View(ctx context.Context, actor entity.Actor, p dispatch.Payload) (dispatch.Result, error) {
	var req userViewRequest
	if err := p.Decode(&req); err != nil {
		return dispatch.Result{}, err
	}

	switch {
	case req.ID != nil:
		u, err := s.Repo.GetByID(ctx, *req.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return dispatch.Result{}, apperr.Business("User not found")
			}
			return dispatch.Result{}, err
		}
		if err := canViewUser(actor, u); err != nil {
			return dispatch.Result{}, err
		}
		return dispatch.Result{Data: userPayload(u), Message: "User retrieved successfully"}, nil

	case req.Username != nil:
		u, err := s.Repo.GetByUsername(ctx, *req.Username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return dispatch.Result{}, apperr.Business("User not found")
			}
			return dispatch.Result{}, err
		}
		if err := canViewUser(actor, u); err != nil {
			return dispatch.Result{}, err
		}
		return dispatch.Result{Data: userPayload(u), Message: "User retrieved successfully"}, nil

	default:
		if err := canListUsers(actor); err != nil {
			return dispatch.Result{}, err
		}
		page, size := 1, pagination.DefaultSize
		if req.Page != nil {
			page = *req.Page
		}
		if req.Size != nil {
			size = *req.Size
		}
		page, size, skip := pagination.Normalize(page, size)

		users, total, err := s.Repo.List(ctx, skip, size)
		if err != nil {
			return dispatch.Result{}, err
		}
		list := make([]map[string]any, 0, len(users))
		for i := range users {
			list = append(list, userPayload(&users[i]))
		}
		data := map[string]any{
			"users":      list,
			"pagination": pagination.Page{Page: page, Size: size, Total: total},
		}
		return dispatch.Result{Data: data, Message: "Users retrieved successfully"}, nil
	}
}

// checkUnique rejects usernames and emails already taken by someone
// other than selfID.
func (s *UserService) checkUnique(ctx context.Context, username, email string, selfID int64) error {
	existing, err := s.Repo.GetByUsername(ctx, username)
	if err == nil && existing.ID != selfID {
		return apperr.Business("Username already exists")
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	existing, err = s.Repo.GetByEmail(ctx, email)
	if err == nil && existing.ID != selfID {
		return apperr.Business("Email already exists")
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// mapDuplicate covers the race where a concurrent write claims a
// username or email between the pre-check and the insert.
func mapDuplicate(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return apperr.Business("Username already exists")
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperr.Business("Email already exists")
	}
	return err
}
