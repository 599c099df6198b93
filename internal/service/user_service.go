package service

import (
	"context"
	"errors"
	"fmt"

	"oilbooking/internal/model"
	"oilbooking/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UserService defines the business logic for User management
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetUserByID(ctx context.Context, id string) (UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	DeactivateUser(ctx context.Context, id string) error
	ToggleUserActive(ctx context.Context, id string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, fmt.Errorf("a user with email %s already exists", req.Email)
	}

	user := &model.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, fmt.Errorf("invalid user id: %w", ErrNotFound)
	}

	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return UserResponse{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	return toUserResponse(user), nil
}

// ListUsers returns active users ordered by name, like the dashboard pickers expect
func (s *userService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	res := make([]UserResponse, 0, len(users))
	for i := range users {
		res = append(res, toUserResponse(&users[i]))
	}
	return res, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, fmt.Errorf("invalid user id: %w", ErrNotFound)
	}

	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return UserResponse{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	if req.Email != user.Email {
		if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing.ID != user.ID {
			return UserResponse{}, fmt.Errorf("a user with email %s already exists", req.Email)
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role

	if err := s.userRepo.Update(ctx, user); err != nil {
		return UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return toUserResponse(user), nil
}

// DeactivateUser soft-deletes by clearing the active flag; there is no hard delete
func (s *userService) DeactivateUser(ctx context.Context, id string) error {
	return s.setActive(ctx, id, func(current bool) bool { return false })
}

// ToggleUserActive flips the active flag
func (s *userService) ToggleUserActive(ctx context.Context, id string) error {
	return s.setActive(ctx, id, func(current bool) bool { return !current })
}

func (s *userService) setActive(ctx context.Context, id string, next func(bool) bool) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", ErrNotFound)
	}

	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	user.IsActive = next(user.IsActive)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
