package application

import (
	"context"
	"errors"

	"github.com/conduitapp/conduit-api/internal/domain/entity"
	"github.com/conduitapp/conduit-api/internal/domain/repository"
	"github.com/conduitapp/conduit-api/pkg/apperror"
	"github.com/conduitapp/conduit-api/pkg/helpers"
)

// UserService implements registration, authentication and account updates.
type UserService struct {
	users repository.UserRepository
	jwt   *helpers.JWTManager
}

func NewUserService(users repository.UserRepository, jwt *helpers.JWTManager) *UserService {
	return &UserService{users: users, jwt: jwt}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=1,max=50"`
	Password string `json:"password" binding:"required,pwd"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserInput carries only the fields the client sent; nil means keep.
type UpdateUserInput struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=1,max=50"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image" binding:"omitempty,url"`
}

func (s *UserService) userResponse(u *entity.User) (*UserResponse, error) {
	token, _, err := s.jwt.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{User: UserView{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}}, nil
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*UserResponse, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    in.Email,
		Username: in.Username,
		Password: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if d, ok := repository.AsDuplicate(err); ok {
			return nil, apperror.Conflict(d.Field, "already exists")
		}
		return nil, err
	}
	return s.userResponse(u)
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*UserResponse, error) {
	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, apperror.Unauthorized("user", "invalid credentials")
	}
	return s.userResponse(u)
}

// Current returns the authenticated user with a fresh token.
func (s *UserService) Current(ctx context.Context, userID string) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, err
	}
	return s.userResponse(u)
}

func (s *UserService) Update(ctx context.Context, userID string, in UpdateUserInput) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, err
	}

	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Bio != nil {
		u.Bio = in.Bio
	}
	if in.Image != nil {
		u.Image = in.Image
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		if d, ok := repository.AsDuplicate(err); ok {
			return nil, apperror.Conflict(d.Field, "already exists")
		}
		return nil, err
	}
	return s.userResponse(u)
}
