package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
)

type UserService struct {
	users *repository.Repository[models.User]
	jwt   *auth.JWTManager
}

func NewUserService(users *repository.Repository[models.User], jwt *auth.JWTManager) *UserService {
	return &UserService{users: users, jwt: jwt}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	v := &validator{}
	v.requireString("name", in.Name)
	v.requireString("email", in.Email)
	if err := auth.ValidatePassword(in.Password); err != nil {
		v.addError("password", err.Error())
	}
	if in.Role == "" {
		in.Role = models.RoleClient
	}
	if !models.ValidRole(in.Role) || in.Role == models.RoleAdmin {
		v.addError("role", "role must be creator or client")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if _, err := s.users.FindOne(ctx, bson.M{"email": in.Email}); err == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "email", Message: "a user with this email already exists"}}}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		Role:      in.Role,
		CreatedAt: time.Now(),
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, "", repository.ErrNotFound
	}
	if err := auth.CheckPassword(user.Password, password); err != nil {
		return nil, "", repository.ErrNotFound
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

type ProfileInput struct {
	Name      string   `json:"name"`
	Bio       string   `json:"bio"`
	Skills    []string `json:"skills"`
	AvatarURL string   `json:"avatarUrl"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in ProfileInput) (*models.User, error) {
	set := bson.M{
		"bio":       in.Bio,
		"skills":    in.Skills,
		"avatarUrl": in.AvatarURL,
	}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if err := s.users.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(user.Password, oldPassword); err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "oldPassword", Message: "old password is incorrect"}}}
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "newPassword", Message: err.Error()}}}
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, id, bson.M{"password": hashed})
}

func (s *UserService) List(ctx context.Context, page, limit int) ([]models.User, repository.Pagination, error) {
	return s.users.List(ctx, bson.M{}, page, limit)
}
