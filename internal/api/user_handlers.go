package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/calsync/calsync-server/internal/domain"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create user",
		Description:   "Creates a user that can own a holiday calendar",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all users",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}",
		Summary:     "Get user",
		Description: "Returns a user by ID",
		Tags:        []string{"Users"},
	}, s.handleGetUser)
}

// === DTOs ===

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name" minLength:"1" maxLength:"200" doc:"Display name"`
	Email string `json:"email" format:"email" maxLength:"320" doc:"Email address, unique ignoring case"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body *domain.User
}

// ListUsersResponse contains a list of users.
type ListUsersResponse struct {
	Users []*domain.User `json:"users" doc:"All users in creation order"`
}

// ListUsersOutput wraps the list users response for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// UserPathInput identifies a user in the URL.
type UserPathInput struct {
	UserID int64 `path:"userId" minimum:"1" doc:"User ID"`
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	user, err := s.services.User.CreateUser(ctx, domain.NewUser{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &ListUsersOutput{Body: ListUsersResponse{Users: users}}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserPathInput) (*UserOutput, error) {
	user, err := s.services.User.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}
