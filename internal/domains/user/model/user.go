package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User is the authenticated principal of the system.
// FavoriteGenre is only used as a personalization key (recommendations).
// Friends holds references to other User documents.
type User struct {
	ID            string   `json:"id" bson:"_id"`
	Username      string   `json:"username" bson:"username"`
	FavoriteGenre string   `json:"favoriteGenre" bson:"favorite_genre"`
	Friends       []string `json:"friends,omitempty" bson:"friends,omitempty"`
}

const MinUsernameLength = 3

// CreateUserRequest - POST /v1/users
type CreateUserRequest struct {
	Username      string `json:"username"`
	FavoriteGenre string `json:"favoriteGenre"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(MinUsernameLength, 0)),
		validation.Field(&r.FavoriteGenre, validation.Required),
	)
}

// LoginRequest - POST /v1/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the signed bearer credential
type LoginResponse struct {
	Value string `json:"value"`
}

// UserResponse - identity view with the friends relation resolved
// to usernames
type UserResponse struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	FavoriteGenre string   `json:"favoriteGenre"`
	Friends       []string `json:"friends"`
}

// ToResponse converts User to UserResponse with resolved friend names
func (u *User) ToResponse(friendNames []string) *UserResponse {
	if friendNames == nil {
		friendNames = []string{}
	}
	return &UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		FavoriteGenre: u.FavoriteGenre,
		Friends:       friendNames,
	}
}
