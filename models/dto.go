package models

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateProfileRequest changes the caller's username or email. Empty fields
// are left as they are.
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token   string  `json:"token"`
	User    User    `json:"user"`
	Profile Profile `json:"profile"`
}

type AskQuestionRequest struct {
	Title string   `json:"title" validate:"required,max=255"`
	Text  string   `json:"text" validate:"required"`
	Tags  []string `json:"tags" validate:"dive,max=16"`
}

type AttachTagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1,dive,max=16"`
}

type CreateAnswerRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=16"`
}

// VoteRequest carries the polarity of a vote. A missing is_like counts as a
// like.
type VoteRequest struct {
	IsLike *bool `json:"is_like"`
}

func (r VoteRequest) Like() bool {
	return r.IsLike == nil || *r.IsLike
}

// RatingResponse is the body returned by vote endpoints.
type RatingResponse struct {
	Rating int `json:"rating"`
}

// ActionResponse is the body returned by the correctness toggle.
type ActionResponse struct {
	Action bool `json:"action"`
}
