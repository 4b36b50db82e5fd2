package dto

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Body        string   `json:"body" binding:"required,max=5000"`
	Tags        []string `json:"tags"`
	IsPolitical bool     `json:"is_political"`
}

// ReactionRequest is the body of POST /posts/:id/reactions.
type ReactionRequest struct {
	Kind string `json:"kind" binding:"required" example:"like"`
}
