package dto

type UpvoteToggleRequest struct {
	AnonID string `json:"anon_id"`
}

// UpvoteToggleResponse distinguishes which branch the toggle took.
type UpvoteToggleResponse struct {
	PostID string `json:"post_id"`
	Added  bool   `json:"added"`
	Total  int64  `json:"total"`
}

type UpvoteStatusResponse struct {
	PostID     string `json:"post_id"`
	Total      int64  `json:"total"`
	HasUpvoted bool   `json:"has_upvoted"`
}
