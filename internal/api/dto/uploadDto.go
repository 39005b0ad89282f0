package dto

type UploadResponse struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	PostID *string `json:"post_id,omitempty"`
}
