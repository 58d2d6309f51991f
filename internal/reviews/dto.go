package reviews

import (
	"time"
)

// ReviewDTO is the storefront view of a review with its reaction tallies.
type ReviewDTO struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	Author         string    `json:"author"`
	Rating         int       `json:"rating"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Upvotes        int       `json:"upvotes"`
	Downvotes      int       `json:"downvotes"`
	ViewerReaction string    `json:"viewer_reaction,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateReviewInput carries a new review submission.
type CreateReviewInput struct {
	ProductID int64
	Rating    int
	Title     string
	Content   string
}
