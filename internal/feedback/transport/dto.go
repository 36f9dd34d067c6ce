package transport

import "time"

// SubmitFeedbackRequest is the request body for a customer's feedback answer.
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}

// FeedbackResponse is the feedback state for a job. Exists=false means no
// request was ever sent; Exists=true with Received=false means a request went
// out and is still unanswered.
type FeedbackResponse struct {
	JobID       string     `json:"jobId"`
	Exists      bool       `json:"exists"`
	Received    bool       `json:"received"`
	Rating      *int       `json:"rating,omitempty"`
	Comment     *string    `json:"comment,omitempty"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}
