package models

import "time"

type ContentKind string

const (
	PostContent    ContentKind = "post"
	CommentContent ContentKind = "comment"
)

// ContentItem is the unit of text subject to risk classification: a post or
// a comment. The moderation pipeline only ever mutates the Risk* fields, once,
// synchronously with creation. RiskDetectedAt is set iff RiskFlag is true.
type ContentItem struct {
	ID             string         `json:"id"`
	AuthorID       string         `json:"author_id"`
	Kind           ContentKind    `json:"kind"`
	Title          string         `json:"title,omitempty"`
	Text           string         `json:"text"`
	ParentPostID   string         `json:"parent_post_id,omitempty"`
	MediaPath      string         `json:"media_path,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	RiskFlag       bool           `json:"risk_flag"`
	RiskScore      int            `json:"risk_score"`
	RiskDetectedAt *time.Time     `json:"risk_detected_at,omitempty"`
	Comments       []*ContentItem `json:"comments,omitempty"`
}

// User is the profile record backing both authors and alert recipients.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Friend is the read model of one outgoing friend edge joined with the
// friend's profile, as returned by the friend graph reader.
type Friend struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImagePath string `json:"image_path,omitempty"`
}

// Attachment describes an image shipped with an alert. Filename doubles as
// the Content-ID referenced by the HTML body.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// AlertMessage is one composed notification for one recipient. It is built,
// handed to a notifier and discarded; it is never persisted.
type AlertMessage struct {
	RecipientEmail string      `json:"recipient_email"`
	Subject        string      `json:"subject"`
	TextBody       string      `json:"text_body"`
	HTMLBody       string      `json:"html_body"`
	Attachment     *Attachment `json:"attachment,omitempty"`
}
