package alert

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/smartdetector/moderation/internal/models"
)

const (
	SubjectPost    = "Concerning post from your friend"
	SubjectComment = "Concerning comment from your friend"
)

// PostAlert holds everything needed to compose one post alert for one friend.
type PostAlert struct {
	AuthorName     string
	RecipientName  string
	RecipientEmail string
	PostTitle      string
	PostContent    string
	PostID         string
	PostImagePath  string
}

// CommentAlert is the comment-variant counterpart of PostAlert.
type CommentAlert struct {
	AuthorName     string
	RecipientName  string
	RecipientEmail string
	CommentText    string
	PostID         string
	PostImagePath  string
}

// Composer renders alert messages from one shared HTML template with a
// post/comment variant switch. The risky text is reproduced verbatim
// (template-escaped) so the recipient sees exactly what triggered the alert.
type Composer struct {
	frontendURL string
	tmpl        *template.Template
}

func NewComposer(frontendURL string) *Composer {
	return &Composer{
		frontendURL: strings.TrimRight(frontendURL, "/"),
		tmpl:        template.Must(template.New("alert").Parse(alertTemplate)),
	}
}

type templateData struct {
	IsPost        bool
	Heading       string
	RecipientName string
	AuthorName    string
	PostTitle     string
	Body          string
	ImageFilename string
	ViewURL       string
}

func (c *Composer) ComposePostAlert(a PostAlert) (models.AlertMessage, error) {
	return c.compose(a.RecipientEmail, SubjectPost, a.PostImagePath, templateData{
		IsPost:        true,
		Heading:       "Concerning Post Alert",
		RecipientName: a.RecipientName,
		AuthorName:    a.AuthorName,
		PostTitle:     a.PostTitle,
		Body:          a.PostContent,
		ViewURL:       c.viewURL(a.PostID),
	})
}

func (c *Composer) ComposeCommentAlert(a CommentAlert) (models.AlertMessage, error) {
	return c.compose(a.RecipientEmail, SubjectComment, a.PostImagePath, templateData{
		Heading:       "Concerning Comment Alert",
		RecipientName: a.RecipientName,
		AuthorName:    a.AuthorName,
		Body:          a.CommentText,
		ViewURL:       c.viewURL(a.PostID),
	})
}

func (c *Composer) compose(recipientEmail, subject, imagePath string, data templateData) (models.AlertMessage, error) {
	var attachment *models.Attachment
	if imagePath != "" {
		filename := ImageFilename(imagePath)
		data.ImageFilename = filename
		attachment = &models.Attachment{Filename: filename, Path: imagePath}
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return models.AlertMessage{}, fmt.Errorf("error rendering alert template: %v", err)
	}

	return models.AlertMessage{
		RecipientEmail: recipientEmail,
		Subject:        subject,
		TextBody: fmt.Sprintf("Hello %s, your friend %s has shared content that may be concerning for their wellbeing. View it here: %s",
			data.RecipientName, data.AuthorName, data.ViewURL),
		HTMLBody:   buf.String(),
		Attachment: attachment,
	}, nil
}

func (c *Composer) viewURL(postID string) string {
	return fmt.Sprintf("%s?post=%s", c.frontendURL, postID)
}

// ImageFilename extracts the final path segment of an upload path, accepting
// both / and \ as separators so paths recorded on either platform resolve to
// the same Content-ID.
func ImageFilename(path string) string {
	if path == "" {
		return ""
	}
	normalized := strings.ReplaceAll(path, "\\", "/")
	name := normalized[strings.LastIndex(normalized, "/")+1:]
	if name == "" {
		return "post-image"
	}
	return name
}
