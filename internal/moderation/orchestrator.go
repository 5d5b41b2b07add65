package moderation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/smartdetector/moderation/internal/alert"
	"github.com/smartdetector/moderation/internal/classifier"
	"github.com/smartdetector/moderation/internal/models"
	"github.com/smartdetector/moderation/internal/notify"
	"github.com/smartdetector/moderation/internal/risk"
)

// FriendReader is the read-only view of the friend graph: a user's outgoing
// edges with contact details. No friends and unknown users both come back as
// an empty slice.
type FriendReader interface {
	FriendsOf(userID string) ([]models.Friend, error)
}

// ProfileReader resolves a user's display profile for message composition.
type ProfileReader interface {
	GetUser(id string) (*models.User, error)
}

// DeliveryResult records the outcome of one (friend, alert) pair of a
// fan-out. Err is nil when the alert was handed to the channel successfully.
type DeliveryResult struct {
	Friend models.Friend
	Err    error
}

// Orchestrator runs the moderation pipeline on every new post or comment:
// classify the text, stamp the risk verdict on the item, and when flagged,
// alert every friend of the item's author. It never returns an error to the
// content-creation caller; every failure inside the pipeline degrades to a
// logged no-op.
type Orchestrator struct {
	classifier classifier.Classifier
	friends    FriendReader
	profiles   ProfileReader
	composer   *alert.Composer
	notifier   notify.Notifier
	logger     *zap.Logger
}

func New(clf classifier.Classifier, friends FriendReader, profiles ProfileReader, composer *alert.Composer, notifier notify.Notifier, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		classifier: clf,
		friends:    friends,
		profiles:   profiles,
		composer:   composer,
		notifier:   notifier,
		logger:     logger,
	}
}

// ModeratePost classifies a post on its title and body fragments, annotates
// it, and fans alerts out to the author's friends when it is flagged. The
// post must not yet be persisted; the caller persists the annotated item.
func (o *Orchestrator) ModeratePost(ctx context.Context, post *models.ContentItem) []DeliveryResult {
	o.annotate(ctx, post, gatherFragments(post.Title, post.Text))
	if !post.RiskFlag {
		return nil
	}

	return o.fanOut(ctx, post.AuthorID, func(author string, friend models.Friend) (models.AlertMessage, error) {
		return o.composer.ComposePostAlert(alert.PostAlert{
			AuthorName:     author,
			RecipientName:  friend.Name,
			RecipientEmail: friend.Email,
			PostTitle:      post.Title,
			PostContent:    post.Text,
			PostID:         post.ID,
			PostImagePath:  post.MediaPath,
		})
	})
}

// ModerateComment classifies a comment on its own text, independently of the
// parent post. Alerts link back to the parent post and carry its image, but
// the audience is the commenter's friend graph (the comment's author, see
// DESIGN.md on the audience decision).
func (o *Orchestrator) ModerateComment(ctx context.Context, comment *models.ContentItem, postImagePath string) []DeliveryResult {
	o.annotate(ctx, comment, gatherFragments(comment.Text))
	if !comment.RiskFlag {
		return nil
	}

	return o.fanOut(ctx, comment.AuthorID, func(author string, friend models.Friend) (models.AlertMessage, error) {
		return o.composer.ComposeCommentAlert(alert.CommentAlert{
			AuthorName:     author,
			RecipientName:  friend.Name,
			RecipientEmail: friend.Email,
			CommentText:    comment.Text,
			PostID:         comment.ParentPostID,
			PostImagePath:  postImagePath,
		})
	})
}

// annotate runs the classifier over the fragments and stamps the verdict on
// the item. An empty fragment list skips the classifier entirely; a
// classifier failure is logged and leaves the item not-at-risk
// (degrade-to-safe: unavailability never blocks publishing).
func (o *Orchestrator) annotate(ctx context.Context, item *models.ContentItem, fragments []string) {
	if len(fragments) == 0 {
		return
	}

	labels, err := o.classifier.Classify(ctx, fragments)
	if err != nil {
		o.logger.Error("classification failed, treating content as not at risk",
			zap.String("content_id", item.ID),
			zap.String("kind", string(item.Kind)),
			zap.Error(err))
		return
	}

	risk.Annotate(item, labels)
	if item.RiskFlag {
		o.logger.Warn("content flagged as at risk",
			zap.String("content_id", item.ID),
			zap.String("kind", string(item.Kind)),
			zap.String("author_id", item.AuthorID))
	}
}

// fanOut alerts every friend of the author who has an email address. Each
// (friend, alert) pair is independent: one failed composition or delivery is
// logged and recorded, and the remaining friends are still attempted.
func (o *Orchestrator) fanOut(ctx context.Context, authorID string, compose func(authorName string, friend models.Friend) (models.AlertMessage, error)) []DeliveryResult {
	friends, err := o.friends.FriendsOf(authorID)
	if err != nil {
		o.logger.Error("friend lookup failed, skipping alert fan-out",
			zap.String("author_id", authorID),
			zap.Error(err))
		return nil
	}
	if len(friends) == 0 {
		return nil
	}

	author, err := o.profiles.GetUser(authorID)
	if err != nil {
		o.logger.Error("author profile lookup failed, skipping alert fan-out",
			zap.String("author_id", authorID),
			zap.Error(err))
		return nil
	}

	results := make([]DeliveryResult, 0, len(friends))
	for _, friend := range friends {
		if friend.Email == "" {
			continue
		}

		msg, err := compose(author.Name, friend)
		if err == nil {
			err = o.notifier.Notify(ctx, msg)
		}
		if err != nil {
			o.logger.Error("failed to alert friend",
				zap.String("author_id", authorID),
				zap.String("friend_id", friend.ID),
				zap.Error(err))
		}
		results = append(results, DeliveryResult{Friend: friend, Err: err})
	}

	return results
}

// gatherFragments keeps the non-empty text fragments, preserving order so
// classifier labels align with them.
func gatherFragments(parts ...string) []string {
	fragments := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			fragments = append(fragments, part)
		}
	}
	return fragments
}
