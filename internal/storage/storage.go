package storage

import "github.com/smartdetector/moderation/internal/models"

// Storage persists users, friend edges, posts and their comments. Friend
// edges are read-only to the moderation pipeline; SaveUser/AddFriend exist
// for the friend-management collaborator and for seeding.
type Storage interface {
	CreatePost(post *models.ContentItem) error
	GetPost(id string) (*models.ContentItem, error)
	AddComment(comment *models.ContentItem) error

	SaveUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	AddFriend(ownerID, friendID string) error

	// FriendsOf returns the user's outgoing friend edges joined with each
	// friend's profile. Unknown users and friendless users both yield an
	// empty slice, never an error.
	FriendsOf(userID string) ([]models.Friend, error)

	Close() error
}
