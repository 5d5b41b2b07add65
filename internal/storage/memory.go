package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/smartdetector/moderation/internal/models"
)

// MemoryStorage is the in-memory implementation used for development and
// tests, selected by database.use_in_memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	friends map[string][]string
	posts   map[string]*models.ContentItem
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:   make(map[string]*models.User),
		friends: make(map[string][]string),
		posts:   make(map[string]*models.ContentItem),
	}
}

func (s *MemoryStorage) CreatePost(post *models.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; exists {
		return fmt.Errorf("post already exists: %s", post.ID)
	}
	stored := *post
	s.posts[post.ID] = &stored
	return nil
}

func (s *MemoryStorage) GetPost(id string) (*models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, nil
	}
	copied := *post
	copied.Comments = append([]*models.ContentItem{}, post.Comments...)
	return &copied, nil
}

func (s *MemoryStorage) AddComment(comment *models.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[comment.ParentPostID]
	if !exists {
		return fmt.Errorf("post not found: %s", comment.ParentPostID)
	}
	stored := *comment
	post.Comments = append(post.Comments, &stored)
	return nil
}

func (s *MemoryStorage) SaveUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *MemoryStorage) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, exists := s.users[id]; exists {
		copied := *user
		return &copied, nil
	}
	return nil, fmt.Errorf("user not found: %s", id)
}

func (s *MemoryStorage) AddFriend(ownerID, friendID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.friends[ownerID] {
		if existing == friendID {
			return nil
		}
	}
	s.friends[ownerID] = append(s.friends[ownerID], friendID)
	return nil
}

func (s *MemoryStorage) FriendsOf(userID string) ([]models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friends := []models.Friend{}
	for _, friendID := range s.friends[userID] {
		user, exists := s.users[friendID]
		if !exists {
			continue
		}
		friends = append(friends, models.Friend{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			ImagePath: user.ImagePath,
		})
	}

	sort.Slice(friends, func(i, j int) bool { return friends[i].Name < friends[j].Name })
	return friends, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
