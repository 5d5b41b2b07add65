package storage

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/smartdetector/moderation/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}
	logger.Info("database schema initialized", zap.String("dbname", config.DBName))

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) CreatePost(post *models.ContentItem) error {
	query := `
		INSERT INTO posts (id, author_id, title, content, image_path, risk_flag, risk_score, risk_detected_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.Exec(
		query,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Text,
		post.MediaPath,
		post.RiskFlag,
		post.RiskScore,
		post.RiskDetectedAt,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating post: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetPost(id string) (*models.ContentItem, error) {
	query := `
		SELECT id, author_id, title, content, image_path, risk_flag, risk_score, risk_detected_at, created_at
		FROM posts
		WHERE id = $1`

	post := &models.ContentItem{Kind: models.PostContent}
	err := s.db.QueryRow(query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Text,
		&post.MediaPath,
		&post.RiskFlag,
		&post.RiskScore,
		&post.RiskDetectedAt,
		&post.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying post: %v", err)
	}

	comments, err := s.commentsByPostID(id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	return post, nil
}

func (s *PostgresStorage) commentsByPostID(postID string) ([]*models.ContentItem, error) {
	query := `
		SELECT id, post_id, author_id, content, risk_flag, risk_score, risk_detected_at, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at`

	rows, err := s.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %v", err)
	}
	defer rows.Close()

	var comments []*models.ContentItem
	for rows.Next() {
		comment := &models.ContentItem{Kind: models.CommentContent}
		err := rows.Scan(
			&comment.ID,
			&comment.ParentPostID,
			&comment.AuthorID,
			&comment.Text,
			&comment.RiskFlag,
			&comment.RiskScore,
			&comment.RiskDetectedAt,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment: %v", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func (s *PostgresStorage) AddComment(comment *models.ContentItem) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content, risk_flag, risk_score, risk_detected_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.Exec(
		query,
		comment.ID,
		comment.ParentPostID,
		comment.AuthorID,
		comment.Text,
		comment.RiskFlag,
		comment.RiskScore,
		comment.RiskDetectedAt,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating comment: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveUser(user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = $2, email = $3, image_path = $4`

	_, err := s.db.Exec(query, user.ID, user.Name, user.Email, user.ImagePath, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving user: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetUser(id string) (*models.User, error) {
	query := `
		SELECT id, name, email, image_path, created_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := s.db.QueryRow(query, id).Scan(&user.ID, &user.Name, &user.Email, &user.ImagePath, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %v", err)
	}

	return user, nil
}

func (s *PostgresStorage) AddFriend(ownerID, friendID string) error {
	query := `
		INSERT INTO friends (owner_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	_, err := s.db.Exec(query, ownerID, friendID)
	if err != nil {
		return fmt.Errorf("error adding friend: %v", err)
	}

	return nil
}

func (s *PostgresStorage) FriendsOf(userID string) ([]models.Friend, error) {
	query := `
		SELECT u.id, u.name, u.email, u.image_path
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.owner_id = $1
		ORDER BY u.name`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying friends: %v", err)
	}
	defer rows.Close()

	friends := []models.Friend{}
	for rows.Next() {
		var friend models.Friend
		if err := rows.Scan(&friend.ID, &friend.Name, &friend.Email, &friend.ImagePath); err != nil {
			return nil, fmt.Errorf("error scanning friend: %v", err)
		}
		friends = append(friends, friend)
	}

	return friends, rows.Err()
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
