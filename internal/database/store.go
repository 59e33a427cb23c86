package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"roomboard/backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// MaxRoomMessages caps a single room listing.
	MaxRoomMessages = 200
	// MaxBoardPosts caps the message board listing.
	MaxBoardPosts = 300
)

var seedRooms = []string{"Sunset Cafe", "Soft Studio", "Cozy Pets", "Cloud Diary"}

var seedMessages = []struct {
	author string
	body   string
}{
	{"A", "Good morning! I brought the fluffy stickers today."},
	{"ME", "Yay! Drop them here and I will pin them to the top."},
	{"N", "Tea of the day: peach milk. It is super sweet."},
}

// Options configures a Store.
type Options struct {
	// MessageTTL is the retention window for messages and, with RoomExpiry, rooms.
	MessageTTL time.Duration
	// RoomExpiry makes rooms expire MessageTTL after creation.
	RoomExpiry bool
	// Seed inserts the starter rooms when the rooms table is empty.
	Seed bool
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Store is the data-access layer for rooms, messages, feedback and board posts.
// It is safe for concurrent use.
type Store struct {
	db         *gorm.DB
	ttl        time.Duration
	roomExpiry bool
	seed       bool
	now        func() time.Time

	schemaMu    sync.Mutex
	schemaReady atomic.Bool
	migrate     func(ctx context.Context) error
}

// NewStore wraps db. The schema is created on the first EnsureSchema call.
func NewStore(db *gorm.DB, opts Options) *Store {
	if opts.MessageTTL <= 0 {
		opts.MessageTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		db:         db,
		ttl:        opts.MessageTTL,
		roomExpiry: opts.RoomExpiry,
		seed:       opts.Seed,
		now:        opts.Now,
	}
	s.migrate = s.autoMigrate
	return s
}

// TTL returns the retention window.
func (s *Store) TTL() time.Duration { return s.ttl }

func (s *Store) nowMillis() int64 { return s.now().UnixMilli() }

// EnsureSchema creates the tables and indexes once per Store.
// A failed attempt is not remembered, so the next call tries again.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.schemaReady.Load() {
		return nil
	}
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady.Load() {
		return nil
	}

	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	s.schemaReady.Store(true)
	logrus.Info("Database schema ready")
	return nil
}

func (s *Store) autoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Room{},
		&models.Message{},
		&models.FeedbackMessage{},
		&models.BoardPost{},
	)
}

// SeedIfEmpty inserts the starter rooms and three example messages into the
// first of them, but only while the rooms table is empty. Two processes
// starting at the same time may both seed.
func (s *Store) SeedIfEmpty(ctx context.Context) error {
	if !s.seed {
		return nil
	}
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.nowMillis()
	var firstRoomID int64
	for i, name := range seedRooms {
		room := models.Room{Name: name, CreatedAt: now}
		if err := db.Create(&room).Error; err != nil {
			return fmt.Errorf("failed to seed room %q: %w", name, err)
		}
		if i == 0 {
			firstRoomID = room.ID
		}
	}
	for _, m := range seedMessages {
		if err := s.AddMessage(ctx, firstRoomID, m.author, m.body); err != nil {
			return fmt.Errorf("failed to seed messages: %w", err)
		}
	}

	logrus.WithField("rooms", len(seedRooms)).Info("Seeded starter rooms")
	return nil
}

// CleanupExpired deletes messages whose expiry has passed and, when room
// expiry is enabled, rooms older than the retention window together with
// their messages. Both deletes share one transaction.
func (s *Store) CleanupExpired(ctx context.Context) error {
	now := s.nowMillis()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expires_at <= ?", now).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete expired messages: %w", err)
		}
		if !s.roomExpiry {
			return nil
		}

		cutoff := now - s.ttl.Milliseconds()
		expiredRooms := tx.Model(&models.Room{}).Select("id").Where("created_at <= ?", cutoff)
		if err := tx.Where("room_id IN (?)", expiredRooms).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages of expired rooms: %w", err)
		}
		if err := tx.Where("created_at <= ?", cutoff).Delete(&models.Room{}).Error; err != nil {
			return fmt.Errorf("failed to delete expired rooms: %w", err)
		}
		return nil
	})
}

// RoomSummary is a room as shown in the room list.
type RoomSummary struct {
	ID             int64
	Name           string
	ActiveMessages int64
	NextExpireAt   int64
	NextExpiresIn  string
	HasPassword    bool
}

type roomRow struct {
	ID             int64
	Name           string
	CreatedAt      int64
	PasswordHash   string
	ActiveMessages int64
	NextExpireAt   *int64
}

// ListRooms returns every room ordered by id with its active message count
// and the time until it next loses content.
func (s *Store) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	now := s.nowMillis()

	var rows []roomRow
	err := s.db.WithContext(ctx).
		Table("rooms AS r").
		Select(`r.id, r.name, r.created_at, r.password_hash,
			(SELECT COUNT(*) FROM messages m WHERE m.room_id = r.id AND m.expires_at > ?) AS active_messages,
			(SELECT MIN(m.expires_at) FROM messages m WHERE m.room_id = r.id AND m.expires_at > ?) AS next_expire_at`,
			now, now).
		Order("r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	ttl := s.ttl.Milliseconds()
	rooms := make([]RoomSummary, 0, len(rows))
	for _, row := range rows {
		next := now + ttl
		if s.roomExpiry {
			next = row.CreatedAt + ttl
		} else if row.NextExpireAt != nil && *row.NextExpireAt > 0 {
			next = *row.NextExpireAt
		}
		hours := max(0, next-now) / time.Hour.Milliseconds()

		rooms = append(rooms, RoomSummary{
			ID:             row.ID,
			Name:           row.Name,
			ActiveMessages: row.ActiveMessages,
			NextExpireAt:   next,
			NextExpiresIn:  fmt.Sprintf("%dh", hours),
			HasPassword:    row.PasswordHash != "",
		})
	}
	return rooms, nil
}

// AddRoom creates a room and returns its id. An empty passwordHash leaves the room open.
func (s *Store) AddRoom(ctx context.Context, name, passwordHash string) (int64, error) {
	room := models.Room{
		Name:         name,
		CreatedAt:    s.nowMillis(),
		PasswordHash: passwordHash,
	}
	if err := s.db.WithContext(ctx).Create(&room).Error; err != nil {
		return 0, fmt.Errorf("failed to create room: %w", err)
	}
	return room.ID, nil
}

// GetRoomPasswordHash returns the stored hash of a room, "" when unprotected.
func (s *Store) GetRoomPasswordHash(ctx context.Context, roomID int64) (string, error) {
	var room models.Room
	err := s.db.WithContext(ctx).Select("id", "password_hash").First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrRoomNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	return room.PasswordHash, nil
}

// ListMessages returns the unexpired messages of a room, oldest first.
func (s *Store) ListMessages(ctx context.Context, roomID int64) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND expires_at > ?", roomID, s.nowMillis()).
		Order("created_at ASC").
		Order("id ASC").
		Limit(MaxRoomMessages).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// AddMessage stores a message that expires one retention window from now.
func (s *Store) AddMessage(ctx context.Context, roomID int64, author, body string) error {
	now := s.nowMillis()
	message := models.Message{
		RoomID:    roomID,
		Author:    author,
		Body:      body,
		CreatedAt: now,
		ExpiresAt: now + s.ttl.Milliseconds(),
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// AddFeedback appends a feedback entry.
func (s *Store) AddFeedback(ctx context.Context, nickname, email, opinion string) error {
	feedback := models.FeedbackMessage{
		Nickname:  nickname,
		Email:     email,
		Opinion:   opinion,
		CreatedAt: s.nowMillis(),
	}
	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// ListBoardPosts returns the newest board posts first.
func (s *Store) ListBoardPosts(ctx context.Context) ([]models.BoardPost, error) {
	var posts []models.BoardPost
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(MaxBoardPosts).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list board posts: %w", err)
	}
	return posts, nil
}

// AddBoardPost appends a board post.
func (s *Store) AddBoardPost(ctx context.Context, nickname, body string) error {
	post := models.BoardPost{
		Nickname:  nickname,
		Body:      body,
		CreatedAt: s.nowMillis(),
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return fmt.Errorf("failed to create board post: %w", err)
	}
	return nil
}
