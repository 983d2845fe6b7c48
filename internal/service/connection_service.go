package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/repository"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/shared/redis"
)

var (
	ErrSelfConnection = errors.New("cannot connect to yourself")
	ErrNotConnected   = errors.New("users are not connected")
)

const suggestionCacheTTL = 5 * time.Minute

// ConnectionService manages the mutual connection graph between
// members. Suggestion listings are cached briefly in Redis since they
// are recomputed on every dashboard load otherwise.
type ConnectionService struct {
	users repository.UserRepository
	cache *redis.Client
}

func NewConnectionService(users repository.UserRepository, cache *redis.Client) *ConnectionService {
	return &ConnectionService{users: users, cache: cache}
}

// Connect links two members in both directions.
func (s *ConnectionService) Connect(userID, otherID uint) error {
	if userID == otherID {
		return ErrSelfConnection
	}
	exists, err := s.users.Exists(otherID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	if err := s.users.AddConnection(userID, otherID); err != nil {
		return err
	}
	s.invalidateSuggestions(userID)
	s.invalidateSuggestions(otherID)
	return nil
}

// Disconnect removes the link from both sides.
func (s *ConnectionService) Disconnect(userID, otherID uint) error {
	connections, err := s.users.ListConnections(userID)
	if err != nil {
		return err
	}
	connected := false
	for _, c := range connections {
		if c.ID == otherID {
			connected = true
			break
		}
	}
	if !connected {
		return ErrNotConnected
	}
	if err := s.users.RemoveConnection(userID, otherID); err != nil {
		return err
	}
	s.invalidateSuggestions(userID)
	s.invalidateSuggestions(otherID)
	return nil
}

// List returns the member's current connections.
func (s *ConnectionService) List(userID uint) ([]models.User, error) {
	return s.users.ListConnections(userID)
}

// IsConnected reports whether two members are linked.
func (s *ConnectionService) IsConnected(userID, otherID uint) (bool, error) {
	connections, err := s.users.ListConnections(userID)
	if err != nil {
		return false, err
	}
	for _, c := range connections {
		if c.ID == otherID {
			return true, nil
		}
	}
	return false, nil
}

// Suggestions lists members not yet connected to the user, served from
// cache when fresh.
func (s *ConnectionService) Suggestions(userID uint, limit int) ([]models.User, error) {
	cacheKey := fmt.Sprintf("suggestions:%d", userID)
	if s.cache != nil {
		if cached, err := s.cache.Get(cacheKey); err == nil && cached != "" {
			var users []models.User
			if err := json.Unmarshal([]byte(cached), &users); err == nil {
				return users, nil
			}
		}
	}

	users, err := s.users.ListSuggestions(userID, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(users); err == nil {
			_ = s.cache.Set(cacheKey, data, suggestionCacheTTL)
		}
	}
	return users, nil
}

func (s *ConnectionService) invalidateSuggestions(userID uint) {
	if s.cache != nil {
		_ = s.cache.Del(fmt.Sprintf("suggestions:%d", userID))
	}
}
