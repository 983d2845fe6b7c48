package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/repository"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/cache"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/jwt"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("role must be student or alumni")
	ErrEmptySearchQuery   = errors.New("search query must not be empty")
)

const (
	defaultDirectoryLimit = 20
	maxDirectoryLimit     = 50
)

// UserService handles accounts, profiles and the user directory used
// by the messaging core.
type UserService struct {
	repo       repository.UserRepository
	jwtService *jwt.Service
	names      *cache.Cache
}

func NewUserService(repo repository.UserRepository, jwtService *jwt.Service) *UserService {
	return &UserService{
		repo:       repo,
		jwtService: jwtService,
		names:      cache.NewCache(),
	}
}

// CreateUser registers a new member and returns a signed token.
func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, string, error) {
	if req.Role != "" && req.Role != "student" && req.Role != "alumni" {
		return nil, "", ErrInvalidRole
	}

	if existing, err := s.repo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, "", ErrUserAlreadyExists
	}

	user := models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		GraduationYear: req.GraduationYear,
	}

	if err := s.repo.Create(&user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// Login authenticates a user and returns a JWT token.
func (s *UserService) Login(req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.repo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the editable profile fields.
func (s *UserService) UpdateProfile(id uint, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Headline != "" {
		user.Headline = req.Headline
	}
	if req.About != "" {
		user.About = req.About
	}
	if req.Skills != "" {
		user.Skills = req.Skills
	}
	if req.GraduationYear != 0 {
		user.GraduationYear = req.GraduationYear
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	s.names.Delete("user-name:" + strconv.FormatUint(uint64(id), 10))
	return user, nil
}

// Search finds members whose name matches the query. The query must
// not be blank.
func (s *UserService) Search(query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearchQuery
	}
	if limit <= 0 || limit > maxDirectoryLimit {
		limit = defaultDirectoryLimit
	}
	return s.repo.SearchByName(query, limit)
}

// Recent lists the newest registered members.
func (s *UserService) Recent(limit int) ([]models.User, error) {
	if limit <= 0 || limit > maxDirectoryLimit {
		limit = defaultDirectoryLimit
	}
	return s.repo.ListRecent(limit)
}

// Exists reports whether the identifier belongs to a known member.
func (s *UserService) Exists(id uint) (bool, error) {
	return s.repo.Exists(id)
}

// DisplayName resolves an identifier to the member's name for message
// hydration. Names change rarely, so lookups go through a short-lived
// in-memory cache.
func (s *UserService) DisplayName(id uint) (string, error) {
	key := "user-name:" + strconv.FormatUint(uint64(id), 10)
	if cached, ok := s.names.Get(key); ok {
		if name, ok := cached.(string); ok {
			return name, nil
		}
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return "", err
	}
	s.names.Set(key, user.Name)
	return user.Name, nil
}
