package service

import (
	"strings"
	"testing"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/models"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository with a symmetric
// connection graph, mirroring what the GORM join table gives us.
type fakeUserRepo struct {
	users       map[uint]*models.User
	connections map[uint]map[uint]bool
	nextID      uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[uint]*models.User),
		connections: make(map[uint]map[uint]bool),
		nextID:      1,
	}
}

func (r *fakeUserRepo) seed(name, email string) *models.User {
	hash, _ := models.HashPassword("password123")
	user := &models.User{ID: r.nextID, Name: name, Email: email, Password: hash, Role: "student"}
	r.users[user.ID] = user
	r.nextID++
	return user
}

func (r *fakeUserRepo) Create(user *models.User) error {
	// The GORM hook hashes on insert; the fake does the same.
	hash, err := models.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash
	if user.Role == "" {
		user.Role = "student"
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Exists(id uint) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) SearchByName(query string, limit int) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(query)) {
			out = append(out, *u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListRecent(limit int) ([]models.User, error) {
	var out []models.User
	// Seeded IDs ascend, so reverse order stands in for created_at DESC.
	for id := r.nextID; id > 0 && len(out) < limit; id-- {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListConnections(userID uint) ([]models.User, error) {
	var out []models.User
	for otherID := range r.connections[userID] {
		if u, ok := r.users[otherID]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AddConnection(userID, otherID uint) error {
	r.link(userID, otherID)
	r.link(otherID, userID)
	return nil
}

func (r *fakeUserRepo) RemoveConnection(userID, otherID uint) error {
	delete(r.connections[userID], otherID)
	delete(r.connections[otherID], userID)
	return nil
}

func (r *fakeUserRepo) ListSuggestions(userID uint, limit int) ([]models.User, error) {
	var out []models.User
	for id, u := range r.users {
		if id == userID || r.connections[userID][id] {
			continue
		}
		out = append(out, *u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeUserRepo) link(a, b uint) {
	if r.connections[a] == nil {
		r.connections[a] = make(map[uint]bool)
	}
	r.connections[a][b] = true
}

func newTestUserService() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, jwt.NewService("test-secret", time.Hour)), repo
}

func TestCreateUserIssuesToken(t *testing.T) {
	svc, _ := newTestUserService()

	user, token, err := svc.CreateUser(&models.CreateUserRequest{
		Name:     "Asha",
		Email:    "asha@example.edu",
		Password: "password123",
		Role:     "alumni",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "alumni", user.Role)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, repo := newTestUserService()
	repo.seed("Asha", "asha@example.edu")

	_, _, err := svc.CreateUser(&models.CreateUserRequest{
		Name:     "Other",
		Email:    "asha@example.edu",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestUserService()

	_, _, err := svc.CreateUser(&models.CreateUserRequest{
		Name:     "Asha",
		Email:    "asha@example.edu",
		Password: "password123",
		Role:     "professor",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	svc, repo := newTestUserService()
	seeded := repo.seed("Asha", "asha@example.edu")

	user, token, err := svc.Login(&models.LoginRequest{Email: "asha@example.edu", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.False(t, user.LastLogin.IsZero(), "successful login stamps last_login")

	_, _, err = svc.Login(&models.LoginRequest{Email: "asha@example.edu", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&models.LoginRequest{Email: "nobody@example.edu", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	svc, repo := newTestUserService()
	seeded := repo.seed("Asha", "asha@example.edu")

	updated, err := svc.UpdateProfile(seeded.ID, &models.UpdateProfileRequest{
		Headline: "Backend engineer",
		Skills:   "go,postgres",
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha", updated.Name, "unset fields keep their value")
	assert.Equal(t, "Backend engineer", updated.Headline)
	assert.Equal(t, "go,postgres", updated.Skills)
}

func TestDisplayNameFollowsProfileRename(t *testing.T) {
	svc, repo := newTestUserService()
	seeded := repo.seed("Asha", "asha@example.edu")

	name, err := svc.DisplayName(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", name)

	_, err = svc.UpdateProfile(seeded.ID, &models.UpdateProfileRequest{Name: "Asha R."})
	require.NoError(t, err)

	// The rename must invalidate the cached entry.
	name, err = svc.DisplayName(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", name)
}

func TestDisplayNameUnknownUser(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.DisplayName(99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchMatchesNamesCaseInsensitively(t *testing.T) {
	svc, repo := newTestUserService()
	repo.seed("Asha Rao", "asha@example.edu")
	repo.seed("Ben Ash", "ben@example.edu")
	repo.seed("Carol", "carol@example.edu")

	users, err := svc.Search("ash", 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = svc.Search("carol", 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Carol", users[0].Name)
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	svc, _ := newTestUserService()

	_, err := svc.Search("   ", 0)
	assert.ErrorIs(t, err, ErrEmptySearchQuery)
}

func TestRecentListsNewestMembersFirst(t *testing.T) {
	svc, repo := newTestUserService()
	repo.seed("Asha", "asha@example.edu")
	repo.seed("Ben", "ben@example.edu")
	newest := repo.seed("Carol", "carol@example.edu")

	users, err := svc.Recent(2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, newest.ID, users[0].ID)
}
