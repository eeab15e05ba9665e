package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/rules"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ProfileInteraction{},
		&models.Post{},
		&models.PostInteraction{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type testEnv struct {
	db *gorm.DB
	e  *echo.Echo

	users            repositories.UserRepository
	profiles         repositories.ProfileRepository
	interactions     repositories.InteractionRepository
	posts            repositories.PostRepository
	postInteractions repositories.PostInteractionRepository
	notifications    repositories.NotificationRepository

	auth    *AuthHandler
	profile *ProfileHandler
	follow  *FollowHandler
	block   *BlockHandler
	mute    *MuteHandler
	like    *LikeHandler
	post    *PostHandler
	feed    *FeedHandler
	notif   *NotificationHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:               db,
		e:                echo.New(),
		users:            repositories.NewPostgresUserRepository(db),
		profiles:         repositories.NewPostgresProfileRepository(db),
		interactions:     repositories.NewPostgresInteractionRepository(db),
		posts:            repositories.NewPostgresPostRepository(db),
		postInteractions: repositories.NewPostgresPostInteractionRepository(db),
		notifications:    repositories.NewPostgresNotificationRepository(db),
	}

	v := rules.NewInteractionValidator(env.profiles, env.interactions)
	env.auth = NewAuthHandler(env.users, env.profiles)
	env.profile = NewProfileHandler(env.profiles)
	env.follow = NewFollowHandler(env.interactions, env.notifications, v)
	env.block = NewBlockHandler(env.interactions, v)
	env.mute = NewMuteHandler(env.interactions, v)
	env.post = NewPostHandler(env.posts, env.profiles, env.notifications, v)
	env.like = NewLikeHandler(env.postInteractions, env.posts, env.notifications, v)
	env.feed = NewFeedHandler(env.posts, env.post)
	env.notif = NewNotificationHandler(env.notifications, env.profiles)
	return env
}

func (env *testEnv) createProfile(t *testing.T, username string) *models.Profile {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Phone:    fmt.Sprintf("+1%09d", testDBSeq.Add(1)),
		Password: "hashed",
	}
	profile := &models.Profile{Username: username, DisplayName: username}
	if err := env.users.CreateUserWithProfile(user, profile); err != nil {
		t.Fatalf("create profile %s: %v", username, err)
	}
	return profile
}

func (env *testEnv) createPost(t *testing.T, author *models.Profile, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: author.UserID, ProfileID: author.ID, Content: content}
	if err := env.posts.CreatePost(post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

// do performs a request against a single handler with the actor's session
// claims preset, mirroring what the JWT middleware would do.
func (env *testEnv) do(t *testing.T, method, target string, body interface{}, actor *models.Profile, handler echo.HandlerFunc, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if actor != nil {
		c.Set("user", &models.JwtCustomClaims{UserID: actor.UserID, ProfileID: actor.ID})
	}

	if err := handler(c); err != nil {
		env.e.HTTPErrorHandler(err, c)
	}
	return rec
}

// pageData mirrors the CursorPage envelope for decoding listing responses
type pageData struct {
	Items       []json.RawMessage `json:"items"`
	Count       int               `json:"count"`
	HasNextPage bool              `json:"has_next_page"`
	NextCursor  uint              `json:"next_cursor"`
}

type pageEnvelope struct {
	Success bool     `json:"success"`
	Data    pageData `json:"data"`
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) pageData {
	t.Helper()
	var env pageEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode page response: %v", err)
	}
	return env.Data
}
