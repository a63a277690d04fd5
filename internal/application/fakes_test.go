package application

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	repo "github.com/oksasatya/go-classifieds-api/internal/domain/repository"
	"github.com/oksasatya/go-classifieds-api/internal/infrastructure/imagestore"
	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
)

// In-memory repositories for service tests. The ad and comment fakes
// reproduce the join the SQL implementations do: ad reads carry the
// owner's current profile fields, comment reads carry the owner's
// current email for the ownership check.

type fakeUserRepo struct {
	nextID int
	users  map[int]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNoRows
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repo.ErrNoRows
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNoRows
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return repo.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeAdRepo struct {
	nextID    int
	ads       map[int]entity.Ad
	users     *fakeUserRepo
	createErr error
}

func newFakeAdRepo(users *fakeUserRepo) *fakeAdRepo {
	return &fakeAdRepo{nextID: 1, ads: map[int]entity.Ad{}, users: users}
}

func (r *fakeAdRepo) join(ad entity.Ad) entity.Ad {
	if owner, ok := r.users.users[ad.AuthorID]; ok {
		ad.AuthorEmail = owner.Email
		ad.AuthorFirstName = owner.FirstName
		ad.AuthorLastName = owner.LastName
		ad.AuthorPhone = owner.Phone
	}
	return ad
}

func (r *fakeAdRepo) Create(_ context.Context, ad *entity.Ad) error {
	if r.createErr != nil {
		return r.createErr
	}
	ad.ID = r.nextID
	r.nextID++
	r.ads[ad.ID] = *ad
	return nil
}

func (r *fakeAdRepo) GetByID(_ context.Context, id int) (*entity.Ad, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, repo.ErrNoRows
	}
	out := r.join(ad)
	return &out, nil
}

func (r *fakeAdRepo) List(_ context.Context) ([]entity.Ad, error) {
	out := make([]entity.Ad, 0, len(r.ads))
	for _, ad := range r.ads {
		out = append(out, r.join(ad))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAdRepo) ListByAuthor(_ context.Context, authorID int) ([]entity.Ad, error) {
	var out []entity.Ad
	for _, ad := range r.ads {
		if ad.AuthorID == authorID {
			out = append(out, r.join(ad))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAdRepo) Update(_ context.Context, ad *entity.Ad) error {
	if _, ok := r.ads[ad.ID]; !ok {
		return repo.ErrNoRows
	}
	r.ads[ad.ID] = *ad
	return nil
}

func (r *fakeAdRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.ads[id]; !ok {
		return repo.ErrNoRows
	}
	delete(r.ads, id)
	return nil
}

type fakeCommentRepo struct {
	nextID   int
	comments map[int]entity.Comment
	users    *fakeUserRepo
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1, comments: map[int]entity.Comment{}, users: users}
}

func (r *fakeCommentRepo) join(c entity.Comment) entity.Comment {
	if owner, ok := r.users.users[c.AuthorID]; ok {
		c.AuthorEmail = owner.Email
	}
	return c
}

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	c.ID = r.nextID
	r.nextID++
	r.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int) (*entity.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, repo.ErrNoRows
	}
	out := r.join(c)
	return &out, nil
}

func (r *fakeCommentRepo) ListByAd(_ context.Context, adID int) ([]entity.Comment, error) {
	var out []entity.Comment
	for _, c := range r.comments {
		if c.AdID == adID {
			out = append(out, r.join(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	stored, ok := r.comments[c.ID]
	if !ok {
		return repo.ErrNoRows
	}
	stored.Text = c.Text
	r.comments[c.ID] = stored
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.comments[id]; !ok {
		return repo.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

var (
	_ repo.UserRepository    = (*fakeUserRepo)(nil)
	_ repo.AdRepository      = (*fakeAdRepo)(nil)
	_ repo.CommentRepository = (*fakeCommentRepo)(nil)
)

type testEnv struct {
	users    *fakeUserRepo
	ads      *fakeAdRepo
	comments *fakeCommentRepo
	images   *imagestore.Store

	usersSvc    *UsersService
	adsSvc      *AdsService
	commentsSvc *CommentsService
	authSvc     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newFakeUserRepo()
	ads := newFakeAdRepo(users)
	comments := newFakeCommentRepo(users)
	images := imagestore.New(t.TempDir(), logger)

	usersSvc := NewUsersService(users, ads, images, logger)
	return &testEnv{
		users:       users,
		ads:         ads,
		comments:    comments,
		images:      images,
		usersSvc:    usersSvc,
		adsSvc:      NewAdsService(ads, users, images, logger, nil, ""),
		commentsSvc: NewCommentsService(comments, ads, users, logger),
		authSvc:     NewAuthService(usersSvc, logger, nil),
	}
}

func (e *testEnv) addUser(t *testing.T, email, role, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{
		Email:     email,
		FirstName: "Ivan",
		LastName:  "Petrov",
		Phone:     "+79990000000",
		Role:      role,
		Password:  hash,
		Enabled:   true,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) addAd(t *testing.T, author *entity.User) *AdSummary {
	t.Helper()
	props := CreateOrUpdateAd{Title: "Bicycle", Price: 100, Description: "city bike, as new"}
	summary, err := e.adsSvc.Create(context.Background(), author.Email, props, []byte("imagebytes"), "bike.jpg")
	require.NoError(t, err)
	return summary
}
