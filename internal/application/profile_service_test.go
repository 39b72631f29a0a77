package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
)

type profileFixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	posts    *fakePostRepo
	svc      *ProfileService
	userID   string
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	posts := newFakePostRepo()

	u := &entity.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, users.Create(context.Background(), u))

	return &profileFixture{
		users:    users,
		profiles: profiles,
		posts:    posts,
		svc:      NewProfileService(profiles, users, posts, nil, nil, "", nil),
		userID:   u.ID,
	}
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"go", "ts"}, ParseSkills("go, ts"))
	assert.Equal(t, []string{"go"}, ParseSkills(" go ,, "))
	assert.Empty(t, ParseSkills("  ,  "))
}

func TestUpsertCreatesProfile(t *testing.T) {
	f := newProfileFixture(t)

	p, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{
		Status:  "Developer",
		Skills:  "go, ts",
		Company: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, f.userID, p.UserID)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"go", "ts"}, p.Skills)
	assert.Equal(t, "Acme", p.Company)
}

func TestUpsertRequiresStatusAndSkills(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Skills: "go"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: " , "})
	assert.ErrorIs(t, err, ErrValidation)

	// Failed validation must not create a profile.
	_, err = f.svc.GetByUserID(context.Background(), f.userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpsertMergesIntoExistingProfile(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{
		Status:   "Developer",
		Skills:   "go",
		Company:  "Acme",
		Location: "Berlin",
	})
	require.NoError(t, err)

	p, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{
		Status: "Senior Developer",
		Skills: "go, sql",
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Developer", p.Status)
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Berlin", p.Location)
}

func TestExperienceAddAndRemove(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := f.svc.AddExperience(context.Background(), f.userID, entity.Experience{
		Title: "Engineer", Company: "Acme", From: from, Current: true,
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.NotEmpty(t, p.Experience[0].ID)

	p, err = f.svc.AddExperience(context.Background(), f.userID, entity.Experience{
		Title: "Lead", Company: "Acme", From: from.AddDate(2, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Lead", p.Experience[0].Title)

	p, err = f.svc.RemoveExperience(context.Background(), f.userID, p.Experience[0].ID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Engineer", p.Experience[0].Title)
}

func TestAddExperienceRequiresFields(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []entity.Experience{
		{Company: "Acme", From: from},
		{Title: "Engineer", From: from},
		{Title: "Engineer", Company: "Acme"},
		{},
	}
	for _, exp := range cases {
		_, err := f.svc.AddExperience(context.Background(), f.userID, exp)
		assert.ErrorIs(t, err, ErrValidation)
	}

	// Nothing was persisted by the rejected calls.
	p, err := f.svc.GetByUserID(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, p.Experience)
}

func TestAddEducationRequiresFields(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	from := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	cases := []entity.Education{
		{Degree: "BSc", FieldOfStudy: "CS", From: from},
		{School: "MIT", FieldOfStudy: "CS", From: from},
		{School: "MIT", Degree: "BSc", From: from},
		{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"},
	}
	for _, edu := range cases {
		_, err := f.svc.AddEducation(context.Background(), f.userID, edu)
		assert.ErrorIs(t, err, ErrValidation)
	}

	p, err := f.svc.GetByUserID(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestRemoveExperienceUnknownIDIsNoOp(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)
	_, err = f.svc.AddExperience(context.Background(), f.userID, entity.Experience{Title: "Engineer", Company: "Acme", From: time.Now()})
	require.NoError(t, err)

	p, err := f.svc.RemoveExperience(context.Background(), f.userID, "no-such-id")
	require.NoError(t, err)
	assert.Len(t, p.Experience, 1)
}

func TestEducationAddAndRemove(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	p, err := f.svc.AddEducation(context.Background(), f.userID, entity.Education{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = f.svc.RemoveEducation(context.Background(), f.userID, p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestSubCollectionMutationRequiresProfile(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.svc.AddExperience(context.Background(), f.userID, entity.Experience{Title: "Engineer", Company: "Acme", From: time.Now()})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = f.svc.RemoveEducation(context.Background(), f.userID, "any")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	posts := NewPostService(f.posts, f.users, nil)
	_, err = posts.Create(context.Background(), f.userID, "hello world")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAccount(context.Background(), f.userID))

	u, err := f.users.GetByID(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = f.svc.GetByUserID(context.Background(), f.userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	remaining, err := f.posts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestListWithoutCache(t *testing.T) {
	f := newProfileFixture(t)
	_, err := f.svc.Upsert(context.Background(), f.userID, UpsertInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	out, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, f.userID, out[0].UserID)
}
