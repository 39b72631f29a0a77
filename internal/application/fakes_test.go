package application

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
)

// In-memory repositories for service tests. They mirror the Postgres
// implementations' contracts: lookups return (nil, nil) on a miss and
// whole aggregates are replaced on Update.

type fakeUserRepo struct {
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile // keyed by user id
	seq      int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*entity.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.seq++
	p.ID = fmt.Sprintf("profile-%d", r.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) List(_ context.Context) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	delete(r.profiles, userID)
	return nil
}

type fakePostRepo struct {
	posts []*entity.Post // newest first
	seq   int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{}
}

func (r *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	r.seq++
	p.ID = fmt.Sprintf("post-%d", r.seq)
	p.CreatedAt = time.Now()
	cp := *p
	r.posts = append([]*entity.Post{&cp}, r.posts...)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) List(_ context.Context) ([]*entity.Post, error) {
	out := make([]*entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePostRepo) Update(_ context.Context, p *entity.Post) error {
	for i, existing := range r.posts {
		if existing.ID == p.ID {
			cp := *p
			r.posts[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("post %s not found", p.ID)
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePostRepo) DeleteByUserID(_ context.Context, userID string) error {
	kept := r.posts[:0]
	for _, p := range r.posts {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	r.posts = kept
	return nil
}
