package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
	repo "github.com/oksasatya/devconnect-api/internal/domain/repository"
	"github.com/oksasatya/devconnect-api/pkg/helpers"
)

const profileListCacheKey = "cache:profiles:all"
const profileListCacheTTL = 30 * time.Second

// ProfileService owns the profile aggregate: upsert with partial-merge
// semantics, the experience/education sub-collections, the account cascade
// delete, and the Elasticsearch-backed search. Redis and ES are optional;
// mutations never fail because a cache or index write failed.
type ProfileService struct {
	Profiles repo.ProfileRepository
	Users    repo.UserRepository
	Posts    repo.PostRepository
	Redis    *redis.Client
	ES       *elasticsearch.Client
	ESIndex  string
	Logger   *logrus.Logger
}

func NewProfileService(profiles repo.ProfileRepository, users repo.UserRepository, posts repo.PostRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		Profiles: profiles,
		Users:    users,
		Posts:    posts,
		Redis:    rdb,
		ES:       es,
		ESIndex:  esIndex,
		Logger:   logger,
	}
}

// UpsertInput carries the profile fields. Empty strings mean "leave
// unchanged" on an existing profile (partial update, not replacement).
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string // comma-delimited
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// ParseSkills splits a comma-delimited skill list into trimmed entries.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Upsert creates the caller's profile or merges the provided fields into
// the existing one. Status and skills are required and checked before any
// mutation.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in UpsertInput) (*entity.Profile, error) {
	if strings.TrimSpace(in.Status) == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}
	skills := ParseSkills(in.Skills)
	if len(skills) == 0 {
		return nil, fmt.Errorf("%w: skills is required", ErrValidation)
	}

	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	created := p == nil
	if created {
		p = &entity.Profile{UserID: userID}
	}

	p.Status = in.Status
	p.Skills = skills
	mergeField(&p.Company, in.Company)
	mergeField(&p.Website, in.Website)
	mergeField(&p.Location, in.Location)
	mergeField(&p.Bio, in.Bio)
	mergeField(&p.GithubUsername, in.GithubUsername)
	mergeField(&p.Social.Youtube, in.Youtube)
	mergeField(&p.Social.Twitter, in.Twitter)
	mergeField(&p.Social.Facebook, in.Facebook)
	mergeField(&p.Social.Linkedin, in.Linkedin)
	mergeField(&p.Social.Instagram, in.Instagram)

	if created {
		err = s.Profiles.Create(ctx, p)
	} else {
		err = s.Profiles.Update(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.indexProfile(ctx, p)
	return s.GetByUserID(ctx, userID)
}

func mergeField(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// GetByUserID returns the profile owned by userID, with the owner's
// name/avatar populated.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// List returns all profiles, newest first, served from a short-lived Redis
// cache when possible.
func (s *ProfileService) List(ctx context.Context) ([]*entity.Profile, error) {
	if s.Redis != nil {
		var cached []*entity.Profile
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileListCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	out, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if cErr := helpers.RedisSetJSON(ctx, s.Redis, profileListCacheKey, out, profileListCacheTTL); cErr != nil && s.Logger != nil {
			s.Logger.WithError(cErr).Warn("profile list cache write failed")
		}
	}
	return out, nil
}

// AddExperience prepends an entry (newest first) to the caller's profile.
// Title, company and from are required and checked before any mutation.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, exp entity.Experience) (*entity.Profile, error) {
	switch {
	case strings.TrimSpace(exp.Title) == "":
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(exp.Company) == "":
		return nil, fmt.Errorf("%w: company is required", ErrValidation)
	case exp.From.IsZero():
		return nil, fmt.Errorf("%w: from is required", ErrValidation)
	}
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	exp.ID = uuid.NewString()
	p.Experience = append([]entity.Experience{exp}, p.Experience...)
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return p, nil
}

// RemoveExperience removes the entry with the given id from the caller's
// own profile. An unknown id removes nothing and still reports success.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return p, nil
}

// AddEducation prepends an entry (newest first) to the caller's profile.
// School, degree, field of study and from are required and checked before
// any mutation.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, edu entity.Education) (*entity.Profile, error) {
	switch {
	case strings.TrimSpace(edu.School) == "":
		return nil, fmt.Errorf("%w: school is required", ErrValidation)
	case strings.TrimSpace(edu.Degree) == "":
		return nil, fmt.Errorf("%w: degree is required", ErrValidation)
	case strings.TrimSpace(edu.FieldOfStudy) == "":
		return nil, fmt.Errorf("%w: fieldofstudy is required", ErrValidation)
	case edu.From.IsZero():
		return nil, fmt.Errorf("%w: from is required", ErrValidation)
	}
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	edu.ID = uuid.NewString()
	p.Education = append([]entity.Education{edu}, p.Education...)
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return p, nil
}

// RemoveEducation mirrors RemoveExperience, including the silent no-op on
// an unknown id.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*entity.Profile, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID != eduID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return p, nil
}

// DeleteAccount removes the user's posts, then the profile, then the user.
// The ordering keeps posts and profiles from ever referencing a missing
// user after a partial failure.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.Posts.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.Profiles.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	s.deleteProfileDoc(ctx, userID)
	return nil
}

func (s *ProfileService) invalidateListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, profileListCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("profile list cache invalidation failed")
	}
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"user_id":  p.UserID,
		"status":   p.Status,
		"skills":   p.Skills,
		"company":  p.Company,
		"location": p.Location,
		"bio":      p.Bio,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.UserID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.UserID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.UserID).Warn("es index response error")
	}
}

func (s *ProfileService) deleteProfileDoc(ctx context.Context, userID string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: userID}
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over indexed profile fields.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"status^2", "skills", "company", "location", "bio"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
