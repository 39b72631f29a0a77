package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
	"github.com/oksasatya/devconnect-api/internal/domain/repository"
)

// ProfileRepository stores the profile aggregate on a single row: skills as
// text[], social and the experience/education sub-collections as JSONB. The
// whole aggregate is rewritten on Update, which is what makes the service
// layer's read-modify-write sequences behave like the documented
// single-aggregate mutations.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `
	p.id, p.user_id, p.company, p.website, p.location, p.status, p.skills,
	p.bio, p.github_username, p.social, p.experience, p.education,
	p.created_at, p.updated_at, u.name, u.avatar_url
`

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	social, experience, education, err := marshalSubdocs(p)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, company, website, location, status, skills,
			bio, github_username, social, experience, education)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Company, p.Website, p.Location, p.Status, p.Skills,
		p.Bio, p.GithubUsername, social, experience, education)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	social, experience, education, err := marshalSubdocs(p)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	_, err = r.pool.Exec(ctx, `
		UPDATE profiles
		SET company = $1, website = $2, location = $3, status = $4, skills = $5,
			bio = $6, github_username = $7, social = $8, experience = $9,
			education = $10, updated_at = $11
		WHERE user_id = $12
	`, p.Company, p.Website, p.Location, p.Status, p.Skills,
		p.Bio, p.GithubUsername, social, experience, education, p.UpdatedAt, p.UserID)
	return err
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

func marshalSubdocs(p *entity.Profile) (social, experience, education []byte, err error) {
	if social, err = json.Marshal(p.Social); err != nil {
		return
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}
	education, err = json.Marshal(p.Education)
	return
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	var social, experience, education []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location,
		&p.Status, &p.Skills, &p.Bio, &p.GithubUsername, &social, &experience,
		&education, &p.CreatedAt, &p.UpdatedAt, &p.UserName, &p.UserAvatar); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, err
	}
	return p, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
