package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
	"github.com/oksasatya/devconnect-api/internal/domain/repository"
)

// PostRepository stores the feed aggregate on a single row with likes and
// comments as JSONB. Author name/avatar are snapshot columns written once
// at creation.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	likes, comments, err := marshalPostSubdocs(p)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, text, name, avatar_url, likes, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, p.UserID, p.Text, p.Name, p.AvatarURL, likes, comments)
	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, text, name, avatar_url, likes, comments, created_at
		FROM posts
		WHERE id = $1
	`, id)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, text, name, avatar_url, likes, comments, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	likes, comments, err := marshalPostSubdocs(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE posts
		SET likes = $1, comments = $2
		WHERE id = $3
	`, likes, comments, p.ID)
	return err
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *PostRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	return err
}

func marshalPostSubdocs(p *entity.Post) (likes, comments []byte, err error) {
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if likes, err = json.Marshal(p.Likes); err != nil {
		return
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	comments, err = json.Marshal(p.Comments)
	return
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	var likes, comments []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.AvatarURL,
		&likes, &comments, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(likes, &p.Likes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return nil, err
	}
	return p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
