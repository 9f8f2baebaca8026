package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentiq/mentiq/internal/platform/db"
)

// =========== Doctor Repository ===========

type doctorRepoPG struct{ q db.Querier }

func NewDoctorRepoPG(q db.Querier) DoctorRepository { return &doctorRepoPG{q: q} }

func (r *doctorRepoPG) conn(ctx context.Context) db.Querier { return db.Conn(ctx, r.q) }

const doctorCols = `id, user_id, name, specialty, country, city, experience_years, rating,
	avatar, phone, email, created_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Specialty, &d.Country, &d.City,
		&d.ExperienceYears, &d.Rating, &d.Avatar, &d.Phone, &d.Email, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (id, user_id, name, specialty, country, city, experience_years,
			rating, avatar, phone, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at`,
		d.ID, d.UserID, d.Name, d.Specialty, d.Country, d.City, d.ExperienceYears,
		d.Rating, d.Avatar, d.Phone, d.Email).Scan(&d.CreatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE user_id = $1`, userID))
}

func (r *doctorRepoPG) List(ctx context.Context, f DoctorFilter) ([]*Doctor, error) {
	query := `SELECT ` + doctorCols + ` FROM doctors WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.Country != "" {
		query += fmt.Sprintf(` AND country = $%d`, idx)
		args = append(args, f.Country)
		idx++
	}
	if f.City != "" {
		query += fmt.Sprintf(` AND city = $%d`, idx)
		args = append(args, f.City)
		idx++
	}
	if f.Specialty != "" {
		query += fmt.Sprintf(` AND specialty = $%d`, idx)
		args = append(args, f.Specialty)
	}
	query += ` ORDER BY rating DESC, experience_years DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *doctorRepoPG) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	var opts FilterOptions
	var err error
	if opts.Countries, err = r.distinct(ctx, "country"); err != nil {
		return nil, err
	}
	if opts.Cities, err = r.distinct(ctx, "city"); err != nil {
		return nil, err
	}
	if opts.Specialties, err = r.distinct(ctx, "specialty"); err != nil {
		return nil, err
	}
	return &opts, nil
}

// distinct is only called with fixed column names.
func (r *doctorRepoPG) distinct(ctx context.Context, column string) ([]string, error) {
	return collectStrings(r.conn(ctx).Query(ctx, `SELECT DISTINCT `+column+` FROM doctors ORDER BY 1`))
}

// =========== Article Repository ===========

type articleRepoPG struct{ q db.Querier }

func NewArticleRepoPG(q db.Querier) ArticleRepository { return &articleRepoPG{q: q} }

func (r *articleRepoPG) conn(ctx context.Context) db.Querier { return db.Conn(ctx, r.q) }

const articleCols = `id, title, category, excerpt, content, icon, image_url, link_url, created_at`

func scanArticle(row pgx.Row) (*Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.Title, &a.Category, &a.Excerpt, &a.Content, &a.Icon,
		&a.ImageURL, &a.LinkURL, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	return &a, err
}

func (r *articleRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	return scanArticle(r.conn(ctx).QueryRow(ctx, `SELECT `+articleCols+` FROM articles WHERE id = $1`, id))
}

func (r *articleRepoPG) List(ctx context.Context, category string) ([]*Article, error) {
	query := `SELECT ` + articleCols + ` FROM articles`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *articleRepoPG) Categories(ctx context.Context) ([]string, error) {
	return collectStrings(r.conn(ctx).Query(ctx, `SELECT DISTINCT category FROM articles ORDER BY 1`))
}

func collectStrings(rows pgx.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
