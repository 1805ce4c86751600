package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/repository"
)

const createDatasetTables = `
CREATE TABLE IF NOT EXISTS users (
	user_key TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	join_date TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	profile_image TEXT NOT NULL DEFAULT '',
	social_links TEXT NOT NULL DEFAULT '{}',
	total_certificates INTEGER NOT NULL DEFAULT 0,
	total_hours REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS certificates (
	user_key TEXT NOT NULL,
	position INTEGER NOT NULL,
	id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	course_name TEXT NOT NULL DEFAULT '',
	institution TEXT NOT NULL DEFAULT '',
	platform TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	completion_date TEXT NOT NULL DEFAULT '',
	issue_date TEXT NOT NULL DEFAULT '',
	expiry_date TEXT NOT NULL DEFAULT '',
	hours REAL NOT NULL DEFAULT 0,
	credits_earned REAL NULL,
	grade TEXT NULL,
	rating REAL NULL,
	instructor TEXT NOT NULL DEFAULT '',
	verification_status TEXT NOT NULL DEFAULT '',
	skills TEXT NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (user_key, position),
	FOREIGN KEY(user_key) REFERENCES users(user_key) ON DELETE CASCADE
);
`

// DatasetRepository stores the certificate dataset in sqlite.
type DatasetRepository struct {
	db *sql.DB
}

func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

func (r *DatasetRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDatasetTables); err != nil {
		return fmt.Errorf("create dataset tables: %w", err)
	}
	return nil
}

// Import replaces every stored user and certificate with dataset.
func (r *DatasetRepository) Import(ctx context.Context, dataset *domain.Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM certificates`); err != nil {
		return fmt.Errorf("delete certificates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}

	for pos, user := range dataset.Users() {
		key := domain.UserKey(user.ID)
		links, err := json.Marshal(user.SocialLinks)
		if err != nil {
			return fmt.Errorf("encode social links for %q: %w", user.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO users (user_key, position, id, name, email, join_date, bio, location, profile_image, social_links, total_certificates, total_hours)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key,
			pos,
			user.ID,
			user.Name,
			user.Email,
			user.JoinDate,
			user.Bio,
			user.Location,
			user.ProfileImage,
			string(links),
			user.TotalCertificates,
			user.TotalHours,
		); err != nil {
			return fmt.Errorf("insert user %q: %w", user.ID, err)
		}

		for cpos, cert := range user.Certificates {
			if err := insertCertificate(ctx, tx, key, cpos, cert); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func insertCertificate(ctx context.Context, tx *sql.Tx, userKey string, pos int, cert domain.Certificate) error {
	skills, err := json.Marshal(cert.Skills)
	if err != nil {
		return fmt.Errorf("encode skills for %q: %w", cert.ID, err)
	}
	var grade any
	if cert.Grade != nil {
		raw, err := json.Marshal(cert.Grade)
		if err != nil {
			return fmt.Errorf("encode grade for %q: %w", cert.ID, err)
		}
		grade = string(raw)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO certificates (user_key, position, id, user_id, course_name, institution, platform, category, completion_date, issue_date, expiry_date, hours, credits_earned, grade, rating, instructor, verification_status, skills, description)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userKey,
		pos,
		cert.ID,
		cert.UserID,
		cert.CourseName,
		cert.Institution,
		cert.Platform,
		cert.Category,
		cert.CompletionDate,
		cert.IssueDate,
		cert.ExpiryDate,
		cert.Hours,
		nullFloat(cert.CreditsEarned),
		grade,
		nullFloat(cert.Rating),
		cert.Instructor,
		string(cert.VerificationStatus),
		string(skills),
		cert.Description,
	); err != nil {
		return fmt.Errorf("insert certificate %q: %w", cert.ID, err)
	}
	return nil
}

// Load reads the stored dataset in import order. Users and certificates are
// read inside one transaction so a concurrent Import is seen whole or not at all.
func (r *DatasetRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	users, err := loadUsers(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := loadCertificates(ctx, tx, users); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit read tx: %w", err)
	}
	return domain.NewDataset(users), nil
}

func loadUsers(ctx context.Context, tx *sql.Tx) ([]domain.User, error) {
	rows, err := tx.QueryContext(ctx, `
SELECT id, name, email, join_date, bio, location, profile_image, social_links, total_certificates, total_hours
FROM users
ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var (
			links string
			user  domain.User
		)
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.JoinDate,
			&user.Bio,
			&user.Location,
			&user.ProfileImage,
			&links,
			&user.TotalCertificates,
			&user.TotalHours,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if err := json.Unmarshal([]byte(links), &user.SocialLinks); err != nil {
			return nil, fmt.Errorf("decode social links for %q: %w", user.ID, err)
		}
		user.Certificates = []domain.Certificate{}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func loadCertificates(ctx context.Context, tx *sql.Tx, users []domain.User) error {
	index := make(map[string]int, len(users))
	for i := range users {
		index[domain.UserKey(users[i].ID)] = i
	}

	rows, err := tx.QueryContext(ctx, `
SELECT user_key, id, user_id, course_name, institution, platform, category, completion_date, issue_date, expiry_date, hours, credits_earned, grade, rating, instructor, verification_status, skills, description
FROM certificates
ORDER BY user_key ASC, position ASC`)
	if err != nil {
		return fmt.Errorf("query certificates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		key, cert, err := scanCertificate(rows)
		if err != nil {
			return err
		}
		i, ok := index[key]
		if !ok {
			return fmt.Errorf("certificate %q references unknown user key %q", cert.ID, key)
		}
		users[i].Certificates = append(users[i].Certificates, *cert)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate certificates: %w", err)
	}
	return nil
}

func scanCertificate(scanner interface {
	Scan(dest ...any) error
}) (string, *domain.Certificate, error) {
	var (
		key     string
		cert    domain.Certificate
		status  string
		skills  string
		credits sql.NullFloat64
		rating  sql.NullFloat64
		grade   sql.NullString
	)

	if err := scanner.Scan(
		&key,
		&cert.ID,
		&cert.UserID,
		&cert.CourseName,
		&cert.Institution,
		&cert.Platform,
		&cert.Category,
		&cert.CompletionDate,
		&cert.IssueDate,
		&cert.ExpiryDate,
		&cert.Hours,
		&credits,
		&grade,
		&rating,
		&cert.Instructor,
		&status,
		&skills,
		&cert.Description,
	); err != nil {
		return "", nil, fmt.Errorf("scan certificate: %w", err)
	}

	cert.VerificationStatus = domain.VerificationStatus(status)
	if err := json.Unmarshal([]byte(skills), &cert.Skills); err != nil {
		return "", nil, fmt.Errorf("decode skills for %q: %w", cert.ID, err)
	}
	if cert.Skills == nil {
		cert.Skills = []string{}
	}
	if credits.Valid {
		v := credits.Float64
		cert.CreditsEarned = &v
	}
	if rating.Valid {
		v := rating.Float64
		cert.Rating = &v
	}
	if grade.Valid {
		var g domain.Grade
		if err := json.Unmarshal([]byte(grade.String), &g); err != nil {
			return "", nil, fmt.Errorf("decode grade for %q: %w", cert.ID, err)
		}
		cert.Grade = &g
	}

	return key, &cert, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

var (
	_ repository.DatasetProvider = (*DatasetRepository)(nil)
	_ repository.DatasetImporter = (*DatasetRepository)(nil)
)
