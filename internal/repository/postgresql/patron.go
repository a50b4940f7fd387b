package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

// PatronRepo reads patron identity records. Patron accounts are owned by an
// external system; the engine only consults blocked status and limits.
type PatronRepo struct {
	db db.DB
}

func NewPatronRepo(db db.DB) *PatronRepo {
	return &PatronRepo{db: db}
}

func (r *PatronRepo) GetByID(ctx context.Context, id string) (*repository.Patron, error) {
	var patron repository.Patron
	err := r.db.Get(ctx, &patron, "SELECT * FROM patrons WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &patron, nil
}

// StaffRepo backs basic auth on the call surface.
type StaffRepo struct {
	db db.DB
}

func NewStaffRepo(db db.DB) *StaffRepo {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) CreateUser(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO staff_users (username, password) VALUES ($1, $2)",
		username, string(hashedPassword))
	return err
}

func (r *StaffRepo) ValidateUser(ctx context.Context, username, password string) (bool, error) {
	var hashedPassword string
	err := r.db.ExecQueryRow(ctx,
		"SELECT password FROM staff_users WHERE username = $1", username).Scan(&hashedPassword)
	if err != nil {
		return false, errors.New("user not found")
	}

	err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return false, nil
	}
	return true, nil
}
