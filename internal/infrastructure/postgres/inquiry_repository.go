package postgres

import (
	"context"
	"database/sql"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

// InquiryRepository は問い合わせ内容の永続化を担う。
type InquiryRepository struct {
	db *sql.DB
}

func NewInquiryRepository(db *sql.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Insert(ctx context.Context, inquiry *domain.Inquiry) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO inquiries (id, name, email, message, created_at) VALUES ($1, $2, $3, $4, $5)",
		inquiry.ID, inquiry.Name, inquiry.Email, inquiry.Message, inquiry.CreatedAt,
	)
	return err
}
