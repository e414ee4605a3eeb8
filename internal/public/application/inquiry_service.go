package application

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

type inquiryService struct {
	repo   InquiryRepository
	mailer MailSender
	logger *log.Logger
}

// NewInquiryService は問い合わせ受付サービスを生成する。mailer は nil 可。
func NewInquiryService(repo InquiryRepository, mailer MailSender, logger *log.Logger) InquiryService {
	return &inquiryService{repo: repo, mailer: mailer, logger: logger}
}

// Accept は問い合わせを永続化し、管理者通知と自動返信を送る。
// 永続化の失敗は受付失敗として返すが、メール送信の失敗はログに残して
// 受付自体は成功扱いにする。
func (s *inquiryService) Accept(ctx context.Context, cmd SubmitInquiryCommand) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(cmd.Name),
		Email:     strings.TrimSpace(cmd.Email),
		Message:   strings.TrimSpace(cmd.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendInquiryNotification(ctx, inquiry); err != nil && s.logger != nil {
			s.logger.Printf("問い合わせ通知メールの送信に失敗: %v", err)
		}
		if err := s.mailer.SendInquiryAutoReply(ctx, inquiry); err != nil && s.logger != nil {
			s.logger.Printf("自動返信メールの送信に失敗: %v", err)
		}
	}
	return inquiry, nil
}
