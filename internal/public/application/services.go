package application

import (
	"context"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

// StoreReadRepository は公開側で店舗の生レコードを読むためのポート。
type StoreReadRepository interface {
	ListRaw(ctx context.Context, status string) ([]domain.RawStore, error)
	FindRawBySlug(ctx context.Context, slug string) (domain.RawStore, error)
}

// MasterRepository はファセットマスタとエリア階層を読むためのポート。
type MasterRepository interface {
	ListDefinitions(ctx context.Context, table string) ([]domain.CategoryDefinition, error)
	ListCities(ctx context.Context) ([]domain.City, error)
}

// InquiryRepository は問い合わせの永続化を提供するポート。
type InquiryRepository interface {
	Insert(ctx context.Context, inquiry *domain.Inquiry) error
}

// MailSender は問い合わせ受付時のメール送信を提供するポート。
type MailSender interface {
	SendInquiryNotification(ctx context.Context, inquiry *domain.Inquiry) error
	SendInquiryAutoReply(ctx context.Context, inquiry *domain.Inquiry) error
}

// StoreQueryService は店舗に関する参照ユースケースを提供するリーダーモデル。
type StoreQueryService interface {
	ListSummaries(ctx context.Context, status string) ([]domain.StoreSummary, error)
	Search(ctx context.Context, keys []string) ([]domain.StoreSearchRecord, error)
	Detail(ctx context.Context, slug string) (*domain.StoreDetail, error)
}

// MasterDataService はフィルタ UI 向けのマスタデータ一式を提供する。
type MasterDataService interface {
	Load(ctx context.Context) (*domain.MasterData, error)
}

// SubmitInquiryCommand は問い合わせフォームからの入力。
type SubmitInquiryCommand struct {
	Name    string
	Email   string
	Message string
}

// InquiryService は問い合わせの受付ユースケースを提供する。
type InquiryService interface {
	Accept(ctx context.Context, cmd SubmitInquiryCommand) (*domain.Inquiry, error)
}
