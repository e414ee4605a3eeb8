package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

// MailGateway は外部メール配信 API への送信を担う。
// 問い合わせ受付時に管理者向け通知と投稿者向け自動返信の2通を送る。
type MailGateway struct {
	endpoint   string
	apiKey     string
	from       string
	adminTo    string
	httpClient *http.Client
}

func NewMailGateway(endpoint, apiKey, from, adminTo string, timeout time.Duration) *MailGateway {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MailGateway{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		from:       strings.TrimSpace(from),
		adminTo:    strings.TrimSpace(adminTo),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendInquiryNotification は管理者宛に問い合わせ内容を通知する。
func (g *MailGateway) SendInquiryNotification(ctx context.Context, inquiry *domain.Inquiry) error {
	if g.adminTo == "" {
		return nil
	}
	subject := fmt.Sprintf("【お問い合わせ】%s 様より", inquiry.Name)
	return g.send(ctx, g.adminTo, subject, buildAdminInquiryBody(inquiry))
}

// SendInquiryAutoReply は投稿者宛に受付完了の自動返信を送る。
func (g *MailGateway) SendInquiryAutoReply(ctx context.Context, inquiry *domain.Inquiry) error {
	subject := "お問い合わせを受け付けました"
	return g.send(ctx, inquiry.Email, subject, buildAutoReplyBody(inquiry))
}

func buildAdminInquiryBody(inquiry *domain.Inquiry) string {
	var builder strings.Builder
	builder.WriteString("新しいお問い合わせが届きました。\n\n")
	builder.WriteString(fmt.Sprintf("お名前: %s\n", inquiry.Name))
	builder.WriteString(fmt.Sprintf("メールアドレス: %s\n", inquiry.Email))
	builder.WriteString(fmt.Sprintf("受付日時: %s\n\n", inquiry.CreatedAt.Format("2006-01-02 15:04")))
	builder.WriteString("内容:\n")
	builder.WriteString(inquiry.Message)
	builder.WriteString("\n")
	return builder.String()
}

func buildAutoReplyBody(inquiry *domain.Inquiry) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s 様\n\n", inquiry.Name))
	builder.WriteString("お問い合わせありがとうございます。以下の内容で受け付けました。\n")
	builder.WriteString("担当者より順次ご連絡いたしますので、今しばらくお待ちください。\n\n")
	builder.WriteString("----\n")
	builder.WriteString(inquiry.Message)
	builder.WriteString("\n----\n")
	return builder.String()
}

func (g *MailGateway) send(ctx context.Context, to, subject, text string) error {
	if g.endpoint == "" {
		return errors.New("メール送信先エンドポイントが設定されていません")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("宛先メールアドレスが空です")
	}

	payload := map[string]any{
		"from":    g.from,
		"to":      []string{strings.TrimSpace(to)},
		"subject": subject,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メール送信用ペイロードの作成に失敗: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メール送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	res, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メール送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メール送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
