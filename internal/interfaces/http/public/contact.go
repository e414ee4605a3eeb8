package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rickygarrix/otonavi-sub000/internal/interfaces/http/common"
	publicapp "github.com/rickygarrix/otonavi-sub000/internal/public/application"
)

func (h *Handler) contactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req contactRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, common.MaxRequestBody))
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		if message, ok := validateContactRequest(&req); !ok {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": message})
			return
		}

		inquiry, err := h.inquiries.Accept(ctx, publicapp.SubmitInquiryCommand{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			h.logger.Printf("contact accept failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "お問い合わせの受付に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, contactResponse{OK: true, ID: inquiry.ID})
	}
}

func validateContactRequest(req *contactRequest) (string, bool) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" {
		return "お名前を入力してください", false
	}
	if utf8.RuneCountInString(req.Name) > common.MaxContactNameRunes {
		return "お名前が長すぎます", false
	}
	if req.Email == "" {
		return "メールアドレスを入力してください", false
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "メールアドレスの形式が不正です", false
	}
	if req.Message == "" {
		return "お問い合わせ内容を入力してください", false
	}
	if utf8.RuneCountInString(req.Message) > common.MaxContactMessageRunes {
		return "お問い合わせ内容が長すぎます", false
	}
	return "", true
}
