package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Slug string

// NewSlug は URL セーフな slug のみ通す。詳細ページのルーティングに使うため、
// 小文字英数字とハイフン以外は受け付けない。
func NewSlug(value string) (Slug, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("slug は必須です")
	}
	if len(trimmed) > 100 {
		return "", fmt.Errorf("slug が長すぎます: %s", trimmed)
	}
	if !slugPattern.MatchString(trimmed) {
		return "", fmt.Errorf("slug の形式が不正です: %s", trimmed)
	}
	return Slug(trimmed), nil
}

func (s Slug) String() string {
	return string(s)
}

type StatusKey string

var allowedStatusKeys = []string{"normal", "temporary", "closed", "irregular"}

// NewStatusKey は既知の稼働状態のみ通す。空は normal に倒す。
func NewStatusKey(value string) (StatusKey, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StatusKey("normal"), nil
	}
	for _, allowed := range allowedStatusKeys {
		if allowed == trimmed {
			return StatusKey(trimmed), nil
		}
	}
	return "", fmt.Errorf("不正な稼働状態です: %s", trimmed)
}

func (s StatusKey) String() string {
	return string(s)
}

type URL string

func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("URL は必須です")
	}
	if len(trimmed) > 2048 {
		return "", fmt.Errorf("URL が長すぎます: %s", trimmed)
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", fmt.Errorf("URL の形式が不正です: %w", err)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

// NewFacetIDList は定義 ID リストを検証・重複排除して返す。入力順は保持する。
func NewFacetIDList(values []int64) ([]int64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	seen := make(map[int64]struct{}, len(values))
	result := make([]int64, 0, len(values))
	for _, id := range values {
		if id <= 0 {
			return nil, fmt.Errorf("不正な定義 ID です: %d", id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}

// GalleryImageInput は検証前の画像1件分の入力。
type GalleryImageInput struct {
	URL       string
	SortOrder int
}

// NewGalleryImages は画像 URL 群を検証しつつ VO 化する。重複 URL は先勝ち。
func NewGalleryImages(entries []GalleryImageInput, limit int) ([]GalleryImage, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	if limit > 0 && len(entries) > limit {
		return nil, fmt.Errorf("画像は最大%d件までです", limit)
	}
	seen := make(map[string]struct{}, len(entries))
	result := make([]GalleryImage, 0, len(entries))
	for _, entry := range entries {
		imageURL, err := NewURL(entry.URL)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[imageURL.String()]; ok {
			continue
		}
		seen[imageURL.String()] = struct{}{}
		result = append(result, GalleryImage{URL: imageURL, SortOrder: entry.SortOrder})
	}
	return result, nil
}
