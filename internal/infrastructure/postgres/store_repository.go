package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

// StoreRepository は公開側の店舗読み取りを担う。結合済みレコードを JSON で
// 1列に集約して取り出し、形状の解釈は domain.DecodeRawStore に委ねる。
type StoreRepository struct {
	db *sql.DB
}

// NewStoreRepository は Postgres 接続を束縛した StoreRepository を生成する。
func NewStoreRepository(db *sql.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// rawStoreSelect は店舗1件を RawStore 互換の JSON として組み立てる SELECT 句。
// 単数リレーションは json_build_object(オブジェクト)、多対多は json_agg(配列)
// で返るため、受け側の RelationCell が両形状を吸収する。
func rawStoreSelect() string {
	var b strings.Builder
	b.WriteString("json_build_object(")
	b.WriteString("'id', s.id::text")
	b.WriteString(", 'slug', s.slug")
	b.WriteString(", 'name', s.name")
	b.WriteString(", 'kana', COALESCE(s.kana, '')")
	b.WriteString(", 'status_key', COALESCE(s.status_key, '')")
	b.WriteString(", 'description', COALESCE(s.description, '')")
	b.WriteString(", 'access', COALESCE(s.access, '')")
	b.WriteString(", 'address', COALESCE(s.address, '')")
	b.WriteString(", 'business_hours', COALESCE(s.business_hours, '')")

	for _, col := range singularColumns {
		fmt.Fprintf(&b,
			", '%s', (SELECT json_build_object('definition', json_build_object('key', m.key, 'label', m.label, 'sort_order', m.sort_order)) FROM %s m WHERE m.id = s.%s AND m.is_active)",
			col.jsonField, col.facetTable, col.column)
	}

	for _, rel := range relationTables {
		fmt.Fprintf(&b,
			", '%s', (SELECT COALESCE(json_agg(json_build_object('definition', json_build_object('key', m.key, 'label', m.label, 'sort_order', m.sort_order)) ORDER BY m.sort_order, m.key), '[]'::json) FROM %s j JOIN %s m ON m.id = j.%s AND m.is_active WHERE j.store_id = s.id)",
			rel.jsonField, rel.joinTable, rel.facetTable, rel.idColumn)
	}

	b.WriteString(", 'images', (SELECT COALESCE(json_agg(json_build_object('url', g.url, 'sort_order', g.sort_order) ORDER BY g.sort_order), '[]'::json) FROM store_images g WHERE g.store_id = s.id)")
	b.WriteString(")")
	return b.String()
}

// ListRaw は店舗の生レコード一覧を返す。status が空なら全件。
func (r *StoreRepository) ListRaw(ctx context.Context, status string) ([]domain.RawStore, error) {
	query := "SELECT " + rawStoreSelect() + " FROM stores s"
	args := []any{}
	if status = strings.TrimSpace(status); status != "" {
		query += " WHERE COALESCE(s.status_key, 'normal') = $1"
		args = append(args, status)
	}
	query += " ORDER BY s.kana, s.name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]domain.RawStore, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		raw, err := domain.DecodeRawStore(payload)
		if err != nil {
			return nil, err
		}
		stores = append(stores, raw)
	}
	return stores, rows.Err()
}

// FindRawBySlug は slug で店舗1件を引く。存在しない場合は sql.ErrNoRows を返す。
func (r *StoreRepository) FindRawBySlug(ctx context.Context, slug string) (domain.RawStore, error) {
	query := "SELECT " + rawStoreSelect() + " FROM stores s WHERE s.slug = $1"
	var payload []byte
	if err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(slug)).Scan(&payload); err != nil {
		return domain.RawStore{}, err
	}
	return domain.DecodeRawStore(payload)
}
