package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rickygarrix/otonavi-sub000/internal/admin/application"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
)

// AdminStoreRepository は管理・インポート経路の店舗書き込みを担う。
// リレーションは delete+insert の全置換で同期し、失敗したステップを
// StepError で呼び出し元に伝える。スカラー行の書き込みが先に成功していても
// ロールバックは行わない。
type AdminStoreRepository struct {
	db *sql.DB
}

// NewAdminStoreRepository は Postgres 接続を束縛した AdminStoreRepository を生成する。
func NewAdminStoreRepository(db *sql.DB) *AdminStoreRepository {
	return &AdminStoreRepository{db: db}
}

const storeScalarColumns = "id, slug, name, kana, status_key, description, access, address, business_hours, prefecture_id, city_id, venue_type_id, price_range_id, store_size_id"

// storeSelectColumns は読み取り用の列リスト。書き込み側の列リストに
// サーバー採番のタイムスタンプを加えたもの。
const storeSelectColumns = storeScalarColumns + ", created_at, updated_at"

// Insert は slug の重複チェックを行った上で店舗を新規作成し、リレーションを同期する。
func (r *AdminStoreRepository) Insert(ctx context.Context, store *admindomain.StoreRecord) error {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM stores WHERE slug = $1", store.Slug.String()).Scan(&exists)
	if err == nil {
		return application.NewStepError("stores:duplicate_check", fmt.Errorf("slug %s は既に使われています", store.Slug))
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return application.NewStepError("stores:duplicate_check", err)
	}

	query := "INSERT INTO stores (" + storeScalarColumns + ", created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())"
	if _, err := r.db.ExecContext(ctx, query, storeScalarArgs(store)...); err != nil {
		return application.NewStepError("stores:insert", err)
	}

	return r.syncRelations(ctx, store)
}

// Upsert はスカラー行を ID 競合時の更新付きで書き込み、リレーションを同期する。
func (r *AdminStoreRepository) Upsert(ctx context.Context, store *admindomain.StoreRecord) error {
	query := "INSERT INTO stores (" + storeScalarColumns + ", created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())" +
		" ON CONFLICT (id) DO UPDATE SET slug = EXCLUDED.slug, name = EXCLUDED.name, kana = EXCLUDED.kana, status_key = EXCLUDED.status_key," +
		" description = EXCLUDED.description, access = EXCLUDED.access, address = EXCLUDED.address, business_hours = EXCLUDED.business_hours," +
		" prefecture_id = EXCLUDED.prefecture_id, city_id = EXCLUDED.city_id, venue_type_id = EXCLUDED.venue_type_id," +
		" price_range_id = EXCLUDED.price_range_id, store_size_id = EXCLUDED.store_size_id, updated_at = now()"
	if _, err := r.db.ExecContext(ctx, query, storeScalarArgs(store)...); err != nil {
		return application.NewStepError("stores:upsert", err)
	}

	return r.syncRelations(ctx, store)
}

// syncRelations はコマンドに含まれる各ファセットの中間テーブルを全置換する。
// 削除→再挿入の組なので、成功後に古い値が残ることはない。途中で失敗した
// テーブル以降は適用されない(既知の制限として呼び出し元が突き合わせる)。
func (r *AdminStoreRepository) syncRelations(ctx context.Context, store *admindomain.StoreRecord) error {
	for _, rel := range relationTables {
		ids, ok := store.Relations[rel.facetTable]
		if !ok {
			continue
		}

		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE store_id = $1", rel.joinTable)
		if _, err := r.db.ExecContext(ctx, deleteQuery, store.ID); err != nil {
			return application.NewStepError(rel.joinTable+":delete", err)
		}

		insertQuery := fmt.Sprintf("INSERT INTO %s (store_id, %s) VALUES ($1, $2)", rel.joinTable, rel.idColumn)
		for _, id := range ids {
			if _, err := r.db.ExecContext(ctx, insertQuery, store.ID, id); err != nil {
				return application.NewStepError(rel.joinTable+":insert", err)
			}
		}
	}
	return nil
}

func storeScalarArgs(store *admindomain.StoreRecord) []any {
	return []any{
		store.ID,
		store.Slug.String(),
		store.Name,
		strings.TrimSpace(store.Kana),
		store.StatusKey.String(),
		store.Description,
		store.Access,
		store.Address,
		store.BusinessHours,
		store.PrefectureID,
		store.CityID,
		store.VenueTypeID,
		store.PriceRangeID,
		store.StoreSizeID,
	}
}

// Find は管理画面向けの店舗一覧を返す。リレーション ID は展開しない。
func (r *AdminStoreRepository) Find(ctx context.Context, filter application.StoreFilter, paging application.Paging) ([]admindomain.StoreRecord, error) {
	query := "SELECT " + storeSelectColumns + " FROM stores"
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, "%"+keyword+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR kana ILIKE $%d)", len(args), len(args)))
	}
	if filter.PrefectureID != nil {
		args = append(args, *filter.PrefectureID)
		clauses = append(clauses, fmt.Sprintf("prefecture_id = $%d", len(args)))
	}
	if status := strings.TrimSpace(filter.StatusKey); status != "" {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf("COALESCE(status_key, 'normal') = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	limit := paging.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY updated_at DESC, name LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]admindomain.StoreRecord, 0)
	for rows.Next() {
		store, err := scanStoreRecord(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

// FindByID は店舗1件をリレーション ID 付きで返す。存在しなければ sql.ErrNoRows。
func (r *AdminStoreRepository) FindByID(ctx context.Context, id string) (*admindomain.StoreRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+storeSelectColumns+" FROM stores WHERE id = $1", strings.TrimSpace(id))
	store, err := scanStoreRecord(row)
	if err != nil {
		return nil, err
	}

	store.Relations = make(map[string][]int64, len(relationTables))
	for _, rel := range relationTables {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE store_id = $1 ORDER BY %s", rel.idColumn, rel.joinTable, rel.idColumn)
		rows, err := r.db.QueryContext(ctx, query, store.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0)
		for rows.Next() {
			var relationID int64
			if err := rows.Scan(&relationID); err != nil {
				rows.Close()
				return nil, err
			}
			ids = append(ids, relationID)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
		store.Relations[rel.facetTable] = ids
	}
	return &store, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoreRecord(row rowScanner) (admindomain.StoreRecord, error) {
	var (
		store     admindomain.StoreRecord
		slug      string
		kana      sql.NullString
		statusKey sql.NullString
		desc      sql.NullString
		access    sql.NullString
		address   sql.NullString
		hours     sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&store.ID,
		&slug,
		&store.Name,
		&kana,
		&statusKey,
		&desc,
		&access,
		&address,
		&hours,
		&store.PrefectureID,
		&store.CityID,
		&store.VenueTypeID,
		&store.PriceRangeID,
		&store.StoreSizeID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return admindomain.StoreRecord{}, err
	}

	store.Slug = admindomain.Slug(slug)
	store.Kana = kana.String
	store.Description = desc.String
	store.Access = access.String
	store.Address = address.String
	store.BusinessHours = hours.String
	store.CreatedAt = createdAt.Time
	store.UpdatedAt = updatedAt.Time
	status, err := admindomain.NewStatusKey(statusKey.String)
	if err != nil {
		status = admindomain.StatusKey("normal")
	}
	store.StatusKey = status
	return store, nil
}
