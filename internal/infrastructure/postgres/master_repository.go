package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

// MasterRepository はファセットマスタとエリア階層の読み取りを担う。
// マスタは管理ツール側で編集されるため、このアプリケーションからは読み取り専用。
type MasterRepository struct {
	db *sql.DB
}

// NewMasterRepository は Postgres 接続を束縛した MasterRepository を生成する。
func NewMasterRepository(db *sql.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// ListDefinitions は指定テーブルの有効な定義を sort_order 昇順で返す。
// テーブル名は固定カタログに含まれるもののみ受け付ける。
func (r *MasterRepository) ListDefinitions(ctx context.Context, table string) ([]domain.CategoryDefinition, error) {
	if _, ok := domain.FacetByTable(table); !ok {
		return nil, fmt.Errorf("未知のマスタテーブルです: %s", table)
	}

	query := fmt.Sprintf("SELECT key, label, sort_order FROM %s WHERE is_active ORDER BY sort_order, key", table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	definitions := make([]domain.CategoryDefinition, 0)
	for rows.Next() {
		var (
			key       string
			label     string
			sortOrder sql.NullInt64
		)
		if err := rows.Scan(&key, &label, &sortOrder); err != nil {
			return nil, err
		}
		definitions = append(definitions, domain.CategoryDefinition{
			Key:       domain.NamespacedKey(table, key),
			Label:     label,
			SortOrder: int(sortOrder.Int64),
		})
	}
	return definitions, rows.Err()
}

// ListCities は有効な市区町村を都道府県キー付きで返す。
func (r *MasterRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	query := `SELECT c.key, c.label, c.sort_order, p.key
		FROM cities c
		JOIN prefectures p ON p.id = c.prefecture_id
		WHERE c.is_active AND p.is_active
		ORDER BY p.sort_order, c.sort_order, c.key`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var (
			key           string
			label         string
			sortOrder     sql.NullInt64
			prefectureKey string
		)
		if err := rows.Scan(&key, &label, &sortOrder, &prefectureKey); err != nil {
			return nil, err
		}
		cities = append(cities, domain.City{
			Key:           domain.NamespacedKey(domain.TableCities, key),
			Label:         label,
			SortOrder:     int(sortOrder.Int64),
			PrefectureKey: domain.NamespacedKey(domain.TablePrefectures, prefectureKey),
		})
	}
	return cities, rows.Err()
}
