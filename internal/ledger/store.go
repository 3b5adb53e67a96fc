package ledger

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound 指定的記錄不存在
var ErrNotFound = sql.ErrNoRows

// Store 負碳記錄的 SQLite 存儲層
type Store struct {
	db *sql.DB
}

// Open 開啟（必要時創建）負碳記錄數據庫
// 首次建庫時寫入預設行，之後完全以庫中內容為準
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite 建議單連接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := s.seedDefaults(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}

	return s, nil
}

// initSchema 初始化數據庫結構
func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// seedDefaults 空庫時寫入預設負碳記錄
func (s *Store) seedDefaults() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM offset_rows`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	defaults := []Row{
		{Kind: KindSelfUse, Category: "太陽能光電", Quantity: 1000, Unit: "度電(kWh)"},
		{Kind: KindSelfUse, Category: "風力發電", Quantity: 0, Unit: "度電(kWh)"},
		{Kind: KindSold, Category: "太陽能光電", Quantity: 1000, Unit: "度電(kWh)"},
		{Kind: KindSold, Category: "風力發電", Quantity: 0, Unit: "度電(kWh)"},
		{Kind: KindTreeSink, Category: "針葉樹", Quantity: 1000, Unit: "kgCO2e"},
		{Kind: KindTreeSink, Category: "闊葉樹", Quantity: 500, Unit: "kgCO2e"},
		{Kind: KindTreeSink, Category: "棕梠科", Quantity: 20, Unit: "kgCO2e"},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, r := range defaults {
		if _, err := tx.Exec(
			`INSERT INTO offset_rows (id, kind, category, quantity, unit) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), string(r.Kind), r.Category, r.Quantity, r.Unit,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// List 按類型與創建順序列出全部記錄
func (s *Store) List() ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT id, kind, category, quantity, unit FROM offset_rows ORDER BY kind, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var kind string
		if err := rows.Scan(&r.ID, &kind, &r.Category, &r.Quantity, &r.Unit); err != nil {
			return nil, err
		}
		r.Kind = Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Add 新增一條記錄，返回帶 ID 的完整行
func (s *Store) Add(kind Kind, category string, quantity float64, unit string) (Row, error) {
	if err := validateRow(kind, quantity); err != nil {
		return Row{}, err
	}
	r := Row{
		ID:       uuid.New().String(),
		Kind:     kind,
		Category: category,
		Quantity: quantity,
		Unit:     unit,
	}
	_, err := s.db.Exec(
		`INSERT INTO offset_rows (id, kind, category, quantity, unit) VALUES (?, ?, ?, ?, ?)`,
		r.ID, string(r.Kind), r.Category, r.Quantity, r.Unit)
	if err != nil {
		return Row{}, err
	}
	return r, nil
}

// UpdateQuantity 更新記錄的數量
func (s *Store) UpdateQuantity(id string, quantity float64) error {
	var kind string
	if err := s.db.QueryRow(`SELECT kind FROM offset_rows WHERE id = ?`, id).Scan(&kind); err != nil {
		return err
	}
	if err := validateRow(Kind(kind), quantity); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`UPDATE offset_rows SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		quantity, id)
	return err
}

// UpdateCategory 更新記錄的類別名稱
func (s *Store) UpdateCategory(id, category string) error {
	res, err := s.db.Exec(
		`UPDATE offset_rows SET category = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		category, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 刪除一條記錄
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM offset_rows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close 關閉數據庫連接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
