package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"kwbank/models"
)

// BankDB обертка для работы с базой данных банка ключевых слов
type BankDB struct {
	conn *sql.DB
}

// NewBankDB создает подключение к базе банка ключевых слов и применяет миграции
func NewBankDB(dbPath string) (*BankDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open bank database: %w", err)
	}

	// Для in-memory SQLite требуется ровно одно соединение, иначе каждое
	// новое соединение получает пустую БД без таблиц
	if isInMemoryBankDB(dbPath) {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	} else {
		// SQLite плохо переносит большое количество одновременных соединений
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(3)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping bank database: %w", err)
	}

	db := &BankDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate bank database: %w", err)
	}

	return db, nil
}

// isInMemoryBankDB определяет, что путь относится к in-memory SQLite
func isInMemoryBankDB(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// Close закрывает соединение с базой
func (db *BankDB) Close() error {
	return db.conn.Close()
}

// InsertKeyword вставляет одну запись ключевого слова
func (db *BankDB) InsertKeyword(kw *models.Keyword) error {
	return insertKeywordTx(db.conn, kw)
}

// insertKeywordTx вставляет запись через любой исполнитель (соединение или транзакцию)
func insertKeywordTx(execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}, kw *models.Keyword) error {
	var bid interface{}
	if kw.SuggestedBid != nil {
		bid = *kw.SuggestedBid
	}

	_, err := execer.Exec(`
		INSERT INTO keywords (id, text, normalized_text, brand, match_type, polarity, intent, suggested_bid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, kw.ID, kw.Text, kw.NormalizedText, kw.Brand, string(kw.MatchType), string(kw.Polarity), string(kw.Intent), bid, kw.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert keyword %q: %w", kw.Text, err)
	}
	return nil
}

// ImportKeywords импортирует записи с точной дедупликацией по ключу
// (normalized_text, polarity, brand). Возвращает количество добавленных
// и отклоненных как дубликаты записей.
func (db *BankDB) ImportKeywords(keywords []*models.Keyword) (added, duplicates int, err error) {
	existing, err := db.AllKeywords()
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, kw := range existing {
		seen[kw.DedupeKey()] = true
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, kw := range keywords {
		key := kw.DedupeKey()
		if seen[key] {
			duplicates++
			continue
		}
		if err := insertKeywordTx(tx, kw); err != nil {
			return 0, 0, err
		}
		seen[key] = true
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit import transaction: %w", err)
	}

	return added, duplicates, nil
}

// UpdateKeywordEnrichment сохраняет результат обогащения записи
func (db *BankDB) UpdateKeywordEnrichment(kw *models.Keyword) error {
	var bid interface{}
	if kw.SuggestedBid != nil {
		bid = *kw.SuggestedBid
	}

	_, err := db.conn.Exec(`
		UPDATE keywords SET intent = ?, suggested_bid = ? WHERE id = ?
	`, string(kw.Intent), bid, kw.ID)
	if err != nil {
		return fmt.Errorf("failed to update keyword enrichment: %w", err)
	}
	return nil
}

// AllKeywords возвращает все записи банка в порядке создания
func (db *BankDB) AllKeywords() ([]*models.Keyword, error) {
	return db.queryKeywords(`
		SELECT id, text, normalized_text, brand, match_type, polarity, intent, suggested_bid, created_at
		FROM keywords ORDER BY rowid
	`)
}

// KeywordsByBrand возвращает записи одного бренда в порядке создания
func (db *BankDB) KeywordsByBrand(brand string) ([]*models.Keyword, error) {
	return db.queryKeywords(`
		SELECT id, text, normalized_text, brand, match_type, polarity, intent, suggested_bid, created_at
		FROM keywords WHERE brand = ? ORDER BY rowid
	`, brand)
}

// queryKeywords выполняет запрос и сканирует записи ключевых слов
func (db *BankDB) queryKeywords(query string, args ...interface{}) ([]*models.Keyword, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}
	defer rows.Close()

	keywords := []*models.Keyword{}
	for rows.Next() {
		kw := &models.Keyword{}
		var matchType, polarity, intent, createdAt string
		var bid sql.NullFloat64

		if err := rows.Scan(&kw.ID, &kw.Text, &kw.NormalizedText, &kw.Brand, &matchType, &polarity, &intent, &bid, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan keyword row: %w", err)
		}

		kw.MatchType = models.MatchType(matchType)
		kw.Polarity = models.Polarity(polarity)
		kw.Intent = models.Intent(intent)
		if bid.Valid {
			value := bid.Float64
			kw.SuggestedBid = &value
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			kw.CreatedAt = parsed
		}

		keywords = append(keywords, kw)
	}

	return keywords, rows.Err()
}

// Brands возвращает отсортированный список уникальных брендов
func (db *BankDB) Brands() ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT brand FROM keywords ORDER BY brand`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := []string{}
	for rows.Next() {
		var brand string
		if err := rows.Scan(&brand); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	return brands, rows.Err()
}

// BankStats сводная статистика банка ключевых слов
type BankStats struct {
	TotalKeywords  int
	Positive       int
	Negative       int
	TotalCampaigns int
	ByBrand        map[string]int
}

// Stats собирает сводную статистику банка
func (db *BankDB) Stats() (*BankStats, error) {
	stats := &BankStats{ByBrand: make(map[string]int)}

	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN polarity = 'positive' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN polarity = 'negative' THEN 1 ELSE 0 END), 0)
		FROM keywords
	`).Scan(&stats.TotalKeywords, &stats.Positive, &stats.Negative)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword stats: %w", err)
	}

	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM campaigns`).Scan(&stats.TotalCampaigns); err != nil {
		return nil, fmt.Errorf("failed to query campaign stats: %w", err)
	}

	rows, err := db.conn.Query(`SELECT brand, COUNT(*) FROM keywords GROUP BY brand`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brand stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var brand string
		var count int
		if err := rows.Scan(&brand, &count); err != nil {
			return nil, fmt.Errorf("failed to scan brand stats: %w", err)
		}
		stats.ByBrand[brand] = count
	}

	return stats, rows.Err()
}

// SaveCampaign сохраняет кампанию с группами объявлений и связями ключевых слов
func (db *BankDB) SaveCampaign(campaign *models.Campaign) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin campaign transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO campaigns (name, brand, created_at) VALUES (?, ?, ?)
	`, campaign.Name, campaign.Brand, campaign.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert campaign %q: %w", campaign.Name, err)
	}

	campaignID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to resolve campaign id: %w", err)
	}

	for _, adGroup := range campaign.AdGroups {
		groupResult, err := tx.Exec(`
			INSERT INTO ad_groups (campaign_id, name, asin) VALUES (?, ?, ?)
		`, campaignID, adGroup.Name, adGroup.ASIN)
		if err != nil {
			return fmt.Errorf("failed to insert ad group %q: %w", adGroup.Name, err)
		}

		adGroupID, err := groupResult.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to resolve ad group id: %w", err)
		}

		for _, kw := range adGroup.Keywords {
			if _, err := tx.Exec(`INSERT INTO ad_group_keywords (ad_group_id, keyword_id) VALUES (?, ?)`, adGroupID, kw.ID); err != nil {
				return fmt.Errorf("failed to link keyword to ad group: %w", err)
			}
		}
		for _, kw := range adGroup.NegativeKeywords {
			if _, err := tx.Exec(`INSERT INTO ad_group_keywords (ad_group_id, keyword_id) VALUES (?, ?)`, adGroupID, kw.ID); err != nil {
				return fmt.Errorf("failed to link negative keyword to ad group: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit campaign transaction: %w", err)
	}

	return nil
}

// CampaignSummary краткое описание кампании для списков
type CampaignSummary struct {
	Name      string
	Brand     string
	AdGroups  int
	CreatedAt time.Time
}

// Campaigns возвращает краткие описания кампаний; пустой бренд — все кампании
func (db *BankDB) Campaigns(brand string) ([]CampaignSummary, error) {
	query := `
		SELECT c.name, c.brand, COUNT(g.id), c.created_at
		FROM campaigns c LEFT JOIN ad_groups g ON g.campaign_id = c.id
	`
	args := []interface{}{}
	if brand != "" {
		query += ` WHERE c.brand = ?`
		args = append(args, brand)
	}
	query += ` GROUP BY c.id ORDER BY c.id`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []CampaignSummary{}
	for rows.Next() {
		var summary CampaignSummary
		var createdAt string
		if err := rows.Scan(&summary.Name, &summary.Brand, &summary.AdGroups, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			summary.CreatedAt = parsed
		}
		campaigns = append(campaigns, summary)
	}

	return campaigns, rows.Err()
}
