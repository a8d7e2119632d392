package database

import (
	"fmt"
	"strings"
)

// migrate применяет все миграции схемы банка ключевых слов
func (db *BankDB) migrate() error {
	migrations := []func() error{
		db.migrateKeywordsTable,
		db.migrateCampaignTables,
		db.migrateAuditTable,
	}

	for _, migration := range migrations {
		if err := migration(); err != nil {
			return err
		}
	}

	return nil
}

// migrateKeywordsTable создает таблицу ключевых слов с уникальным ключом
// дедупликации (normalized_text, polarity, brand)
func (db *BankDB) migrateKeywordsTable() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS keywords (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			normalized_text TEXT NOT NULL,
			brand TEXT NOT NULL,
			match_type TEXT NOT NULL,
			polarity TEXT NOT NULL,
			intent TEXT NOT NULL DEFAULT 'unknown',
			suggested_bid REAL,
			created_at TEXT NOT NULL,
			UNIQUE(normalized_text, polarity, brand)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_keywords_brand ON keywords(brand)`,
		`CREATE INDEX IF NOT EXISTS idx_keywords_normalized ON keywords(normalized_text)`,
	}

	return db.execMigrations("keywords", queries)
}

// migrateCampaignTables создает таблицы кампаний и групп объявлений
func (db *BankDB) migrateCampaignTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS campaigns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			brand TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ad_groups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			campaign_id INTEGER NOT NULL REFERENCES campaigns(id),
			name TEXT NOT NULL,
			asin TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ad_group_keywords (
			ad_group_id INTEGER NOT NULL REFERENCES ad_groups(id),
			keyword_id TEXT NOT NULL REFERENCES keywords(id),
			PRIMARY KEY (ad_group_id, keyword_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ad_groups_campaign ON ad_groups(campaign_id)`,
	}

	return db.execMigrations("campaigns", queries)
}

// migrateAuditTable создает таблицу журнала аудита
func (db *BankDB) migrateAuditTable() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS audit_trail (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			action TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '{}',
			user TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_trail(action)`,
	}

	return db.execMigrations("audit", queries)
}

// execMigrations выполняет набор запросов миграции, игнорируя уже примененные
func (db *BankDB) execMigrations(name string, queries []string) error {
	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			if strings.Contains(err.Error(), "already exists") ||
				strings.Contains(err.Error(), "duplicate column") {
				continue
			}
			return fmt.Errorf("failed to apply %s migration: %w", name, err)
		}
	}
	return nil
}
