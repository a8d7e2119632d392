package database

import (
	"encoding/json"
	"fmt"
	"time"

	"kwbank/models"
)

// LogAction записывает действие в журнал аудита
func (db *BankDB) LogAction(action string, details map[string]string, user string) error {
	if details == nil {
		details = map[string]string{}
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO audit_trail (timestamp, action, details, user) VALUES (?, ?, ?, ?)
	`, time.Now().UTC().Format(time.RFC3339), action, string(payload), user)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return nil
}

// RecentAuditEntries возвращает последние записи журнала, новые первыми
func (db *BankDB) RecentAuditEntries(limit int) ([]models.AuditEntry, error) {
	return db.queryAuditEntries(`
		SELECT id, timestamp, action, details, user
		FROM audit_trail ORDER BY id DESC LIMIT ?
	`, limit)
}

// AuditEntriesByAction возвращает записи журнала по типу действия, новые первыми
func (db *BankDB) AuditEntriesByAction(action string, limit int) ([]models.AuditEntry, error) {
	return db.queryAuditEntries(`
		SELECT id, timestamp, action, details, user
		FROM audit_trail WHERE action = ? ORDER BY id DESC LIMIT ?
	`, action, limit)
}

// queryAuditEntries выполняет запрос и сканирует записи журнала аудита
func (db *BankDB) queryAuditEntries(query string, args ...interface{}) ([]models.AuditEntry, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var entry models.AuditEntry
		var timestamp, details string

		if err := rows.Scan(&entry.ID, &timestamp, &entry.Action, &details, &entry.User); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if parsed, err := time.Parse(time.RFC3339, timestamp); err == nil {
			entry.Timestamp = parsed
		}
		if err := json.Unmarshal([]byte(details), &entry.Details); err != nil {
			entry.Details = map[string]string{}
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
