package models

import "time"

// AdGroup группа объявлений внутри кампании, привязанная к ASIN
type AdGroup struct {
	Name             string     `json:"name"`
	ASIN             string     `json:"asin"`
	Keywords         []*Keyword `json:"keywords"`
	NegativeKeywords []*Keyword `json:"negative_keywords"`
}

// AddKeyword добавляет ключевое слово в группу с учетом полярности
func (ag *AdGroup) AddKeyword(kw *Keyword) {
	if kw.Polarity == PolarityNegative {
		ag.NegativeKeywords = append(ag.NegativeKeywords, kw)
		return
	}
	ag.Keywords = append(ag.Keywords, kw)
}

// Campaign рекламная кампания Amazon PPC
type Campaign struct {
	Name      string     `json:"name"`
	Brand     string     `json:"brand"`
	AdGroups  []*AdGroup `json:"ad_groups"`
	CreatedAt time.Time  `json:"created_at"`
}

// AddAdGroup добавляет группу объявлений в кампанию
func (c *Campaign) AddAdGroup(ag *AdGroup) {
	c.AdGroups = append(c.AdGroups, ag)
}

// AuditEntry запись журнала аудита операций над банком ключевых слов
type AuditEntry struct {
	ID        int               `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	Details   map[string]string `json:"details"`
	User      string            `json:"user"`
}
