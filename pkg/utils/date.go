package utils

import "time"

const compactDateLayout = "20060102"

// ParseCompactDate converte uma data no formato YYYYMMDD (formato usado na
// configuração de dateRange) para time.Time
func ParseCompactDate(dateStr string) (time.Time, error) {
	return time.Parse(compactDateLayout, dateStr)
}
