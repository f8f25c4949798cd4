package dataset

import (
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

// LoadWarehouse loads tableName through the package-level cache.
func LoadWarehouse(db *gorm.DB, tableName string) (*Table, error) {
	return defaultLoader.LoadWarehouse(db, tableName)
}

// LoadWarehouse reads a whole table from the analytics database (ClickHouse
// over the MySQL protocol) and builds a Table from it. The result is cached
// under "warehouse:<table>".
func (l *Loader) LoadWarehouse(db *gorm.DB, tableName string) (*Table, error) {
	key := "warehouse:" + tableName

	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.cache[key]; ok {
		return t, nil
	}

	if !tableNamePattern.MatchString(tableName) {
		return nil, fmt.Errorf("%w: invalid table name %q", models.ErrDataUnavailable, tableName)
	}

	l.reads++
	headers, rows, err := queryRows(db, tableName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, key, err)
	}
	t, err := NewTable(key, ResolveHeaders(headers), rows)
	if err != nil {
		return nil, err
	}
	log.Printf("dataset loaded: %s, %d rows", key, t.Len())
	l.store(key, t)
	return t, nil
}

func queryRows(db *gorm.DB, tableName string) ([]string, [][]string, error) {
	rows, err := db.Raw(fmt.Sprintf("SELECT * FROM %s", quoteTableName(tableName))).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(headers))
		dest := make([]interface{}, len(headers))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		record := make([]string, len(headers))
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			}
		}
		result = append(result, record)
	}
	return headers, result, rows.Err()
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)

// quoteTableName backtick-quotes each part of a db.table name.
func quoteTableName(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	return strings.Join(parts, ".")
}
