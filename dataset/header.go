// header.go
package dataset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

const utf8BOM = "\ufeff"

// headerAliases maps normalized English headers of the public IBM HR
// attrition dataset onto the canonical Korean column names.
var headerAliases = map[string]string{
	"attrition":               models.FieldAttrition,
	"department":              models.FieldDepartment,
	"yearsatcompany":          models.FieldTenureYears,
	"distancefromhome":        models.FieldCommute,
	"environmentsatisfaction": models.FieldSatisfaction,
	"percentsalaryhike":       models.FieldRaisePct,
	"overtime":                models.FieldOvertime,
	"age":                     models.FieldAge,
	"employeecount":           models.FieldHeadcount,
	"over18":                  models.FieldAdult,
}

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// ResolveHeaders cleans a raw header row: trims whitespace and a leading
// BOM, maps known aliases to canonical names and de-duplicates the result.
func ResolveHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if h == "" {
			h = generateColumnName(i)
		}
		if canonical, ok := headerAliases[normalizeAlias(h)]; ok {
			h = canonical
		}
		headers[i] = h
	}
	return ValidateHeaders(headers)
}

func normalizeAlias(header string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(header), "")
}

// generateColumnName создает имя столбца по индексу
func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders проверяет и исправляет дубликаты в заголовках
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]bool)
	result := make([]string, len(headers))

	for i, header := range headers {
		candidate := header
		for counter := 1; seen[candidate]; counter++ {
			candidate = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[candidate] = true
		result[i] = candidate
	}

	return result
}

// sniffDelimiter picks the separator that splits the header line into the
// most fields.
func sniffDelimiter(headerLine string) rune {
	best, bestCount := DefaultSeparator, strings.Count(headerLine, string(DefaultSeparator))
	for _, sep := range []rune{';', '\t'} {
		if n := strings.Count(headerLine, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}
