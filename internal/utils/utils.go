package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

var ErrInvalidOperator = errors.New("invalid filter operator")

var searchOperators = map[string]bool{
	"=":    true,
	"!=":   true,
	"<":    true,
	"<=":   true,
	">":    true,
	">=":   true,
	"LIKE": true,
}

func replaceLastComma(str string, replacement string) string {
	lastCommaIndex := strings.LastIndex(str, ",")
	if lastCommaIndex != -1 {
		str = str[:lastCommaIndex] + replacement + str[lastCommaIndex+1:]
	}

	return str
}

// Columns lists the json tags of a struct pointer's fields, in order.
func Columns(i any) []string {
	typ := reflect.TypeOf(i).Elem()

	columns := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		columns = append(columns, typ.Field(i).Tag.Get("json"))
	}
	return columns
}

func BuildInsertQuery(i any) string {
	column := "("
	values := " VALUES ("

	for _, tag := range Columns(i) {
		column += fmt.Sprintf("%s,", tag)
		values += "?,"
	}

	column = replaceLastComma(column, ")")
	values = replaceLastComma(values, ")")

	return column + values
}

// BuildSearchQuery selects columns from tableName, ANDing every filter
// query. Column names are not checked here; callers own that list.
func BuildSearchQuery(tableName string, columns []string, filter types.MySQLFilter) (string, []any, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(columns, ", "), tableName)
	var values []any
	for idx, q := range filter.Query {
		op := strings.ToUpper(strings.TrimSpace(q.Op))
		if !searchOperators[op] {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidOperator, q.Op)
		}

		if idx == 0 {
			query += " WHERE "
		}

		query += fmt.Sprintf("%s %s ?", q.Column, op)
		values = append(values, q.Query)

		if idx < len(filter.Query)-1 {
			query += " AND "
		}
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, values, nil
}
