package filter

import (
	"fmt"
	"strings"

	"github.com/jerry-enebeli/runboard/model"
)

// Preview renders the human readable query for conditions over table.
// Values are quoted but never escaped; the result is for display only.
func Preview(table string, conditions []model.FilterCondition) string {
	stmt := "SELECT * FROM " + table
	if len(conditions) == 0 {
		return stmt
	}
	return stmt + " WHERE " + WhereClause(conditions)
}

// WhereClause joins condition fragments left to right. Each condition after the first is
// joined to its predecessor by its own logic.
func WhereClause(conditions []model.FilterCondition) string {
	var b strings.Builder
	for i, c := range conditions {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(string(ResolveLogic(c.Logic)))
			b.WriteString(" ")
		}
		b.WriteString(fragment(c))
	}
	return b.String()
}

func fragment(c model.FilterCondition) string {
	return fmt.Sprintf("%s %s '%s'", c.Field, c.Operator, c.Value)
}
