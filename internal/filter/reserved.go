package filter

import "strings"

var reservedParams = map[string]bool{
	"page":          true,
	"rows_per_page": true,
	"per_page":      true,
	"limit":         true,
	"offset":        true,
	"logic":         true,
}

func isReservedParam(param string) bool {
	return reservedParams[strings.ToLower(param)]
}
