package postgres

import (
	"strconv"
	"strings"
)

// maxBatchRows keeps multi-row statements well below the Postgres limit of
// 65535 bind parameters.
const maxBatchRows = 500

// valuesClause renders "($1, $2), ($3, $4)" for rows*cols placeholders.
func valuesClause(rows, cols int) string {
	var sb strings.Builder
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(n))
			n++
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// chunks splits n items into [start, end) ranges of at most size.
func chunks(n, size int) [][2]int {
	var out [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// columnList renders "t.id AS \"tweet.id\", ..." for sqlx nested struct scans.
func columnList(alias, prefix string, cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = alias + "." + c + ` AS "` + prefix + "." + c + `"`
	}
	return strings.Join(parts, ", ")
}
