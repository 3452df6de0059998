// Package sqlwrite provides lexical write-intent classification for SQL text.
package sqlwrite

import (
	"strings"
	"unicode"
)

// dmlWriteKeywords are statement keywords that modify table data.
var dmlWriteKeywords = map[string]struct{}{
	"INSERT":   {},
	"UPDATE":   {},
	"DELETE":   {},
	"MERGE":    {},
	"UPSERT":   {},
	"REPLACE":  {},
	"TRUNCATE": {},
}

// ddlKeywords are statement keywords that modify schema objects.
var ddlKeywords = map[string]struct{}{
	"CREATE": {},
	"ALTER":  {},
	"DROP":   {},
	"RENAME": {},
	"GRANT":  {},
	"REVOKE": {},
}

// Analysis is the result of classifying a SQL query.
type Analysis struct {
	// ContainsWrite is true if the query contains at least one
	// data-modifying (DML) or schema-modifying (DDL) operation.
	ContainsWrite bool

	// Keywords lists the write keywords found in the query, in order of appearance.
	Keywords []string
}

// Detector classifies SQL text as read-only or write.
// Classification is lexical: comments and string literals are stripped and the
// remaining keywords are matched against known DML/DDL write operations.
// It deliberately errs on the side of flagging writes.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// AnalyzeQuery classifies the given SQL text.
func (d *Detector) AnalyzeQuery(query string) Analysis {
	var a Analysis
	for _, tok := range tokenize(stripSQL(query)) {
		upper := strings.ToUpper(tok)
		if _, ok := dmlWriteKeywords[upper]; ok {
			a.ContainsWrite = true
			a.Keywords = append(a.Keywords, upper)
			continue
		}
		if _, ok := ddlKeywords[upper]; ok {
			a.ContainsWrite = true
			a.Keywords = append(a.Keywords, upper)
		}
	}
	return a
}

// IsWrite reports whether the query contains any write operation.
func (d *Detector) IsWrite(query string) bool {
	return d.AnalyzeQuery(query).ContainsWrite
}

// stripSQL removes comments and string literals from SQL text so that
// keywords appearing inside them do not trigger false positives.
func stripSQL(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	i := 0
	for i < len(query) {
		switch {
		case strings.HasPrefix(query[i:], "--"):
			// line comment runs to end of line
			if nl := strings.IndexByte(query[i:], '\n'); nl >= 0 {
				i += nl + 1
				b.WriteByte(' ')
			} else {
				i = len(query)
			}
		case strings.HasPrefix(query[i:], "/*"):
			if end := strings.Index(query[i+2:], "*/"); end >= 0 {
				i += end + 4
				b.WriteByte(' ')
			} else {
				i = len(query)
			}
		case query[i] == '\'' || query[i] == '"':
			quote := query[i]
			i++
			for i < len(query) {
				if query[i] == quote {
					// a doubled quote is an escaped quote, not a terminator
					if i+1 < len(query) && query[i+1] == quote {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			b.WriteByte(' ')
		default:
			b.WriteByte(query[i])
			i++
		}
	}
	return b.String()
}

// tokenize splits stripped SQL into bare word tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
