package graph

import "strings"

// TranslateFilter converts the agent-facing filter syntax into an OData
// $filter expression:
//
//	subject:contains "report"  ->  contains(subject, 'report')
//	received:gt 2025-01-01     ->  receivedDateTime gt 2025-01-01
//
// Queries are split on " OR " and then " AND "; each AND-group is
// parenthesized and the groups are joined with " or ". Unrecognized terms
// pass through verbatim so native OData predicates keep working. This is a
// best-effort textual transform, not a parser: there is no validation, and
// malformed terms are passed along for Graph to reject.
func TranslateFilter(query string) string {
	if query == "" {
		return ""
	}

	orParts := strings.Split(query, " OR ")
	groups := make([]string, 0, len(orParts))
	for _, part := range orParts {
		andParts := strings.Split(part, " AND ")
		terms := make([]string, 0, len(andParts))
		for _, sub := range andParts {
			terms = append(terms, translateTerm(sub))
		}
		groups = append(groups, "("+strings.Join(terms, " and ")+")")
	}
	return strings.Join(groups, " or ")
}

func translateTerm(term string) string {
	switch {
	case strings.Contains(term, "subject:contains"):
		// The search term is the first quoted segment
		parts := strings.Split(term, `"`)
		if len(parts) < 2 {
			return term
		}
		return "contains(subject, '" + parts[1] + "')"

	case strings.Contains(term, "received:gt"):
		_, date, found := strings.Cut(term, "received:gt ")
		if !found {
			return term
		}
		return "receivedDateTime gt " + strings.TrimSpace(date)

	default:
		return term
	}
}
