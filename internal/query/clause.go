package query

import "strings"

// Clause renders the spec's predicate as a SQL WHERE fragment with `?`
// placeholders. The same clause backs both the page query and the count
// query, so pagination metadata always matches the filtered set.
func (s Spec) Clause() (string, []any) {
	var conds []string
	var args []any

	for _, f := range s.Filters {
		switch f.Kind {
		case Exact:
			conds = append(conds, f.Field+" = ?")
			args = append(args, f.Values[0])
		case Numeric:
			conds = append(conds, f.Field+" = ?")
			args = append(args, f.Number)
		case Contains:
			conds = append(conds, "LOWER("+f.Field+") LIKE ?")
			args = append(args, "%"+strings.ToLower(f.Values[0])+"%")
		case In:
			conds = append(conds, f.Field+" IN ("+placeholders(len(f.Values))+")")
			for _, v := range f.Values {
				args = append(args, v)
			}
		case InFold:
			conds = append(conds, "LOWER("+f.Field+") IN ("+placeholders(len(f.Values))+")")
			for _, v := range f.Values {
				args = append(args, strings.ToLower(v))
			}
		case AnyContains:
			sub := make([]string, len(f.Values))
			for i, v := range f.Values {
				sub[i] = "LOWER(" + f.Field + ") LIKE ?"
				args = append(args, "%"+strings.ToLower(v)+"%")
			}
			conds = append(conds, "("+strings.Join(sub, " OR ")+")")
		}
	}

	for _, r := range s.Ranges {
		if r.Min != nil {
			conds = append(conds, r.Field+" >= ?")
			args = append(args, *r.Min)
		}
		if r.Max != nil {
			conds = append(conds, r.Field+" <= ?")
			args = append(args, *r.Max)
		}
	}

	if s.CreatedAfter != "" {
		conds = append(conds, "created_at >= ?")
		args = append(args, s.CreatedAfter)
	}
	if s.ExcludeID != "" {
		conds = append(conds, "id != ?")
		args = append(args, s.ExcludeID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// OrderClause renders ORDER BY from the whitelisted sort column.
func (s Spec) OrderClause() string {
	dir := " ASC"
	if s.Sort.Desc {
		dir = " DESC"
	}
	return " ORDER BY " + s.Sort.Field + dir
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
