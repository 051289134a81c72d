package appwrite

import "encoding/json"

// Appwrite queries travel as JSON strings in the queries[] parameter, one
// string per clause.

func queryJSON(method, attribute string, values []any) string {
	clause := map[string]any{"method": method}
	if attribute != "" {
		clause["attribute"] = attribute
	}
	if values != nil {
		clause["values"] = values
	}
	raw, _ := json.Marshal(clause)
	return string(raw)
}

func queryEqual(attribute string, value any) string {
	return queryJSON("equal", attribute, []any{value})
}

func queryOrderAsc(attribute string) string {
	return queryJSON("orderAsc", attribute, nil)
}

func queryOrderDesc(attribute string) string {
	return queryJSON("orderDesc", attribute, nil)
}
