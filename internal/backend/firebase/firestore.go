package firebase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/teephopdisawas/lifehub/internal/backend"
)

// Firestore's REST API wraps every field in a typed value envelope and
// addresses documents by full resource name. This file holds the value
// codec, the write/query plumbing and the timestamp normalization shared by
// all entity operations.

type fsDocument struct {
	Name       string                    `json:"name"`
	Fields     map[string]map[string]any `json:"fields"`
	CreateTime string                    `json:"createTime"`
	UpdateTime string                    `json:"updateTime"`
}

func (c *client) documentsBase() string {
	return fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents", c.firestoreURL, c.projectID)
}

func (c *client) documentName(collection, id string) string {
	return fmt.Sprintf("projects/%s/databases/(default)/documents/%s/%s", c.projectID, collection, id)
}

// docID extracts the document id from a full resource name.
func docID(name string) string {
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return name
	}
	return name[idx+1:]
}

// encodeValue wraps a Go value in Firestore's typed envelope.
func encodeValue(v any) map[string]any {
	switch t := v.(type) {
	case string:
		return map[string]any{"stringValue": t}
	case bool:
		return map[string]any{"booleanValue": t}
	case int:
		return map[string]any{"integerValue": strconv.Itoa(t)}
	case int64:
		return map[string]any{"integerValue": strconv.FormatInt(t, 10)}
	case float64:
		return map[string]any{"doubleValue": t}
	case nil:
		return map[string]any{"nullValue": nil}
	default:
		return map[string]any{"stringValue": fmt.Sprintf("%v", t)}
	}
}

func encodeFields(fields map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(fields))
	for k, v := range fields {
		out[k] = encodeValue(v)
	}
	return out
}

// decodeValue unwraps a typed envelope back into a plain Go value.
// Timestamps stay in whatever shape the store sent; toISO settles them.
func decodeValue(v map[string]any) any {
	if raw, ok := v["stringValue"]; ok {
		return raw
	}
	if raw, ok := v["booleanValue"]; ok {
		return raw
	}
	if raw, ok := v["integerValue"]; ok {
		if s, ok := raw.(string); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}
		return raw
	}
	if raw, ok := v["doubleValue"]; ok {
		return raw
	}
	if raw, ok := v["timestampValue"]; ok {
		return raw
	}
	if _, ok := v["nullValue"]; ok {
		return nil
	}
	if raw, ok := v["mapValue"]; ok {
		if m, ok := raw.(map[string]any); ok {
			if fields, ok := m["fields"].(map[string]any); ok {
				out := make(map[string]any, len(fields))
				for k, fv := range fields {
					if fm, ok := fv.(map[string]any); ok {
						out[k] = decodeValue(fm)
					}
				}
				return out
			}
		}
	}
	return nil
}

func decodeFields(fields map[string]map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = decodeValue(v)
	}
	return out
}

// toISO settles any timestamp shape Firestore can hand back into an
// ISO-8601 string: an RFC3339 timestampValue, a {seconds,nanos} object, or
// nothing at all when a server-timestamp sentinel has not resolved yet, in
// which case the local clock stands in.
func toISO(v any) string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case map[string]any:
		sec, secOK := asInt64(t["seconds"])
		if !secOK {
			sec, secOK = asInt64(t["_seconds"])
		}
		if secOK {
			nanos, _ := asInt64(t["nanos"])
			return time.Unix(sec, nanos).UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// commitWrite stages a single document write, optionally masked to specific
// fields, with server-timestamp transforms for tsFields. The commit
// acknowledgement does not carry resolved transform values, so callers must
// read the document back afterwards.
func (c *client) commitWrite(ctx context.Context, collection, id string, fields map[string]any, mask []string, tsFields []string) error {
	write := map[string]any{
		"update": map[string]any{
			"name":   c.documentName(collection, id),
			"fields": encodeFields(fields),
		},
	}
	// A nil mask means a full create-style write. A non-nil mask, even an
	// empty one, restricts the write so an update can never clobber fields
	// it does not name.
	if mask != nil {
		write["updateMask"] = map[string]any{"fieldPaths": mask}
		write["currentDocument"] = map[string]any{"exists": true}
	}
	if len(tsFields) > 0 {
		transforms := make([]map[string]any, 0, len(tsFields))
		for _, f := range tsFields {
			transforms = append(transforms, map[string]any{
				"fieldPath":        f,
				"setToServerValue": "REQUEST_TIME",
			})
		}
		write["updateTransforms"] = transforms
	}

	body := map[string]any{"writes": []any{write}}
	return c.postJSON(ctx, c.documentsBase()+":commit", body, nil)
}

func (c *client) getDocument(ctx context.Context, collection, id string) (*fsDocument, error) {
	u := c.documentsBase() + "/" + collection + "/" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, backend.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var doc fsDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

func (c *client) deleteDocument(ctx context.Context, collection, id string) error {
	u := c.documentsBase() + "/" + collection + "/" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

type queryOrder struct {
	field     string
	direction string // ASCENDING or DESCENDING
}

// runQuery composes an equality filter and ordering into a structured query
// against one collection, the REST analogue of where + orderBy.
func (c *client) runQuery(ctx context.Context, collection, filterField, filterValue string, orders []queryOrder) ([]fsDocument, error) {
	structured := map[string]any{
		"from": []any{map[string]any{"collectionId": collection}},
	}
	if filterField != "" {
		structured["where"] = map[string]any{
			"fieldFilter": map[string]any{
				"field": map[string]any{"fieldPath": filterField},
				"op":    "EQUAL",
				"value": map[string]any{"stringValue": filterValue},
			},
		}
	}
	if len(orders) > 0 {
		orderBy := make([]map[string]any, 0, len(orders))
		for _, o := range orders {
			orderBy = append(orderBy, map[string]any{
				"field":     map[string]any{"fieldPath": o.field},
				"direction": o.direction,
			})
		}
		structured["orderBy"] = orderBy
	}

	var results []struct {
		Document *fsDocument `json:"document"`
	}
	body := map[string]any{"structuredQuery": structured}
	if err := c.postJSON(ctx, c.documentsBase()+":runQuery", body, &results); err != nil {
		return nil, err
	}

	docs := make([]fsDocument, 0, len(results))
	for _, r := range results {
		if r.Document != nil {
			docs = append(docs, *r.Document)
		}
	}
	return docs, nil
}
