// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError describes a non-2xx response.
type StatusError struct {
	Code int
	// Detail is the server's explanation: the "detail" field of a JSON error
	// body when present, otherwise the trimmed body text.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%d %s", e.Code, e.Detail)
}

// newStatusError reads at most 4 KiB of the body to build the error.
func newStatusError(resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &StatusError{Code: resp.StatusCode, Detail: extractDetail(b)}
}

// extractDetail pulls a human-readable message out of an error body.
// FastAPI reports either {"detail": "msg"} or {"detail": [{"msg": "..."}]}.
func extractDetail(b []byte) string {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err == nil {
		switch d := raw["detail"].(type) {
		case string:
			return strings.TrimSpace(d)
		case []any:
			var msgs []string
			for _, item := range d {
				if m, ok := item.(map[string]any); ok {
					if msg, ok := m["msg"].(string); ok && msg != "" {
						msgs = append(msgs, msg)
					}
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
		if msg, ok := raw["message"].(string); ok {
			return strings.TrimSpace(msg)
		}
	}
	return strings.TrimSpace(string(b))
}
