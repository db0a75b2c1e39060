package api

import (
	"fmt"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/tutorchat/internal/errors"
	"github.com/diogo/tutorchat/internal/models"
)

// decodeChatResponse maps a raw backend reply to a ChatResponse.
//
// A non-empty error field wins regardless of status, so 4xx/5xx replies that
// carry a description surface it to the user. A response field comes next.
// Anything else is an APIError for non-2xx status or a ParseError.
func decodeChatResponse(status int, endpoint string, body []byte) (*models.ChatResponse, error) {
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if parsed.IsObject() {
			if errField := parsed.Get(PathError); errField.Exists() && errField.String() != "" {
				return &models.ChatResponse{Error: errField.String()}, nil
			}
			if resp := parsed.Get(PathResponse); resp.Exists() && resp.Type != gjson.Null {
				return &models.ChatResponse{Response: resp.String()}, nil
			}
		}
	}

	if !isSuccess(status) {
		return nil, apierrors.NewAPIErrorWithBody(
			status, endpoint,
			fmt.Sprintf("unexpected status %d", status),
			truncate(string(body), maxErrorBodyBytes),
		)
	}

	return nil, apierrors.NewParseError("neither response nor error field", "body")
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
