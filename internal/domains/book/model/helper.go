package model

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeImagePayload parses the image payload the client sends with a book:
// either a data URI ("data:image/png;base64,....") or bare base64, in which
// case JPEG is assumed. Returns the raw bytes and the content type.
func DecodeImagePayload(payload string) ([]byte, string, error) {
	contentType := "image/jpeg"
	encoded := payload

	if strings.HasPrefix(payload, "data:") {
		header, rest, ok := strings.Cut(payload[len("data:"):], ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		if ct, _, found := strings.Cut(header, ";"); found && ct != "" {
			contentType = ct
		} else if header != "" && !strings.Contains(header, "base64") {
			contentType = header
		}
		encoded = rest
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}

	return data, contentType, nil
}
