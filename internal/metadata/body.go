package metadata

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// decodeJSONBody unmarshals a metadata document into out.
// Some hosts serve metadata as application/octet-stream or text/plain, so the body is
// accepted whenever it sniffs as JSON, or is a generic binary buffer that parses as JSON.
func decodeJSONBody(body []byte, contentType string, out any) error {
	if len(body) == 0 {
		return fmt.Errorf("empty metadata body")
	}

	detected := mimetype.Detect(body)
	switch {
	case detected.Is("application/json"):
	case isGenericContent(detected.String()) || isGenericContent(contentType):
	default:
		return fmt.Errorf("unsupported metadata content type %s (declared %q)", detected.String(), contentType)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse metadata: %w", err)
	}
	return nil
}

func isGenericContent(mimeType string) bool {
	base := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	return base == "application/octet-stream" || base == "text/plain" || base == "application/json"
}
