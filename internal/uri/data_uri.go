package uri

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DataURI is a parsed RFC 2397 data URI
type DataURI struct {
	// MimeType is the declared media type, text/plain when omitted
	MimeType string
	// DetectedMimeType is sniffed from the decoded payload
	DetectedMimeType string
	Data             []byte
}

// IsDataURI reports whether uri uses the data: scheme
func IsDataURI(uri string) bool {
	return len(uri) >= 5 && strings.EqualFold(uri[:5], "data:")
}

// ParseDataURI decodes a data URI, base64 or percent-encoded
func ParseDataURI(uri string) (*DataURI, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data uri")
	}

	header, payload, found := strings.Cut(uri[5:], ",")
	if !found {
		return nil, fmt.Errorf("invalid data uri: missing comma")
	}

	params := strings.Split(header, ";")
	mediaType := strings.TrimSpace(params[0])
	if mediaType == "" {
		mediaType = "text/plain"
	}

	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid data uri: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid data uri: %w", err)
		}
		data = []byte(unescaped)
	}

	return &DataURI{
		MimeType:         strings.ToLower(mediaType),
		DetectedMimeType: mimetype.Detect(data).String(),
		Data:             data,
	}, nil
}
