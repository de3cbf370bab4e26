// Package share turns group configurations into compact strings that
// can be pasted between hosts. Only the configuration travels; transient
// particle state never does.
package share

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/plife/internal/config"
)

// Encode serializes a config to a URL-safe string: JSON, deflated,
// base64.
func Encode(cfg *config.Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode and validates the result, so a tampered or
// truncated string can never produce an inconsistent registry.
func Decode(s string) (*config.Config, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("share: malformed string: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("share: malformed string: %w", err)
	}

	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("share: malformed payload: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("share: %w", err)
	}
	return &cfg, nil
}
