package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownShape = errors.New("backend: response is neither a listing array nor a paginated envelope")

// DecodeResult decodes a GET /listings body. The presence of a "content"
// field selects the envelope variant; a JSON array selects the list variant.
// Records that fail to decode individually are skipped and counted in the
// second return value instead of failing the whole response.
func DecodeResult(raw []byte) (*Result, int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, 0, ErrUnknownShape
	}

	var (
		items []json.RawMessage
		res   = &Result{}
	)
	switch raw[0] {
	case '{':
		var env struct {
			Content json.RawMessage `json:"content"`
			PageMeta
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, 0, fmt.Errorf("decode envelope: %w", err)
		}
		if len(env.Content) == 0 || string(env.Content) == "null" {
			return nil, 0, ErrUnknownShape
		}
		if err := json.Unmarshal(env.Content, &items); err != nil {
			return nil, 0, fmt.Errorf("decode envelope content: %w", err)
		}
		meta := env.PageMeta
		res.Kind = KindPage
		res.Page = &meta
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, fmt.Errorf("decode listing array: %w", err)
		}
		res.Kind = KindList
	default:
		return nil, 0, ErrUnknownShape
	}

	bad := 0
	res.Listings = make([]Listing, 0, len(items))
	for _, item := range items {
		var l Listing
		if err := json.Unmarshal(item, &l); err != nil {
			bad++
			continue
		}
		res.Listings = append(res.Listings, l)
	}
	return res, bad, nil
}
