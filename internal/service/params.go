// Package service implements the typed facades over the CRM REST API
// and the session lifecycle. Each facade method performs exactly one
// HTTP call; the server is the source of truth for filtering and
// business logic.
package service

import (
	"net/url"
	"strconv"
)

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setIntPtr(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}

func setFloatPtr(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setBool(q url.Values, key string, v bool) {
	if v {
		q.Set(key, "true")
	}
}

func setBoolPtr(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}

func pagination(q url.Values, page, limit int) {
	setInt(q, "page", page)
	setInt(q, "limit", limit)
}
