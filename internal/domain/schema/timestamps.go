package schema

import (
	"strconv"
	"strings"
	"time"
)

// Formatos de fecha observados en el backend, en orden de probabilidad.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ExtractTime localiza y parsea una marca de tiempo probando la lista de
// alias (el aplanado cubre un nivel de wrapper anidado). Acepta formatos de
// fecha conocidos y epoch numérico en segundos o milisegundos.
func ExtractTime(record map[string]any, aliases []string) (time.Time, bool) {
	flat := Flatten(record)
	for _, a := range aliases {
		v, ok := flat[a]
		if !ok || v == nil {
			continue
		}
		if t, ok := parseTime(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case float64:
		return epochTime(int64(t))
	case int64:
		return epochTime(t)
	case int:
		return epochTime(int64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return epochTime(n)
		}
	}
	return time.Time{}, false
}

// epochTime interpreta un entero como epoch Unix; por encima de 1e12 se
// asume milisegundos.
func epochTime(n int64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n > 1_000_000_000_000 {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}
