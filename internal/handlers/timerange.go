package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Layouts accepted for from/to, tried in order.
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

const endOfDay = 24*time.Hour - time.Nanosecond

const (
	errBadFrom    = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errBadTo      = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeOrder = "'from' must be <= 'to'"
)

// queryTime parses one bound. A date-only 'to' is widened to the last
// instant of that day.
func queryTime(raw string, upper bool) (time.Time, bool) {
	for _, layout := range queryTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if upper && !strings.ContainsAny(raw, "T ") {
			t = t.Add(endOfDay)
		}
		return t.UTC(), true
	}
	return time.Time{}, false
}

// readRange returns the from/to bounds; zero means open-ended.
func readRange(c *gin.Context) (from, to time.Time, problem string) {
	if raw := c.Query("from"); raw != "" {
		var ok bool
		if from, ok = queryTime(raw, false); !ok {
			return from, to, errBadFrom
		}
	}
	if raw := c.Query("to"); raw != "" {
		var ok bool
		if to, ok = queryTime(raw, true); !ok {
			return from, to, errBadTo
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, errRangeOrder
	}
	return from, to, ""
}

// parseRange reads from/to and answers 400 itself when they are unusable.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, to, problem := readRange(c)
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
