package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// EquipmentKey canonicalizes an equipment name. Every write path goes through
// here: surrounding whitespace is trimmed, case is preserved.
func EquipmentKey(name string) string {
	return strings.TrimSpace(name)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidClock reports whether s is an HH:MM time of day
func ValidClock(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// CompositeID is the legacy record address {clientId}_{equipment}_{date}_{index}
type CompositeID struct {
	ClientID  string
	Equipment string
	Date      string
	Index     int
}

func (c CompositeID) String() string {
	return fmt.Sprintf("%s_%s_%s_%d", c.ClientID, c.Equipment, c.Date, c.Index)
}

// ParseCompositeID decodes a legacy record address. Index and date are the
// last two segments. Client ids and equipment names may both contain
// underscores, so every split of the remaining segments into a non-empty
// client id and equipment name is returned, shortest client id first.
// Callers resolve the candidates against stored clients.
func ParseCompositeID(s string) ([]CompositeID, error) {
	parts := strings.Split(s, "_")
	if len(parts) < 4 {
		return nil, fmt.Errorf("composite id %q: want at least 4 segments", s)
	}

	n := len(parts)
	index, err := strconv.Atoi(parts[n-1])
	if err != nil || index < 0 {
		return nil, fmt.Errorf("composite id %q: bad index segment", s)
	}
	date := parts[n-2]
	if !ValidDate(date) {
		return nil, fmt.Errorf("composite id %q: bad date segment", s)
	}

	var ids []CompositeID
	for k := 1; k <= n-3; k++ {
		id := CompositeID{
			ClientID:  strings.Join(parts[:k], "_"),
			Equipment: strings.Join(parts[k:n-2], "_"),
			Date:      date,
			Index:     index,
		}
		if id.ClientID != "" && id.Equipment != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("composite id %q: malformed segments", s)
	}
	return ids, nil
}
