package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ============================================================
// Seed normalization
// Historical fixtures store maintenance_data in three shapes:
//   slot: {name, records: [...]}  named wrapper
//   slot: {name}                  equipment without history
//   slot: [...]                   bare array keyed by the slot name
// ============================================================

// NormalizeMaintenanceData converts a raw maintenance_data mapping into the
// canonical ordered equipment list. Malformed slots and records are dropped.
func NormalizeMaintenanceData(raw map[string]any) []Equipment {
	equipments := make([]Equipment, 0, len(raw))
	index := make(map[string]int, len(raw))

	for _, slot := range naturalKeys(raw) {
		name, records, ok := normalizeSlot(slot, raw[slot])
		if !ok {
			continue
		}

		if i, seen := index[name]; seen {
			equipments[i].Records = append(equipments[i].Records, records...)
			continue
		}
		index[name] = len(equipments)
		equipments = append(equipments, Equipment{Name: name, Records: records})
	}

	return equipments
}

// normalizeSlot resolves one slot to its equipment name and records
func normalizeSlot(slot string, value any) (string, []MaintenanceRecord, bool) {
	switch v := value.(type) {
	case []any:
		name := EquipmentKey(slot)
		if name == "" {
			return "", nil, false
		}
		return name, normalizeRecords(v), true
	default:
		obj, ok := asObject(value)
		if !ok {
			return "", nil, false
		}
		name := EquipmentKey(stringField(obj, "name"))
		if name == "" {
			return "", nil, false
		}
		list, _ := obj["records"].([]any)
		return name, normalizeRecords(list), true
	}
}

func normalizeRecords(list []any) []MaintenanceRecord {
	records := make([]MaintenanceRecord, 0, len(list))
	for _, item := range list {
		if record, ok := normalizeRecord(item); ok {
			records = append(records, record)
		}
	}
	return records
}

// normalizeRecord accepts an object carrying at least date, cycle, content and manager
func normalizeRecord(item any) (MaintenanceRecord, bool) {
	obj, ok := asObject(item)
	if !ok {
		return MaintenanceRecord{}, false
	}

	record := MaintenanceRecord{
		Date:    stringField(obj, "date"),
		Cycle:   stringField(obj, "cycle"),
		Content: stringField(obj, "content"),
		Manager: strings.TrimSpace(stringField(obj, "manager")),
	}
	if record.Date == "" || record.Cycle == "" || record.Content == "" || record.Manager == "" {
		return MaintenanceRecord{}, false
	}
	if !ValidDate(record.Date) {
		return MaintenanceRecord{}, false
	}

	if s := stringField(obj, "content_simple"); s != "" {
		record.ContentSimple = &s
	}
	if s := stringField(obj, "status"); s != "" {
		record.Status = &s
	}
	return record, true
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// stringField reads a scalar field. YAML timestamps come back as YYYY-MM-DD.
func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return FormatDate(v)
	default:
		return fmt.Sprint(v)
	}
}

// naturalKeys returns the map keys ordered so that "equipment2" sorts before "equipment10"
func naturalKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, ni := splitNumericSuffix(keys[i])
		pj, nj := splitNumericSuffix(keys[j])
		if pi != pj {
			return pi < pj
		}
		if ni != nj {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func splitNumericSuffix(s string) (string, int) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, -1
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, -1
	}
	return s[:i], n
}
