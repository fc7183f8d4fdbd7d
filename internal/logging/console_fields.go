package logging

import (
	"log/slog"
	"strings"
)

type infoField struct {
	label string
	value string
}

// infoHighlightKeys are printed first, in this order, at info level and above.
var infoHighlightKeys = []string{
	FieldEventType,
	FieldAction,
	FieldDryRun,
	"destination",
	"subtitle",
	"similarity",
	"error",
	FieldErrorHint,
	FieldImpact,
	FieldDecisionType,
	"decision_result",
	"decision_reason",
}

// selectInfoFields returns the formatted fields shown under an info-level
// header. Subject keys are already part of the header and debug-only keys are
// dropped.
func selectInfoFields(attrs []kv) []infoField {
	if len(attrs) == 0 {
		return nil
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, len(attrs))
	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if used[idx] || attr.key != key {
				continue
			}
			used[idx] = true
			result = append(result, infoField{label: displayLabel(key), value: formatValueForKey(key, attr.value)})
			break
		}
	}
	for idx, attr := range attrs {
		if used[idx] || skipInfoKey(attr.key) || isDebugOnlyKey(attr.key) {
			continue
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: formatValueForKey(attr.key, attr.value)})
	}
	return result
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	if v.Kind() == slog.KindBool {
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	if key == "similarity" && v.Kind() == slog.KindFloat64 {
		return strconvPercent(v.Float64())
	}
	value := formatValue(v)
	if key == "error" {
		const maxLen = 200
		if len(value) > maxLen {
			value = value[:maxLen] + "…"
		}
	}
	return value
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldJobID, FieldFile:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case FieldRunID, FieldCycleID, "source", "size_bytes":
		return true
	}
	return strings.HasSuffix(key, "_path") || strings.HasSuffix(key, "_dir")
}

func displayLabel(key string) string {
	switch key {
	case FieldEventType:
		return "Event"
	case FieldDryRun:
		return "Dry Run"
	case FieldErrorHint:
		return "Hint"
	case FieldDecisionType, "decision_result":
		return "Decision"
	case "decision_reason":
		return "Reason"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = capitalizeASCII(part)
	}
	return strings.Join(parts, " ")
}

func capitalizeASCII(value string) string {
	switch len(value) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(value)
	default:
		lower := strings.ToLower(value)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}

func attrValue(attrs []kv, key string) string {
	for _, kv := range attrs {
		if kv.key == key {
			return attrString(kv.value)
		}
	}
	return ""
}
