package roster

import (
	"strconv"

	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
)

// ResolvePolicy normalizes the raw "responsible supervisor"
// configuration. Person references may be staff ids or free-text names;
// each is resolved through the name resolver, falling back to the raw
// value as an id when nothing matches. Day-set fields accept either an
// array of day numbers or an object keyed by day numbers, the two
// historical encodings.
func ResolvePolicy(raw map[string]interface{}, resolver *names.Resolver) *model.SupervisorPolicy {
	policy := model.EmptySupervisorPolicy()
	if raw == nil {
		return policy
	}

	policy.PrimaryID = resolveRef(firstValue(raw, "primary", "primaryId", "primary_id"), resolver)
	policy.AssistantIDs = resolveRefs(firstValue(raw, "assistants", "assistantIds", "assistant_ids"), resolver)
	policy.FallbackPoolIDs = resolveRefs(firstValue(raw, "fallbackPool", "fallback_pool", "pool"), resolver)

	if b, ok := firstValue(raw, "weekdayOnly", "weekday_only").(bool); ok {
		policy.WeekdayOnly = b
	}
	policy.EscalationDays = daySet(firstValue(raw, "assistDays", "assist_days", "escalationDays", "escalation_days"))
	policy.BlackoutDays = daySet(firstValue(raw, "offDays", "off_days", "blackoutDays", "blackout_days"))

	policy.MinAssistantsOnEscalation = 1
	switch v := firstValue(raw, "minAssistants", "min_assistants", "minAssistantsOnEscalation").(type) {
	case float64:
		policy.MinAssistantsOnEscalation = int(v)
	case int:
		policy.MinAssistantsOnEscalation = v
	}
	return policy
}

func firstValue(raw map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// resolveRef maps one raw person reference to a staff id, keeping the
// raw value when no staff member matches.
func resolveRef(v interface{}, resolver *names.Resolver) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	if id, ok := resolver.Resolve(s); ok {
		return id
	}
	return s
}

func resolveRefs(v interface{}, resolver *names.Resolver) []string {
	items, ok := v.([]interface{})
	if !ok {
		if strs, ok := v.([]string); ok {
			out := make([]string, 0, len(strs))
			for _, s := range strs {
				if id := resolveRef(s, resolver); id != "" {
					out = append(out, id)
				}
			}
			return out
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if id := resolveRef(item, resolver); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// daySet normalizes the two day-set encodings to a day-number set.
func daySet(v interface{}) map[int]bool {
	set := make(map[int]bool)
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if day := asDay(item); day > 0 {
				set[day] = true
			}
		}
	case []int:
		for _, day := range t {
			if day >= 1 && day <= 31 {
				set[day] = true
			}
		}
	case map[string]interface{}:
		for key := range t {
			if day := asDay(key); day > 0 {
				set[day] = true
			}
		}
	}
	return set
}

func asDay(v interface{}) int {
	var day int
	switch t := v.(type) {
	case float64:
		day = int(t)
	case int:
		day = t
	case string:
		day, _ = strconv.Atoi(t)
	}
	if day < 1 || day > 31 {
		return 0
	}
	return day
}
