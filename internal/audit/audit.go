// Package audit builds append-only audit events from statically declared
// field tables. Every auditable entity has an explicit field list here,
// so what gets captured is decided at compile time; an unsupported value
// type is a hard error, never a silently dropped field.
package audit

import (
	"fmt"
	"strconv"
	"time"

	"sharebin/internal/domain/entity"
)

type Field struct {
	Name  string
	Value interface{}
}

// FieldValue converts a field value to its canonical audit string.
// Times use RFC 1123 in UTC, enum-like values their Stringer name, nil
// pointers the literal "null". Anything else fails fast.
func FieldValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case string:
		return val, nil
	case *string:
		if val == nil {
			return "null", nil
		}
		return *val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case *int64:
		if val == nil {
			return "null", nil
		}
		return strconv.FormatInt(*val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case time.Time:
		return val.UTC().Format(time.RFC1123), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("audit: unsupported field type %T", v)
	}
}

// NewEvent builds one audit event with one entry per declared field.
func NewEvent(kind, entityName, entityKey, actorID string, fields []Field) (*entity.AuditEvent, error) {
	event := &entity.AuditEvent{
		Kind:       kind,
		EntityName: entityName,
		EntityKey:  entityKey,
		ActorID:    actorID,
		CreatedAt:  time.Now().UTC(),
	}

	for _, f := range fields {
		value, err := FieldValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", entityName, f.Name, err)
		}
		event.Entries = append(event.Entries, entity.AuditEntry{
			Name:  f.Name,
			Value: value,
		})
	}

	return event, nil
}

// NewEvents is the batch variant used when a delete cascades over
// several rows of the same entity.
func NewEvents(kind, entityName, actorID string, keys []string, fieldSets [][]Field) ([]*entity.AuditEvent, error) {
	if len(keys) != len(fieldSets) {
		return nil, fmt.Errorf("audit: %d keys for %d field sets", len(keys), len(fieldSets))
	}
	events := make([]*entity.AuditEvent, 0, len(keys))
	for i, key := range keys {
		event, err := NewEvent(kind, entityName, key, actorID, fieldSets[i])
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
