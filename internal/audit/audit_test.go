package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebin/internal/domain/entity"
)

func TestFieldValueCanonicalForms(t *testing.T) {
	ts := time.Date(2025, 3, 9, 14, 30, 0, 0, time.UTC)
	owner := "u1"

	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, "null"},
		{"hello", "hello"},
		{(*string)(nil), "null"},
		{&owner, "u1"},
		{true, "true"},
		{42, "42"},
		{int64(1024), "1024"},
		{(*int64)(nil), "null"},
		{ts, "Sun, 09 Mar 2025 14:30:00 UTC"},
	}

	for _, tc := range cases {
		got, err := FieldValue(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestFieldValueRejectsUnknownTypes(t *testing.T) {
	_, err := FieldValue(struct{ X int }{1})
	assert.Error(t, err)

	_, err = FieldValue([]string{"a"})
	assert.Error(t, err)
}

func TestNewEventEntryCountMatchesFieldTable(t *testing.T) {
	f := &entity.File{
		ID:               "f1",
		Filename:         "a.txt",
		RelativeLocation: "f1/a.txt",
		MimeType:         "text/plain",
		Size:             10,
		CreatedAt:        time.Now(),
	}

	fields := FileFields(f)
	event, err := NewEvent(entity.AuditKindDelete, "File", f.ID, "admin", fields)
	require.NoError(t, err)

	assert.Equal(t, entity.AuditKindDelete, event.Kind)
	assert.Equal(t, "File", event.EntityName)
	assert.Equal(t, "f1", event.EntityKey)
	assert.Len(t, event.Entries, len(fields))
}

func TestNewEventDeterministic(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f := &entity.File{ID: "f1", Filename: "a.txt", Size: 10, CreatedAt: ts}

	first, err := NewEvent(entity.AuditKindInsert, "File", f.ID, "u1", FileFields(f))
	require.NoError(t, err)
	second, err := NewEvent(entity.AuditKindInsert, "File", f.ID, "u1", FileFields(f))
	require.NoError(t, err)

	require.Len(t, second.Entries, len(first.Entries))
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].Name, second.Entries[i].Name)
		assert.Equal(t, first.Entries[i].Value, second.Entries[i].Value)
	}
}

func TestNewEventsBatch(t *testing.T) {
	previews := []*entity.Preview{
		{FileID: "f1", Size: 1},
		{FileID: "f2", Size: 2},
	}

	keys := []string{"f1", "f2"}
	sets := [][]Field{PreviewFields(previews[0]), PreviewFields(previews[1])}

	events, err := NewEvents(entity.AuditKindDelete, "Preview", "admin", keys, sets)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "f2", events[1].EntityKey)
}
