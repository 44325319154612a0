package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchTaskRequestDueDate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		set     bool
		want    *time.Time
		wantErr bool
	}{
		{name: "absent", body: `{}`, set: false},
		{name: "null clears", body: `{"due_date": null}`, set: true},
		{name: "date", body: `{"due_date": "2026-02-28"}`, set: true, want: ptrTime(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))},
		{name: "timestamp rejected", body: `{"due_date": "2026-02-28T10:00:00Z"}`, wantErr: true},
		{name: "invalid day", body: `{"due_date": "2026-02-30"}`, wantErr: true},
		{name: "number rejected", body: `{"due_date": 20260228}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PatchTaskRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.set, req.DueDate.Set)
			assert.Equal(t, tt.want, req.DueDate.Value)
		})
	}
}

func TestCreateTaskRequestDueDate(t *testing.T) {
	var req CreateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"due_date": null}`), &req))
	assert.Nil(t, req.DueDate.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`{"due_date": "2026-01-05"}`), &req))
	require.NotNil(t, req.DueDate.Ptr())
	assert.Equal(t, "2026-01-05", *FormatDate(req.DueDate.Ptr()))
}

func TestFormatDate(t *testing.T) {
	assert.Nil(t, FormatDate(nil))

	day := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-04", *FormatDate(&day))
}

func ptrTime(t time.Time) *time.Time { return &t }
