package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskUpdateNullVsAbsent(t *testing.T) {
	assignee := primitive.NewObjectID()

	tests := []struct {
		name      string
		payload   string
		wantSet   bool
		wantValue *primitive.ObjectID
	}{
		{"absent", `{}`, false, nil},
		{"explicit null", `{"assignedTo": null}`, true, nil},
		{"value", `{"assignedTo": "` + assignee.Hex() + `"}`, true, &assignee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var upd TaskUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &upd))

			require.Equal(t, tt.wantSet, upd.AssignedTo.Set)
			if tt.wantValue == nil {
				require.Nil(t, upd.AssignedTo.Value)
			} else {
				require.NotNil(t, upd.AssignedTo.Value)
				require.Equal(t, *tt.wantValue, *upd.AssignedTo.Value)
			}
		})
	}
}

func TestProjectUpdateNullableDates(t *testing.T) {
	var upd ProjectUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"startDate": "2026-09-01T00:00:00Z", "endDate": null}`), &upd))

	require.True(t, upd.StartDate.Set)
	require.NotNil(t, upd.StartDate.Value)
	require.Equal(t, 2026, upd.StartDate.Value.Year())

	require.True(t, upd.EndDate.Set)
	require.Nil(t, upd.EndDate.Value)
}
