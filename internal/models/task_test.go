package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{"BACKLOG", TaskStatusBacklog, false},
		{"backlog", TaskStatusBacklog, false},
		{"TO DO", TaskStatusTodo, false},
		{"to_do", TaskStatusTodo, false},
		{"ToDo", TaskStatusTodo, false},
		{"in progress", TaskStatusInProgress, false},
		{"IN-PROGRESS", TaskStatusInProgress, false},
		{"Done", TaskStatusDone, false},
		{"completed", TaskStatusDone, false},
		{" done ", TaskStatusDone, false},
		{"ARCHIVED", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskPriority
		wantErr bool
	}{
		{"LOW", TaskPriorityLow, false},
		{"low", TaskPriorityLow, false},
		{"Moderate", TaskPriorityModerate, false},
		{"HIGH", TaskPriorityHigh, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
