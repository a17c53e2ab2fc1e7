package services

import (
	"strings"
	"testing"

	"github.com/prathmeshai01/task-manager/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateTaskInputCreate(t *testing.T) {
	tests := []struct {
		name       string
		input      TaskInput
		wantFields []string
	}{
		{
			name:       "missing title",
			input:      TaskInput{},
			wantFields: []string{"title"},
		},
		{
			name:       "empty title",
			input:      TaskInput{Title: strPtr("")},
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			input:      TaskInput{Title: strPtr(strings.Repeat("a", 256))},
			wantFields: []string{"title"},
		},
		{
			name:  "title at max length",
			input: TaskInput{Title: strPtr(strings.Repeat("a", 255))},
		},
		{
			name: "invalid priority is not defaulted",
			input: TaskInput{
				Title:    strPtr("Buy milk"),
				Priority: strPtr("urgent"),
			},
			wantFields: []string{"priority"},
		},
		{
			name: "priority is case sensitive",
			input: TaskInput{
				Title:    strPtr("Buy milk"),
				Priority: strPtr("High"),
			},
			wantFields: []string{"priority"},
		},
		{
			name: "invalid due date",
			input: TaskInput{
				Title:   strPtr("Buy milk"),
				DueDate: strPtr("tomorrow"),
			},
			wantFields: []string{"due_date"},
		},
		{
			name: "category too long",
			input: TaskInput{
				Title:    strPtr("Buy milk"),
				Category: strPtr(strings.Repeat("c", 101)),
			},
			wantFields: []string{"category"},
		},
		{
			name: "multiple offending fields reported together",
			input: TaskInput{
				Priority: strPtr("urgent"),
				DueDate:  strPtr("tomorrow"),
			},
			wantFields: []string{"title", "priority", "due_date"},
		},
		{
			name: "all fields valid",
			input: TaskInput{
				Title:       strPtr("Buy milk"),
				Description: strPtr("2 liters"),
				DueDate:     strPtr("2025-03-14"),
				Priority:    strPtr("high"),
				Category:    strPtr("Errands"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateTaskInput(tt.input, validateCreate)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected validation error on %v, got nil", tt.wantFields)
			}
			if len(err.Fields) != len(tt.wantFields) {
				t.Errorf("got %d offending fields (%v), want %d", len(err.Fields), err.Fields, len(tt.wantFields))
			}
			for _, field := range tt.wantFields {
				if _, ok := err.Fields[field]; !ok {
					t.Errorf("expected field %q in %v", field, err.Fields)
				}
			}
		})
	}
}

func TestValidateTaskInputUpdate(t *testing.T) {
	t.Run("absent title is allowed", func(t *testing.T) {
		_, err := validateTaskInput(TaskInput{}, validateUpdate)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty title still rejected", func(t *testing.T) {
		_, err := validateTaskInput(TaskInput{Title: strPtr("")}, validateUpdate)
		if err == nil || err.Fields["title"] == "" {
			t.Fatalf("expected title error, got %v", err)
		}
	})

	t.Run("valid status coerced", func(t *testing.T) {
		validated, err := validateTaskInput(TaskInput{Status: strPtr("completed")}, validateUpdate)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if validated.status == nil || *validated.status != models.StatusCompleted {
			t.Errorf("status = %v, want completed", validated.status)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := validateTaskInput(TaskInput{Status: strPtr("archived")}, validateUpdate)
		if err == nil || err.Fields["status"] == "" {
			t.Fatalf("expected status error, got %v", err)
		}
	})
}

func TestValidateTaskInputDropsStatusOnCreate(t *testing.T) {
	validated, err := validateTaskInput(TaskInput{
		Title:  strPtr("Buy milk"),
		Status: strPtr("completed"),
	}, validateCreate)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if validated.status != nil {
		t.Errorf("status should be dropped on create, got %q", *validated.status)
	}
}
