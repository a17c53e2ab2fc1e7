package services

import (
	"time"

	"github.com/prathmeshai01/task-manager/internal/models"
)

const (
	maxTitleLength    = 255
	maxCategoryLength = 100
)

type validationMode int

const (
	validateCreate validationMode = iota
	validateUpdate
)

// validatedInput holds the type-coerced subset of recognized
// fields. Nil fields were absent from the input.
type validatedInput struct {
	title       *string
	description *string
	dueDate     *time.Time
	priority    *models.Priority
	category    *string
	status      *models.Status
}

// validateTaskInput checks the per-field rules for the given mode
// and returns either the coerced fields or a *ValidationError
// covering every offending field.
//
// Status is system-assigned on create, so it is dropped from the
// input in create mode rather than validated.
func validateTaskInput(input TaskInput, mode validationMode) (validatedInput, *ValidationError) {
	fields := make(map[string]string)
	var out validatedInput

	switch {
	case input.Title == nil:
		if mode == validateCreate {
			fields["title"] = "title is required"
		}
	case *input.Title == "":
		fields["title"] = "title must not be empty"
	case len(*input.Title) > maxTitleLength:
		fields["title"] = "title must be at most 255 characters"
	default:
		out.title = input.Title
	}

	out.description = input.Description

	if input.DueDate != nil {
		dueDate, err := models.ParseDate(*input.DueDate)
		if err != nil {
			fields["due_date"] = "due_date must be a valid date in YYYY-MM-DD format"
		} else {
			out.dueDate = &dueDate
		}
	}

	if input.Priority != nil {
		priority := models.Priority(*input.Priority)
		if !priority.Valid() {
			fields["priority"] = "priority must be one of low, medium, high"
		} else {
			out.priority = &priority
		}
	}

	if input.Category != nil {
		if len(*input.Category) > maxCategoryLength {
			fields["category"] = "category must be at most 100 characters"
		} else {
			out.category = input.Category
		}
	}

	if input.Status != nil && mode == validateUpdate {
		status := models.Status(*input.Status)
		if !status.Valid() {
			fields["status"] = "status must be one of pending, completed"
		} else {
			out.status = &status
		}
	}

	if len(fields) > 0 {
		return validatedInput{}, &ValidationError{Fields: fields}
	}
	return out, nil
}
