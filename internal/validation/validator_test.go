// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package validation

import (
	"strings"
	"testing"
)

type recommendParams struct {
	Title string `validate:"required"`
	Count int    `validate:"omitempty,min=3,max=10"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 != v2 {
		t.Error("GetValidator returned distinct instances")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name   string
		params recommendParams
	}{
		{"with count", recommendParams{Title: "Inception", Count: 5}},
		{"count boundary low", recommendParams{Title: "Inception", Count: 3}},
		{"count boundary high", recommendParams{Title: "Inception", Count: 10}},
		{"omitted count", recommendParams{Title: "Inception"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.params); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		params    recommendParams
		wantField string
		wantTag   string
	}{
		{"missing title", recommendParams{Count: 5}, "Title", "required"},
		{"count too low", recommendParams{Title: "Inception", Count: 2}, "Count", "min"},
		{"count too high", recommendParams{Title: "Inception", Count: 11}, "Count", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.params)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("len(Errors()) = %d, want 1", len(errs))
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	params := recommendParams{Count: 100}
	err := ValidateStruct(&params)
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("len(Errors()) = %d, want 2", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("Error() = %q, want combined message", err.Error())
	}
}

func TestRequestValidationError_ToAPIError(t *testing.T) {
	t.Run("single error includes field details", func(t *testing.T) {
		err := ValidateStruct(&recommendParams{Count: 5})
		if err == nil {
			t.Fatal("expected validation error")
		}

		apiErr := err.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Details["field"] != "Title" {
			t.Errorf("Details[field] = %v, want Title", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors aggregate fields", func(t *testing.T) {
		err := ValidateStruct(&recommendParams{Count: 1})
		if err == nil {
			t.Fatal("expected validation error")
		}

		apiErr := err.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok {
			t.Fatalf("Details[fields] has type %T, want slice", apiErr.Details["fields"])
		}
		if len(fields) != 2 {
			t.Errorf("len(fields) = %d, want 2", len(fields))
		}
	})
}

func TestTranslateError_Messages(t *testing.T) {
	err := ValidateStruct(&recommendParams{Title: "Up", Count: 2})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "at least 3") {
		t.Errorf("Error() = %q, want min message with param", msg)
	}
}
