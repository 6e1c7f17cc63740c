package validator_test

import (
	"errors"
	"strings"
	"testing"

	"floorplan/shared/validator"
)

type seating string

func (s seating) Validate() error {
	switch s {
	case "interior", "terrace":
		return nil
	default:
		return errors.New("unknown seating")
	}
}

type bookingRequest struct {
	CustomerName string  `json:"customer_name" validate:"required,max=100"`
	Date         string  `json:"date"          validate:"required,datetime=2006-01-02"`
	Time         string  `json:"time"          validate:"required,clock"`
	PartySize    int     `json:"party_size"    validate:"gt=0,lte=50"`
	Seating      seating `json:"seating"       validate:"omitempty,enum"`
}

func validRequest() bookingRequest {
	return bookingRequest{
		CustomerName: "Ana",
		Date:         "2026-10-18",
		Time:         "13:00",
		PartySize:    2,
		Seating:      "terrace",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *bookingRequest)
		expectError bool
		contains    string
	}{
		{
			name:        "valid request",
			mutate:      func(_ *bookingRequest) {},
			expectError: false,
		},
		{
			name:        "valid request with seconds",
			mutate:      func(r *bookingRequest) { r.Time = "21:30:00" },
			expectError: false,
		},
		{
			name:        "missing customer name uses json field name",
			mutate:      func(r *bookingRequest) { r.CustomerName = "" },
			expectError: true,
			contains:    "customer_name is required",
		},
		{
			name:        "malformed date",
			mutate:      func(r *bookingRequest) { r.Date = "18/10/2026" },
			expectError: true,
			contains:    "date must match the format",
		},
		{
			name:        "malformed clock",
			mutate:      func(r *bookingRequest) { r.Time = "25:99" },
			expectError: true,
			contains:    "time must be a time in HH:MM or HH:MM:SS format",
		},
		{
			name:        "zero party size",
			mutate:      func(r *bookingRequest) { r.PartySize = 0 },
			expectError: true,
			contains:    "party_size must be greater than 0",
		},
		{
			name:        "unknown enum value",
			mutate:      func(r *bookingRequest) { r.Seating = "rooftop" },
			expectError: true,
			contains:    "seating has an unsupported value",
		},
		{
			name:        "overlong name reads as characters",
			mutate:      func(r *bookingRequest) { r.CustomerName = strings.Repeat("a", 101) },
			expectError: true,
			contains:    "customer_name must be at most 100 characters",
		},
		{
			name: "every failing field is reported",
			mutate: func(r *bookingRequest) {
				r.CustomerName = ""
				r.PartySize = 51
			},
			expectError: true,
			contains:    "customer_name is required; party_size must be less than or equal to 50",
		},
		{
			name:        "empty enum is allowed with omitempty",
			mutate:      func(r *bookingRequest) { r.Seating = "" },
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectError && err == nil {
				t.Fatal("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Fatalf("expected no validation error, got: %v", err)
			}

			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error to contain %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid clock", field: "17:00:00", tag: "clock", expectError: false},
		{name: "invalid clock", field: "5pm", tag: "clock", expectError: true},
		{name: "valid date", field: "2026-10-18", tag: "datetime=2006-01-02", expectError: false},
		{name: "empty required", field: "", tag: "required", expectError: true},
		{name: "valid oneof", field: "midday", tag: "oneof=midday evening", expectError: false},
		{name: "invalid oneof", field: "brunch", tag: "oneof=midday evening", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"customer_name":"Ana","date":"2026-10-18","time":"13:00","party_size":2}`,
			expectError: false,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"customer_name":"Ana","date":"2026-10-18","time":"13:00","party_size":-1}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"customer_name":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
