package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/ecommerce/pkg/validate"
)

type registerInput struct {
	UserName             string  `json:"user_name"             validate:"required,min=3,max=50"`
	Email                string  `json:"email"                 validate:"required,email"`
	Password             string  `json:"password"              validate:"required,min=6,confirmed"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"required"`
	Status               string  `json:"status"                validate:"nullable,in=Pending,Processing,Shipped"`
	Website              string  `json:"website"               validate:"nullable,url"`
	Price                float64 `json:"price"                 validate:"required,gt=0"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		UserName:             "john_doe",
		Email:                "john@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Status:               "Pending",
		Website:              "", // nullable, allowed to be empty
		Price:                9.99,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["user_name"]; !ok {
		t.Error("expected user_name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Stock int     `json:"stock" validate:"gte=0,lte=100000"`
		Price float64 `json:"price" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Stock: -1, Price: 10}); !validate.HasErrors(errs) {
		t.Error("expected negative stock to fail")
	}
	if errs := validate.Struct(in{Stock: 0, Price: 0}); !validate.HasErrors(errs) {
		t.Error("expected price 0 to fail gt=0")
	}
	if errs := validate.Struct(in{Stock: 5, Price: 0.01}); validate.HasErrors(errs) {
		t.Errorf("expected valid input to pass, got: %v", errs)
	}
}

func TestInRuleKeepsMultiValueParams(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=Pending,Processing,Shipped,Delivered,Cancelled,max=32"`
	}
	if errs := validate.Struct(in{Status: "Shipped"}); validate.HasErrors(errs) {
		t.Errorf("expected Shipped to be accepted, got: %v", errs)
	}
	if errs := validate.Struct(in{Status: "Unknown"}); !validate.HasErrors(errs) {
		t.Error("expected Unknown status to fail")
	}
}

func TestConfirmed(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,confirmed"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if errs := validate.Struct(in{Password: "abc123", PasswordConfirmation: "nope"}); !validate.HasErrors(errs) {
		t.Error("expected mismatched confirmation to fail")
	}
	if errs := validate.Struct(in{Password: "abc123", PasswordConfirmation: "abc123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass, got: %v", errs)
	}
}

func TestBetween(t *testing.T) {
	type in struct {
		Months int `json:"months" validate:"nullable,between=1,120"`
	}
	if errs := validate.Struct(in{Months: 121}); !validate.HasErrors(errs) {
		t.Error("expected months above range to fail")
	}
	if errs := validate.Struct(in{Months: 12}); validate.HasErrors(errs) {
		t.Errorf("expected months in range to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable months to pass, got: %v", errs)
	}
}
