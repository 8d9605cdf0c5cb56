package services

import (
	"errors"
	"testing"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/models"
)

func approvedDealer() models.Dealer {
	return models.Dealer{
		Status:           models.DealerStatusApproved,
		IsActive:         true,
		IsMobileVerified: true,
		IsEmailVerified:  true,
	}
}

func TestCanLogin(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Dealer)
		want   error
	}{
		{"fully approved and verified", func(d *models.Dealer) {}, nil},
		{"disabled account", func(d *models.Dealer) { d.IsActive = false }, apperr.ErrAccountDisabled},
		{"pending approval", func(d *models.Dealer) { d.Status = models.DealerStatusPending }, apperr.ErrNotApproved},
		{"rejected", func(d *models.Dealer) { d.Status = models.DealerStatusRejected }, apperr.ErrNotApproved},
		{"mobile unverified", func(d *models.Dealer) { d.IsMobileVerified = false }, apperr.ErrNotVerified},
		{"email unverified", func(d *models.Dealer) { d.IsEmailVerified = false }, apperr.ErrNotVerified},
		{"both unverified", func(d *models.Dealer) {
			d.IsMobileVerified = false
			d.IsEmailVerified = false
		}, apperr.ErrNotVerified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := approvedDealer()
			tc.mutate(&d)
			if got := CanLogin(&d); got != tc.want {
				t.Errorf("CanLogin = %v, want %v", got, tc.want)
			}
		})
	}
}

// A disabled account reports disabled even when it is also unapproved, so
// the gate order is stable.
func TestCanLoginDisabledWinsOverPending(t *testing.T) {
	d := approvedDealer()
	d.IsActive = false
	d.Status = models.DealerStatusPending
	if got := CanLogin(&d); got != apperr.ErrAccountDisabled {
		t.Errorf("CanLogin = %v, want %v", got, apperr.ErrAccountDisabled)
	}
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		CompanyName:       "Acme Furniture",
		ContactPersonName: "Priya Shah",
		Mobile:            "9876543210",
		Email:             "priya@acme.example",
		Address:           "12 Industrial Estate",
		PinCode:           "400001",
		GST:               "27aapfu0939f1zv",
		Password:          "secret123",
	}
}

func TestRegisterInputValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr bool
	}{
		{"valid", func(in *RegisterInput) {}, false},
		{"missing company name", func(in *RegisterInput) { in.CompanyName = "  " }, true},
		{"missing contact person", func(in *RegisterInput) { in.ContactPersonName = "" }, true},
		{"short mobile", func(in *RegisterInput) { in.Mobile = "12345" }, true},
		{"mobile with letters", func(in *RegisterInput) { in.Mobile = "98765abcde" }, true},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, true},
		{"missing address", func(in *RegisterInput) { in.Address = "" }, true},
		{"missing gst", func(in *RegisterInput) { in.GST = "" }, true},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegisterInput()
			tc.mutate(&in)
			in.normalize()
			err := in.validate()
			if tc.wantErr && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("validate = %v, want a validation error", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("validate = %v, want nil", err)
			}
		})
	}
}

func TestValidateEmailChange(t *testing.T) {
	cases := []struct {
		name    string
		current string
		next    string
		want    string
		wantErr bool
	}{
		{"new address accepted", "old@acme.example", "new@acme.example", "new@acme.example", false},
		{"normalized before comparison", "old@acme.example", "  New@Acme.Example ", "new@acme.example", false},
		{"same as current", "old@acme.example", "old@acme.example", "", true},
		{"same after normalization", "old@acme.example", " Old@Acme.Example ", "", true},
		{"malformed", "old@acme.example", "not-an-email", "", true},
		{"empty", "old@acme.example", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := validateEmailChange(tc.current, tc.next)
			if tc.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Errorf("validateEmailChange = %v, want a validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateEmailChange: %v", err)
			}
			if got != tc.want {
				t.Errorf("normalized email = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRegisterInputNormalize(t *testing.T) {
	in := RegisterInput{
		CompanyName:       "  Acme Furniture  ",
		ContactPersonName: " Priya Shah ",
		Mobile:            " 9876543210 ",
		Email:             " Priya@Acme.Example ",
		Address:           " 12 Industrial Estate ",
		GST:               " 27aapfu0939f1zv ",
		Password:          "secret123",
	}
	in.normalize()

	if in.Email != "priya@acme.example" {
		t.Errorf("email = %q, want lowercase trimmed", in.Email)
	}
	if in.GST != "27AAPFU0939F1ZV" {
		t.Errorf("gst = %q, want uppercase trimmed", in.GST)
	}
	if in.CompanyName != "Acme Furniture" || in.Mobile != "9876543210" {
		t.Error("fields were not trimmed")
	}
}
