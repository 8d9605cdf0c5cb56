package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/models"
)

func TestCanCreateEnquiry(t *testing.T) {
	cases := []struct {
		name   string
		dealer models.Dealer
		want   error
	}{
		{
			"approved and active",
			models.Dealer{Status: models.DealerStatusApproved, IsActive: true},
			nil,
		},
		{
			"disabled",
			models.Dealer{Status: models.DealerStatusApproved, IsActive: false},
			apperr.ErrAccountDisabled,
		},
		{
			"pending",
			models.Dealer{Status: models.DealerStatusPending, IsActive: true},
			apperr.ErrNotApproved,
		},
		{
			"rejected",
			models.Dealer{Status: models.DealerStatusRejected, IsActive: true},
			apperr.ErrNotApproved,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanCreateEnquiry(&tc.dealer); got != tc.want {
				t.Errorf("CanCreateEnquiry = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreateEnquiryInputValidate(t *testing.T) {
	valid := CreateEnquiryInput{
		ProductID:    uuid.New(),
		ProductColor: "Walnut",
		Quantity:     3,
		Price:        250,
	}

	cases := []struct {
		name    string
		mutate  func(*CreateEnquiryInput)
		wantErr bool
	}{
		{"valid", func(in *CreateEnquiryInput) {}, false},
		{"zero price is allowed", func(in *CreateEnquiryInput) { in.Price = 0 }, false},
		{"missing product id", func(in *CreateEnquiryInput) { in.ProductID = uuid.Nil }, true},
		{"zero quantity", func(in *CreateEnquiryInput) { in.Quantity = 0 }, true},
		{"negative quantity", func(in *CreateEnquiryInput) { in.Quantity = -2 }, true},
		{"negative price", func(in *CreateEnquiryInput) { in.Price = -1 }, true},
		{"blank color", func(in *CreateEnquiryInput) { in.ProductColor = "   " }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
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
