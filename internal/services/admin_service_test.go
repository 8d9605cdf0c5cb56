package services

import (
	"errors"
	"testing"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/models"
)

func strptr(s string) *string { return &s }

func TestUpdateAdminInputUpdates(t *testing.T) {
	cases := []struct {
		name    string
		in      UpdateAdminInput
		want    map[string]interface{}
		wantErr bool
	}{
		{
			"username only",
			UpdateAdminInput{Username: strptr("  ops2  ")},
			map[string]interface{}{"username": "ops2"},
			false,
		},
		{
			"email normalized",
			UpdateAdminInput{Email: strptr(" Ops@Acme.Example ")},
			map[string]interface{}{"email": "ops@acme.example"},
			false,
		},
		{
			"role to super admin",
			UpdateAdminInput{Role: strptr(models.RoleSuperAdmin)},
			map[string]interface{}{"role": models.RoleSuperAdmin},
			false,
		},
		{"nothing set", UpdateAdminInput{}, nil, true},
		{"blank username", UpdateAdminInput{Username: strptr("   ")}, nil, true},
		{"malformed email", UpdateAdminInput{Email: strptr("nope")}, nil, true},
		{"unknown role", UpdateAdminInput{Role: strptr("dealer")}, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.updates()
			if tc.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Errorf("updates = %v, want a validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("updates: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("updates has %d entries, want %d", len(got), len(tc.want))
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("updates[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}
