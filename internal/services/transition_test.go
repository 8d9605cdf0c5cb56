package services

import (
	"testing"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/models"
)

func TestResolveTransition(t *testing.T) {
	cases := []struct {
		name         string
		rowsAffected int64
		current      string
		target       string
		want         error
	}{
		{"guard matched", 1, models.DealerStatusApproved, models.DealerStatusApproved, nil},
		{"repeat of same transition", 0, models.DealerStatusApproved, models.DealerStatusApproved, apperr.ErrAlreadyInState},
		{"lost race to another writer", 0, models.DealerStatusApproved, models.DealerStatusRejected, apperr.ErrStaleState},
		{"row disappeared into other state", 0, models.EnquiryStatusClosed, models.EnquiryStatusApproved, apperr.ErrStaleState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveTransition(tc.rowsAffected, tc.current, tc.target)
			if got != tc.want {
				t.Errorf("resolveTransition = %v, want %v", got, tc.want)
			}
		})
	}
}

// Two admins race to dispose the same pending dealer: one approve, one
// reject. Each guards its update on the pending status it read, so the
// database matches exactly one of them. The winner's update reports one row;
// the loser's reports zero rows against a row now in the winner's state.
func TestConcurrentDispositionsExactlyOneWins(t *testing.T) {
	// Approve wins the write.
	if err := resolveTransition(1, models.DealerStatusApproved, models.DealerStatusApproved); err != nil {
		t.Errorf("winner reported %v, want nil", err)
	}

	// Reject matched zero rows and re-reads the row as approved.
	err := resolveTransition(0, models.DealerStatusApproved, models.DealerStatusRejected)
	if err != apperr.ErrStaleState {
		t.Errorf("loser reported %v, want %v", err, apperr.ErrStaleState)
	}
}
