package models

import "testing"

func TestEnquiryBeforeSaveComputesTotal(t *testing.T) {
	e := Enquiry{Quantity: 3, Price: 250}
	if err := e.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if e.TotalAmount != 750 {
		t.Errorf("total = %v, want 750", e.TotalAmount)
	}
}

func TestEnquiryBeforeSaveOverridesStaleTotal(t *testing.T) {
	e := Enquiry{Quantity: 2, Price: 100, TotalAmount: 9999}
	if err := e.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if e.TotalAmount != 200 {
		t.Errorf("total = %v, want recomputed 200", e.TotalAmount)
	}
}

func TestEnquiryBeforeSaveZeroPrice(t *testing.T) {
	e := Enquiry{Quantity: 4, Price: 0, TotalAmount: 123}
	if err := e.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if e.TotalAmount != 0 {
		t.Errorf("total = %v, want 0", e.TotalAmount)
	}
}

func TestIsValidEnquiryStatus(t *testing.T) {
	for _, s := range EnquiryStatuses {
		if !IsValidEnquiryStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "open", "PENDING", "done"} {
		if IsValidEnquiryStatus(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
