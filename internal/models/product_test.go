package models

import "testing"

func TestIsValidProductCategory(t *testing.T) {
	for _, c := range ProductCategories {
		if !IsValidProductCategory(c) {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range []string{"", "chair", "Sofa", "Tables"} {
		if IsValidProductCategory(c) {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestIsValidDealerStatus(t *testing.T) {
	for _, s := range DealerStatuses {
		if !IsValidDealerStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if IsValidDealerStatus("active") || IsValidDealerStatus("") {
		t.Error("unknown dealer statuses accepted")
	}
}
