package services

import "testing"

func TestGenerateQuotePDF_Basic(t *testing.T) {
	data := BuildQuoteExportData(
		QuoteProjectInfo{Name: "Flat 402", ClientName: "Mr. Rao", SiteAddress: "Baner, Pune", Date: "2025-01-15"},
		sampleQuoteItems(), 18, 10,
	)

	result, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateQuotePDF_Empty(t *testing.T) {
	data := BuildQuoteExportData(QuoteProjectInfo{Date: "2025-01-15"}, nil, 18, 0)

	result, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
}
