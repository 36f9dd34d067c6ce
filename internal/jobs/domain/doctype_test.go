package domain

import "testing"

func TestResolveDocumentKind(t *testing.T) {
	cases := []struct {
		name       string
		sourceType string
		jobID      string
		want       DocumentKind
	}{
		{name: "explicit invoice wins", sourceType: "invoice", jobID: "JOB-1042", want: KindInvoice},
		{name: "explicit estimate wins", sourceType: "estimate", jobID: "INV-007", want: KindEstimate},
		{name: "explicit agreement wins", sourceType: "agreement", jobID: "JOB-9", want: KindAgreement},
		{name: "invoice prefix", jobID: "INV-007", want: KindInvoice},
		{name: "lowercase invoice prefix", jobID: "inv-007", want: KindInvoice},
		{name: "estimate prefix", jobID: "EST-114", want: KindEstimate},
		{name: "agreement prefix", jobID: "AG-23", want: KindAgreement},
		{name: "agreement substring", jobID: "DOC-AGR-17", want: KindAgreement},
		{name: "ad hoc job", jobID: "JOB-1042", want: KindUnknown},
		{name: "garbage source type falls through", sourceType: "warranty", jobID: "EST-2", want: KindEstimate},
		{name: "empty id", jobID: "", want: KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDocumentKind(tc.sourceType, tc.jobID)
			if got != tc.want {
				t.Fatalf("ResolveDocumentKind(%q, %q) = %q, want %q", tc.sourceType, tc.jobID, got, tc.want)
			}
		})
	}
}

func TestResolveDocumentKindIsDeterministic(t *testing.T) {
	first := ResolveDocumentKind("", "INV-100")
	for i := 0; i < 10; i++ {
		if got := ResolveDocumentKind("", "INV-100"); got != first {
			t.Fatalf("resolution changed between calls: %q vs %q", first, got)
		}
	}
}
