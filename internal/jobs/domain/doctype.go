package domain

import "strings"

// DocumentKind classifies the sales document a job originated from.
type DocumentKind string

const (
	KindInvoice   DocumentKind = "invoice"
	KindEstimate  DocumentKind = "estimate"
	KindAgreement DocumentKind = "agreement"
	KindUnknown   DocumentKind = "unknown"
)

// ValidDocumentKind reports whether k names a real document kind.
func ValidDocumentKind(k DocumentKind) bool {
	return k == KindInvoice || k == KindEstimate || k == KindAgreement
}

// ResolveDocumentKind returns the document kind a job is linked to. Jobs
// created from a document carry an explicit sourceType, which always wins.
// For legacy records without one, the identifier prefix is used as a
// fallback. Ad-hoc jobs resolve to KindUnknown and are excluded from the
// cancellation cascade.
func ResolveDocumentKind(sourceType, jobID string) DocumentKind {
	if kind := DocumentKind(sourceType); ValidDocumentKind(kind) {
		return kind
	}

	id := strings.ToUpper(jobID)
	switch {
	case strings.HasPrefix(id, "INV"):
		return KindInvoice
	case strings.HasPrefix(id, "EST"):
		return KindEstimate
	case strings.HasPrefix(id, "AG"), strings.Contains(id, "AGR"):
		return KindAgreement
	}

	return KindUnknown
}
