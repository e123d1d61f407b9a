package usecase

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"recon-forcematch/internal/domain"
)

// txnIDPrefixes flag a resolved reconciliation reference that actually
// carries a source transaction identifier. The upstream feeds occasionally
// put the identifier in the RRN slot; the fallback order below undoes that.
var txnIDPrefixes = []string{"txn", "tid"}

// NormalizeBundles turns a keyed bundle map into unified transaction
// records. It is pure and total: malformed fields degrade to defaults
// (amount 0, date "-") and never abort the batch. Bundles with no fragment
// at all are not materialized. Output is sorted by RRN so normalizing the
// same snapshot twice yields identical slices.
func NormalizeBundles(bundles map[string]domain.RawBundle) []domain.TransactionRecord {
	records := make([]domain.TransactionRecord, 0, len(bundles))
	for key, bundle := range bundles {
		if record, ok := normalizeBundle(key, bundle); ok {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].RRN < records[j].RRN })
	return records
}

func normalizeBundle(key string, bundle domain.RawBundle) (domain.TransactionRecord, bool) {
	sources := make(map[domain.Source]domain.SourceDetail, len(domain.SourceOrder))
	var amounts []decimal.Decimal
	rrn := key
	rrnResolved := false

	for _, src := range domain.SourceOrder {
		frag := bundle.Fragment(src)
		if frag == nil {
			continue
		}

		fragRRN, reference := resolveReferences(key, frag)
		// The first present fragment in declared order wins the record RRN.
		if !rrnResolved {
			rrn = fragRRN
			rrnResolved = true
		}

		amount, known := parseAmount(frag.Amount)
		if known {
			amounts = append(amounts, amount)
		}

		sources[src] = domain.SourceDetail{
			Amount:      amount,
			AmountKnown: known,
			Date:        resolveDate(frag),
			Time:        frag.Time,
			Description: frag.Description,
			Reference:   reference,
			DebitCredit: firstNonEmpty(frag.DebitCredit, frag.DrCr),
			Status:      frag.Status,
		}
	}

	if len(sources) == 0 {
		return domain.TransactionRecord{}, false
	}

	record := domain.TransactionRecord{
		RRN:            rrn,
		Status:         domain.Status(bundle.Status),
		Sources:        sources,
		ZeroDifference: zeroDifference(amounts),
	}
	record.SuggestedAction = SuggestAction(record.Status, record.PresentSources())
	return record, true
}

// resolveReferences resolves the reconciliation reference and the source's
// own transaction identifier for one fragment:
//
//  1. RRN = the fragment's own rrn field, else the bundle key.
//  2. Reference = txn_id, else tran_id, else reference, else "-".
//  3. If the resolved RRN carries a transaction-id-like prefix it is
//     reclassified as the reference, and the true RRN is searched in
//     actual_rrn, then retrieval_reference_number, falling back to the
//     bundle key.
//
// The fallback order encodes real upstream data inconsistencies; keep it.
func resolveReferences(key string, frag *domain.RawFragment) (rrn, reference string) {
	rrn = frag.RRN
	if rrn == "" {
		rrn = key
	}

	reference = firstNonEmpty(frag.TxnID, frag.TranID, frag.Reference)
	if reference == "" {
		reference = "-"
	}

	if hasTxnIDPrefix(rrn) {
		reference = rrn
		rrn = firstNonEmpty(frag.ActualRRN, frag.RetrievalReferenceNumber, key)
	}
	return rrn, reference
}

func hasTxnIDPrefix(s string) bool {
	lower := strings.ToLower(s)
	for _, prefix := range txnIDPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func resolveDate(frag *domain.RawFragment) string {
	return firstNonEmpty(frag.Date, frag.TranDate, "-")
}

// parseAmount accepts the amount shapes the feeds actually send (JSON
// number, numeric string) and reports whether a real value was present.
// Anything unparseable degrades to zero with known=false.
func parseAmount(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return val, true
	}
	return decimal.Zero, false
}

// zeroDifference holds iff at least two sources supplied a real amount and
// all supplied amounts are equal.
func zeroDifference(amounts []decimal.Decimal) bool {
	if len(amounts) < 2 {
		return false
	}
	for _, a := range amounts[1:] {
		if !a.Equal(amounts[0]) {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
