package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-forcematch/internal/domain"
)

func TestNormalizeBundles(t *testing.T) {
	tests := []struct {
		name    string
		bundles map[string]domain.RawBundle
		check   func(t *testing.T, records []domain.TransactionRecord)
	}{
		{
			name: "hanging record with single source",
			bundles: map[string]domain.RawBundle{
				"RRN100": {
					Status: "HANGING",
					CBS:    &domain.RawFragment{Amount: 500.0, Date: "2026-01-01"},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				r := records[0]
				assert.Equal(t, "RRN100", r.RRN)
				assert.Equal(t, domain.StatusHanging, r.Status)
				assert.Equal(t, "Investigate missing in Switch, NPCI", r.SuggestedAction)
				assert.False(t, r.ZeroDifference, "a single present source is never zero-difference")

				detail, ok := r.Detail(domain.SourceCBS)
				require.True(t, ok)
				assert.True(t, detail.Amount.Equal(decimal.NewFromInt(500)))
				assert.True(t, detail.AmountKnown)
				assert.Equal(t, "2026-01-01", detail.Date)
				assert.Equal(t, "-", detail.Reference)
			},
		},
		{
			name: "equal amounts across two sources yield zero difference",
			bundles: map[string]domain.RawBundle{
				"RRN200": {
					Status: "PARTIAL_MATCH",
					CBS:    &domain.RawFragment{Amount: 1000.00, Date: "2026-01-02"},
					Switch: &domain.RawFragment{Amount: "1000.00", TranDate: "2026-01-02"},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				r := records[0]
				assert.Equal(t, domain.StatusPartialMatch, r.Status, "status passes through unchanged")
				assert.True(t, r.ZeroDifference)
				assert.Equal(t, []domain.Source{domain.SourceCBS, domain.SourceSwitch}, r.PresentSources())

				sw, ok := r.Detail(domain.SourceSwitch)
				require.True(t, ok)
				assert.Equal(t, "2026-01-02", sw.Date, "tran_date is the date fallback")
			},
		},
		{
			name: "differing amounts are not zero difference",
			bundles: map[string]domain.RawBundle{
				"RRN201": {
					Status: "PARTIAL_MISMATCH",
					CBS:    &domain.RawFragment{Amount: 1000.00},
					Switch: &domain.RawFragment{Amount: 999.99},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				assert.False(t, records[0].ZeroDifference)
			},
		},
		{
			name: "transaction-id prefix in the rrn slot is reclassified",
			bundles: map[string]domain.RawBundle{
				"KEY300": {
					Status: "MISMATCH",
					Switch: &domain.RawFragment{
						RRN:       "TXN00991",
						ActualRRN: "RRN991",
						Amount:    75.25,
					},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				r := records[0]
				assert.Equal(t, "RRN991", r.RRN, "actual_rrn holds the true reference")
				detail, _ := r.Detail(domain.SourceSwitch)
				assert.Equal(t, "TXN00991", detail.Reference)
			},
		},
		{
			name: "transaction-id prefix with no alternate rrn falls back to the bundle key",
			bundles: map[string]domain.RawBundle{
				"KEY301": {
					Status: "HANGING",
					NPCI:   &domain.RawFragment{RRN: "tid-445", Amount: 10},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				r := records[0]
				assert.Equal(t, "KEY301", r.RRN)
				detail, _ := r.Detail(domain.SourceNPCI)
				assert.Equal(t, "tid-445", detail.Reference)
			},
		},
		{
			name: "reference resolution order txn_id, tran_id, reference",
			bundles: map[string]domain.RawBundle{
				"RRN400": {
					Status: "MATCHED",
					CBS:    &domain.RawFragment{TranID: "T2", Reference: "R3", Amount: 1},
					Switch: &domain.RawFragment{TxnID: "T1", TranID: "T2", Amount: 1},
					NPCI:   &domain.RawFragment{Reference: "R3", Amount: 1},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				r := records[0]
				cbs, _ := r.Detail(domain.SourceCBS)
				sw, _ := r.Detail(domain.SourceSwitch)
				npci, _ := r.Detail(domain.SourceNPCI)
				assert.Equal(t, "T2", cbs.Reference)
				assert.Equal(t, "T1", sw.Reference)
				assert.Equal(t, "R3", npci.Reference)
			},
		},
		{
			name: "malformed amounts degrade to zero and stay out of the zero-difference set",
			bundles: map[string]domain.RawBundle{
				"RRN500": {
					Status: "PARTIAL_MISMATCH",
					CBS:    &domain.RawFragment{Amount: "not-a-number"},
					Switch: &domain.RawFragment{},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				r := records[0]
				assert.False(t, r.ZeroDifference, "two zero defaults must not count as equal amounts")

				cbs, _ := r.Detail(domain.SourceCBS)
				assert.True(t, cbs.Amount.IsZero())
				assert.False(t, cbs.AmountKnown)
				assert.Equal(t, "-", cbs.Date)
			},
		},
		{
			name: "bundle with no fragments is not materialized",
			bundles: map[string]domain.RawBundle{
				"RRN600": {Status: "HANGING"},
				"RRN601": {
					Status: "HANGING",
					CBS:    &domain.RawFragment{Amount: 1},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				assert.Equal(t, "RRN601", records[0].RRN)
			},
		},
		{
			name: "unknown status falls through to manual review",
			bundles: map[string]domain.RawBundle{
				"RRN700": {
					Status: "SOMETHING_NEW",
					CBS:    &domain.RawFragment{Amount: 1},
				},
			},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				require.Len(t, records, 1)
				assert.Equal(t, domain.Status("SOMETHING_NEW"), records[0].Status)
				assert.Equal(t, "Manual review required", records[0].SuggestedAction)
			},
		},
		{
			name:    "empty input yields an empty list",
			bundles: map[string]domain.RawBundle{},
			check: func(t *testing.T, records []domain.TransactionRecord) {
				assert.Empty(t, records)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NormalizeBundles(tt.bundles))
		})
	}
}

func TestNormalizeBundles_Idempotent(t *testing.T) {
	bundles := map[string]domain.RawBundle{
		"RRN2": {Status: "HANGING", Switch: &domain.RawFragment{Amount: 20.5}},
		"RRN1": {
			Status: "PARTIAL_MATCH",
			CBS:    &domain.RawFragment{Amount: "10.00", Date: "2026-02-01"},
			NPCI:   &domain.RawFragment{Amount: "10.00", TxnID: "TXN1", ActualRRN: "RRN1"},
		},
	}

	first := NormalizeBundles(bundles)
	second := NormalizeBundles(bundles)

	assert.Equal(t, first, second, "normalization carries no hidden incremental state")
	require.Len(t, first, 2)
	assert.Equal(t, "RRN1", first[0].RRN, "output is sorted by RRN")
	assert.Equal(t, "RRN2", first[1].RRN)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		want      decimal.Decimal
		wantKnown bool
	}{
		{"json number", 1000.5, decimal.NewFromFloat(1000.5), true},
		{"numeric string", "500.5000", decimal.RequireFromString("500.5000"), true},
		{"padded string", "  42.00 ", decimal.New(42, 0), true},
		{"int", 7, decimal.NewFromInt(7), true},
		{"garbage string", "12abc", decimal.Zero, false},
		{"empty string", "", decimal.Zero, false},
		{"nil", nil, decimal.Zero, false},
		{"bool", true, decimal.Zero, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := parseAmount(tt.input)
			assert.Equal(t, tt.wantKnown, known)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func BenchmarkNormalizeBundles(b *testing.B) {
	bundles := make(map[string]domain.RawBundle, 1000)
	for i := 0; i < 1000; i++ {
		key := "RRN" + string(rune('A'+i%26)) + string(rune('A'+(i/26)%26)) + string(rune('A'+(i/676)%26))
		bundles[key] = domain.RawBundle{
			Status: "PARTIAL_MATCH",
			CBS:    &domain.RawFragment{Amount: 150.00, Date: "2026-01-01"},
			Switch: &domain.RawFragment{Amount: "150.00", TxnID: "TXN1"},
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NormalizeBundles(bundles)
	}
}
