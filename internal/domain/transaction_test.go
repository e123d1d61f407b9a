package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionRecord_PresentAndAbsentSources(t *testing.T) {
	tests := []struct {
		name        string
		sources     map[Source]SourceDetail
		wantPresent []Source
		wantAbsent  []Source
	}{
		{
			name:        "all present",
			sources:     map[Source]SourceDetail{SourceCBS: {}, SourceSwitch: {}, SourceNPCI: {}},
			wantPresent: []Source{SourceCBS, SourceSwitch, SourceNPCI},
			wantAbsent:  nil,
		},
		{
			name:        "declared order independent of map iteration",
			sources:     map[Source]SourceDetail{SourceNPCI: {}, SourceCBS: {}},
			wantPresent: []Source{SourceCBS, SourceNPCI},
			wantAbsent:  []Source{SourceSwitch},
		},
		{
			name:        "none present",
			sources:     map[Source]SourceDetail{},
			wantPresent: []Source{},
			wantAbsent:  []Source{SourceCBS, SourceSwitch, SourceNPCI},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := TransactionRecord{RRN: "RRN1", Sources: tt.sources}
			assert.Equal(t, tt.wantPresent, r.PresentSources())
			assert.Equal(t, tt.wantAbsent, r.AbsentSources())
		})
	}
}

func TestSource_DisplayName(t *testing.T) {
	assert.Equal(t, "CBS", SourceCBS.DisplayName())
	assert.Equal(t, "Switch", SourceSwitch.DisplayName())
	assert.Equal(t, "NPCI", SourceNPCI.DisplayName())
	assert.Equal(t, "upi", Source("upi").DisplayName())
}

func TestSummarize(t *testing.T) {
	records := []TransactionRecord{
		{RRN: "R1", Status: StatusHanging},
		{RRN: "R2", Status: StatusHanging, ZeroDifference: true},
		{RRN: "R3", Status: StatusPartialMismatch, ZeroDifference: true},
	}

	summary := Summarize(records)

	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 2, summary.ZeroDifference)
	assert.Equal(t, 2, summary.ByStatus[StatusHanging])
	assert.Equal(t, 1, summary.ByStatus[StatusPartialMismatch])
	assert.Equal(t, 0, summary.ByStatus[StatusMatched])

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.TotalRecords)
	assert.Empty(t, empty.ByStatus)
}

func TestRawBundle_Fragment(t *testing.T) {
	frag := &RawFragment{Amount: decimal.NewFromInt(5)}
	b := RawBundle{Status: "HANGING", Switch: frag}

	assert.Nil(t, b.Fragment(SourceCBS))
	assert.Equal(t, frag, b.Fragment(SourceSwitch))
	assert.Nil(t, b.Fragment(Source("other")))
}
