package domain

// Summary provides high-level statistics over one normalized snapshot.
type Summary struct {
	TotalRecords   int            `json:"total_records"`
	ByStatus       map[Status]int `json:"by_status"`
	ZeroDifference int            `json:"zero_difference"`
}

// Summarize derives a Summary from a record slice. It is recomputed from
// scratch on every snapshot, like the snapshot itself.
func Summarize(records []TransactionRecord) Summary {
	summary := Summary{
		TotalRecords: len(records),
		ByStatus:     make(map[Status]int),
	}
	for _, r := range records {
		summary.ByStatus[r.Status]++
		if r.ZeroDifference {
			summary.ZeroDifference++
		}
	}
	return summary
}
