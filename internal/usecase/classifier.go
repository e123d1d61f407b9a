package usecase

import (
	"strings"

	"recon-forcematch/internal/domain"
)

// SuggestAction derives the operator-facing remediation hint from a bundle's
// status and the set of sources that reported the transaction. The absent
// list follows the declared source order and may be empty.
func SuggestAction(status domain.Status, present []domain.Source) string {
	switch status {
	case domain.StatusHanging:
		return "Investigate missing in " + joinDisplayNames(absentSources(present))
	case domain.StatusPartialMatch:
		return "Check missing system data in " + joinDisplayNames(absentSources(present))
	case domain.StatusMismatch:
		return "Critical: all three systems hold this transaction with differing values"
	case domain.StatusPartialMismatch:
		return "Warning: two systems hold this transaction with differing values"
	}
	return "Manual review required"
}

func absentSources(present []domain.Source) []domain.Source {
	presentSet := make(map[domain.Source]bool, len(present))
	for _, s := range present {
		presentSet[s] = true
	}
	var absent []domain.Source
	for _, s := range domain.SourceOrder {
		if !presentSet[s] {
			absent = append(absent, s)
		}
	}
	return absent
}

func joinDisplayNames(sources []domain.Source) string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.DisplayName())
	}
	return strings.Join(names, ", ")
}
