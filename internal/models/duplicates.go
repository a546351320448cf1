package models

// DuplicateItem is one member of a group of likely duplicate transactions.
type DuplicateItem struct {
	ID            int    `json:"id"`
	Description   string `json:"description"`
	SourceAccount string `json:"source_account"`
	Category      string `json:"category"`
}

// DuplicateGroup is a set of transactions sharing date, amount and normalized description.
// Amount is kept as the string the backend sends.
type DuplicateGroup struct {
	Date        string          `json:"date"`
	Amount      string          `json:"amount"`
	Description string          `json:"description"`
	Count       int             `json:"count"`
	Items       []DuplicateItem `json:"items"`
}

// DuplicateReport is the response of GET /api/duplicates.
type DuplicateReport struct {
	Duplicates  []DuplicateGroup `json:"duplicates"`
	TotalGroups int              `json:"total_groups"`
}

// RedundantIDs returns the ids of every item but the first in each group,
// the set that removing duplicates would delete.
func (r DuplicateReport) RedundantIDs() []int {
	var ids []int
	for _, g := range r.Duplicates {
		for i, item := range g.Items {
			if i == 0 {
				continue
			}
			ids = append(ids, item.ID)
		}
	}
	return ids
}
