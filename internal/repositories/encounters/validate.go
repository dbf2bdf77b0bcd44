package encounters

import (
	"sort"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

func validateRecord(record *Record) error {
	if record == nil {
		return rerrors.InvalidArgument("record cannot be nil")
	}
	vb := rerrors.NewValidationBuilder()
	if record.ID == "" {
		vb.RequiredField("id")
	}
	if record.SessionID == "" {
		vb.RequiredField("session_id")
	}
	return vb.Build()
}

func sortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}

func (r *Record) clone() *Record {
	out := *r
	out.Order = append(out.Order[:0:0], r.Order...)
	out.Log = append(out.Log[:0:0], r.Log...)
	out.Combatants = append(out.Combatants[:0:0], r.Combatants...)
	return &out
}
