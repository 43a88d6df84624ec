package classify

import (
	"fmt"

	"github.com/Veraticus/mentat/internal/common"
	"github.com/Veraticus/mentat/internal/model"
)

// Reconcile aligns the model's records with the input transactions by
// position. When the model returns fewer records than transactions, the
// unclassified tail is filled with the raw remark and the fallback category;
// the returned count reports how many rows were backfilled so callers can
// warn the user. More records than transactions is an
// common.ErrClassificationOverflow.
func (c *Classifier) Reconcile(records []model.ClassifiedRecord, transactions []model.Transaction) ([]model.ClassifiedRecord, int, error) {
	if len(records) > len(transactions) {
		return nil, 0, fmt.Errorf("%w: model returned %d records for %d transactions",
			common.ErrClassificationOverflow, len(records), len(transactions))
	}

	if len(records) == len(transactions) {
		return records, 0, nil
	}

	missing := len(transactions) - len(records)
	reconciled := make([]model.ClassifiedRecord, 0, len(transactions))
	reconciled = append(reconciled, records...)
	for _, txn := range transactions[len(records):] {
		reconciled = append(reconciled, model.ClassifiedRecord{
			Transaction: txn.Remark,
			Category:    c.fallback,
		})
	}

	return reconciled, missing, nil
}
