package query

import (
	"cmp"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Validate reports the first malformed field of the query and its nested queries.
func (q *TxQuery) Validate() error {
	return q.validate("", true)
}

// Validate reports the first malformed field of the query and its back-reference.
func (q *TransferQuery) Validate() error {
	return q.validate("")
}

// Validate reports the first malformed field of the query and its back-reference.
func (q *OutputQuery) Validate() error {
	return q.validate("")
}

func (q *TxQuery) validate(prefix string, allowNested bool) error {
	if q == nil {
		return nil
	}
	if err := checkRange(prefix+"MinHeight", q.MinHeight, q.MaxHeight); err != nil {
		return err
	}
	if !allowNested {
		if q.TransferQuery != nil {
			return &model.InvalidQueryError{Field: prefix + "TransferQuery", Reason: "back-reference may only filter transaction fields"}
		}
		if q.OutputQuery != nil {
			return &model.InvalidQueryError{Field: prefix + "OutputQuery", Reason: "back-reference may only filter transaction fields"}
		}
		return nil
	}
	if err := q.TransferQuery.validate(prefix + "TransferQuery."); err != nil {
		return err
	}
	return q.OutputQuery.validate(prefix + "OutputQuery.")
}

func (q *TransferQuery) validate(prefix string) error {
	if q == nil {
		return nil
	}
	if err := checkRange(prefix+"MinAmount", q.MinAmount, q.MaxAmount); err != nil {
		return err
	}
	return q.TxQuery.validate(prefix+"TxQuery.", false)
}

func (q *OutputQuery) validate(prefix string) error {
	if q == nil {
		return nil
	}
	if err := checkRange(prefix+"MinAmount", q.MinAmount, q.MaxAmount); err != nil {
		return err
	}
	return q.TxQuery.validate(prefix+"TxQuery.", false)
}

func checkRange[T cmp.Ordered](field string, lo, hi *T) error {
	if lo == nil || hi == nil || *lo <= *hi {
		return nil
	}
	return &model.InvalidQueryError{
		Field:  field,
		Reason: fmt.Sprintf("minimum %v exceeds maximum %v", *lo, *hi),
	}
}
