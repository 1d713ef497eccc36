package model

import "encoding/json"

// TaxSet is the tax field of a credit-note line item. On the wire it is
// either an empty element (no applicable taxes) or a wrapper holding an
// impuesto list; the two shapes must be told apart before reducing, so the
// variant is tagged here once instead of type-narrowed at every call site.
type TaxSet struct {
	entries []TaxEntry
	present bool
}

// NewTaxSet builds the list variant. An empty slice still yields the empty
// variant: presence means at least one impuesto block existed.
func NewTaxSet(entries []TaxEntry) TaxSet {
	if len(entries) == 0 {
		return TaxSet{}
	}
	return TaxSet{entries: entries, present: true}
}

// EmptyTaxSet is the no-applicable-taxes variant.
func EmptyTaxSet() TaxSet {
	return TaxSet{}
}

// Empty reports whether this is the no-taxes variant. Consumers must check
// this before reading Entries.
func (s TaxSet) Empty() bool {
	return !s.present
}

// Entries returns the impuesto list; nil for the empty variant.
func (s TaxSet) Entries() []TaxEntry {
	return s.entries
}

// MarshalJSON keeps the wire quirk visible to consumers: the empty variant
// serializes as [], the list variant as {"impuesto": [...]}.
func (s TaxSet) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return []byte("[]"), nil
	}
	return json.Marshal(struct {
		Impuesto []TaxEntry `json:"impuesto"`
	}{Impuesto: s.entries})
}

// UnmarshalJSON accepts both serialized variants.
func (s *TaxSet) UnmarshalJSON(data []byte) error {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		*s = EmptyTaxSet()
		return nil
	}
	var wrapper struct {
		Impuesto []TaxEntry `json:"impuesto"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	*s = NewTaxSet(wrapper.Impuesto)
	return nil
}
