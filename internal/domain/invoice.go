package domain

import "encoding/json"

// LineItem is a single extracted invoice line before matching. Fields the
// matcher does not know about (vendor codes, row numbers, ...) are preserved
// verbatim in Extra and passed through to the output.
type LineItem struct {
	ProductName string
	Quantity    *float64
	UnitPrice   *float64
	Subtotal    *float64
	Extra       map[string]json.RawMessage
}

// UnmarshalJSON captures known fields and keeps every unknown key in Extra
func (li *LineItem) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, dst interface{}) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		return json.Unmarshal(v, dst)
	}

	if err := take("product_name", &li.ProductName); err != nil {
		return err
	}
	if err := take("quantity", &li.Quantity); err != nil {
		return err
	}
	if err := take("unit_price", &li.UnitPrice); err != nil {
		return err
	}
	if err := take("subtotal", &li.Subtotal); err != nil {
		return err
	}

	li.Extra = raw
	return nil
}

// MarshalJSON restores the passthrough fields alongside the known ones
func (li LineItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(li.Extra)+4)
	for k, v := range li.Extra {
		out[k] = v
	}
	out["product_name"] = li.ProductName
	if li.Quantity != nil {
		out["quantity"] = *li.Quantity
	}
	if li.UnitPrice != nil {
		out["unit_price"] = *li.UnitPrice
	}
	if li.Subtotal != nil {
		out["subtotal"] = *li.Subtotal
	}
	return json.Marshal(out)
}

// Invoice is the extracted invoice payload. Only the items key is
// interpreted; everything else (vendor_name, invoice_number, totals, ...)
// is passed through untouched.
type Invoice struct {
	Items    []LineItem
	HasItems bool
	Extra    map[string]json.RawMessage
}

// UnmarshalJSON splits the payload into items and passthrough keys.
// A payload without an items key is valid; HasItems records the difference
// so the caller can return such an invoice unchanged.
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if itemsRaw, ok := raw["items"]; ok {
		inv.HasItems = true
		delete(raw, "items")
		if err := json.Unmarshal(itemsRaw, &inv.Items); err != nil {
			return err
		}
	}

	inv.Extra = raw
	return nil
}

// MarshalJSON re-assembles the invoice, used for the passthrough case
func (inv Invoice) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(inv.Extra)+1)
	for k, v := range inv.Extra {
		out[k] = v
	}
	if inv.HasItems {
		items := inv.Items
		if items == nil {
			items = []LineItem{}
		}
		out["items"] = items
	}
	return json.Marshal(out)
}

// ProcessedInvoice is the matcher output: the original invoice with every
// line item replaced by its matched form
type ProcessedInvoice struct {
	Items    []MatchedLineItem
	HasItems bool
	Extra    map[string]json.RawMessage
}

// MarshalJSON emits passthrough keys plus the matched items
func (p ProcessedInvoice) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Extra)+1)
	for k, v := range p.Extra {
		out[k] = v
	}
	if p.HasItems {
		items := p.Items
		if items == nil {
			items = []MatchedLineItem{}
		}
		out["items"] = items
	}
	return json.Marshal(out)
}
