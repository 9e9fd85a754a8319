package domain

import "encoding/json"

// FallbackCustomerName is used when an embedded customer payload cannot be
// decoded. Kept in Portuguese to match the storefront copy.
const FallbackCustomerName = "Cliente"

// NormalizeCustomerInfo decodes a customer payload that historically was
// stored either as a JSON-encoded string or as a structured object. All
// callers go through this one function so the rest of the code only ever
// sees the struct form.
func NormalizeCustomerInfo(raw []byte) CustomerInfo {
	fallback := CustomerInfo{Name: FallbackCustomerName}
	if len(raw) == 0 {
		return fallback
	}

	var info CustomerInfo
	if err := json.Unmarshal(raw, &info); err == nil && info.Name != "" {
		return info
	}

	// Double-encoded variant: a JSON string holding the object.
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &info); err == nil && info.Name != "" {
			return info
		}
	}

	return fallback
}
