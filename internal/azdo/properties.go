package azdo

import "github.com/hylla/orgbridge/internal/domain"

// propertiesFromRaw extracts the account and mail entries from an identity's
// untyped property bag. Values arrive either as bare strings or wrapped in a
// {"$type": ..., "$value": ...} object depending on the API response shape.
func propertiesFromRaw(raw interface{}) domain.IdentityProperties {
	bag, ok := raw.(map[string]interface{})
	if !ok {
		return domain.IdentityProperties{}
	}
	return domain.IdentityProperties{
		Account: propertyString(bag["Account"]),
		Mail:    propertyString(bag["Mail"]),
	}
}

// propertyString unwraps one property-bag value to its string form.
func propertyString(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case map[string]interface{}:
		if inner, ok := typed["$value"].(string); ok {
			return inner
		}
	}
	return ""
}
