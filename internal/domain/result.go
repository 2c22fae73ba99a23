package domain

import "fmt"

// ResultCode tells the caller how an operation ended
type ResultCode int

const (
	ActionSuccessful ResultCode = iota
	ActionFailed
	InvalidMemberId
	InvalidProductId
	InvalidProductName
	InvalidOrderNumber
	InvalidOrderQuantity
)

var resultCodeNames = map[ResultCode]string{
	ActionSuccessful:     "ACTION_SUCCESSFUL",
	ActionFailed:         "ACTION_FAILED",
	InvalidMemberId:      "INVALID_MEMBER_ID",
	InvalidProductId:     "INVALID_PRODUCT_ID",
	InvalidProductName:   "INVALID_PRODUCT_NAME",
	InvalidOrderNumber:   "INVALID_ORDER_NUMBER",
	InvalidOrderQuantity: "INVALID_ORDER_QUANTITY",
}

func (c ResultCode) String() string {
	if s, ok := resultCodeNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// MarshalText encodes the code by name so API payloads stay readable
func (c ResultCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ResultCode) UnmarshalText(text []byte) error {
	for code, name := range resultCodeNames {
		if name == string(text) {
			*c = code
			return nil
		}
	}
	return fmt.Errorf("unknown result code %q", text)
}

// Success reports whether the operation completed
func (c ResultCode) Success() bool {
	return c == ActionSuccessful
}
