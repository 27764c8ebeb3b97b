package oneinch

import "encoding/json"

// Classification tries each known error shape in a fixed order and returns
// the first structural match. The order is a design decision, not an
// accident of iteration:
//
//  1. rich     - swap/quote errors: statusCode + error, optional
//                description, meta and requestId
//  2. generic  - error + description without a statusCode
//  3. message  - bare {"message": ...} bodies emitted by some gateways
//
// An ambiguous body satisfying several shapes always resolves to the
// earliest one. Bodies matching none are wrapped verbatim in a
// RawResponseError.
var decodeAttempts = []struct {
	name   string
	decode func(status int, requestID string, body []byte) (*APIError, bool)
}{
	{name: "rich", decode: decodeRichError},
	{name: "generic", decode: decodeGenericError},
	{name: "message", decode: decodeMessageError},
}

// Classify turns a failed HTTP response body into one typed error. The
// requestID argument is the locally generated correlation ID, used when the
// body itself carries none. Classify has no side effects and never retries.
func Classify(status int, requestID string, body []byte) error {
	for _, attempt := range decodeAttempts {
		if apiErr, ok := attempt.decode(status, requestID, body); ok {
			return apiErr
		}
	}
	return &RawResponseError{StatusCode: status, Body: body}
}

// richErrorBody is the swap/quote error shape. Discriminators: statusCode
// and error must both be present.
type richErrorBody struct {
	StatusCode  int         `json:"statusCode"`
	Err         string      `json:"error"`
	Description string      `json:"description"`
	RequestID   string      `json:"requestId"`
	Meta        []ErrorMeta `json:"meta"`
}

func decodeRichError(status int, requestID string, body []byte) (*APIError, bool) {
	var parsed richErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false
	}
	if parsed.StatusCode == 0 || parsed.Err == "" {
		return nil, false
	}
	if parsed.RequestID == "" {
		parsed.RequestID = requestID
	}
	return &APIError{
		StatusCode:  parsed.StatusCode,
		Code:        parsed.Err,
		Description: parsed.Description,
		RequestID:   parsed.RequestID,
		Meta:        parsed.Meta,
	}, true
}

// genericErrorBody is the orderbook/token error shape. Discriminators: error
// and description, no statusCode of its own.
type genericErrorBody struct {
	Err         string `json:"error"`
	Description string `json:"description"`
}

func decodeGenericError(status int, requestID string, body []byte) (*APIError, bool) {
	var parsed genericErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false
	}
	if parsed.Err == "" || parsed.Description == "" {
		return nil, false
	}
	return &APIError{
		StatusCode:  status,
		Code:        parsed.Err,
		Description: parsed.Description,
		RequestID:   requestID,
	}, true
}

// messageErrorBody is the bare gateway shape. Discriminator: message.
type messageErrorBody struct {
	Message string `json:"message"`
}

func decodeMessageError(status int, requestID string, body []byte) (*APIError, bool) {
	var parsed messageErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false
	}
	if parsed.Message == "" {
		return nil, false
	}
	return &APIError{
		StatusCode: status,
		Code:       parsed.Message,
		RequestID:  requestID,
	}, true
}
