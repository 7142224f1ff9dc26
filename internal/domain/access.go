package domain

import "encoding/json"

// AccessStatus is the tri-state result of probing the stregsystem.
type AccessStatus int

const (
	// AccessUnavailable means the service root did not respond successfully.
	AccessUnavailable AccessStatus = iota
	// AccessServiceOnly means the service is reachable but the API is not
	// supported. Partial availability is a valid terminal state, not an error.
	AccessServiceOnly
	// AccessAPIAvailable means both the service root and the API responded.
	AccessAPIAvailable
)

// String implements fmt.Stringer.
func (s AccessStatus) String() string {
	switch s {
	case AccessUnavailable:
		return "unavailable"
	case AccessServiceOnly:
		return "service_only"
	case AccessAPIAvailable:
		return "api_available"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the status as its string form.
func (s AccessStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
