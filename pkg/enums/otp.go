package enums

import "fmt"

// OTPType scopes a one-time code to the flow that issued it.
type OTPType string

const (
	OTPPasswordReset     OTPType = "password_reset"
	OTPEmailVerification OTPType = "email_verification"
)

func (t OTPType) String() string {
	return string(t)
}

func (t OTPType) IsValid() bool {
	switch t {
	case OTPPasswordReset, OTPEmailVerification:
		return true
	}
	return false
}

func ParseOTPType(value string) (OTPType, error) {
	t := OTPType(value)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid otp type %q", value)
	}
	return t, nil
}
