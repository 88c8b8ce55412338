package server_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-portal/server"
)

func TestLoginPayloadValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := server.LoginPayload{Email: testEmail, Password: testPassword}
		require.NoError(t, p.Validate())
	})

	t.Run("bad email shape", func(t *testing.T) {
		p := server.LoginPayload{Email: "nope", Password: testPassword}
		err := p.Validate()
		require.Error(t, err)
		require.Contains(t, server.FormatValidationErrorToMap(err), "email")
	})

	t.Run("missing password", func(t *testing.T) {
		p := server.LoginPayload{Email: testEmail}
		err := p.Validate()
		require.Contains(t, server.FormatValidationErrorToMap(err), "password")
	})
}

func TestRegisterPayloadValidate(t *testing.T) {
	t.Run("password under six characters", func(t *testing.T) {
		p := server.RegisterPayload{Email: testEmail, Password: "abc12", ConfirmPassword: "abc12"}
		err := p.Validate()
		require.Contains(t, server.FormatValidationErrorToMap(err), "password")
	})

	t.Run("six characters is enough", func(t *testing.T) {
		p := server.RegisterPayload{Email: testEmail, Password: "abc123", ConfirmPassword: "abc123"}
		require.NoError(t, p.Validate())
	})

	t.Run("mismatch lands on the confirmation field", func(t *testing.T) {
		p := server.RegisterPayload{Email: testEmail, Password: "abc123", ConfirmPassword: "abc124"}
		err := p.Validate()
		fields := server.FormatValidationErrorToMap(err)
		require.Contains(t, fields, "confirm_password")
		require.NotContains(t, fields, "password")
	})
}

func TestVerifyOTPPayloadValidate(t *testing.T) {
	cases := []struct {
		name string
		otp  string
		ok   bool
	}{
		{"six digits", "123456", true},
		{"five digits", "12345", false},
		{"seven digits", "1234567", false},
		{"letters", "12a456", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := server.VerifyOTPPayload{OTP: tc.otp}.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, server.FormatValidationErrorToMap(err), "otp")
			}
		})
	}
}

func TestResetPasswordPayloadValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := server.ResetPasswordPayload{OTP: testOTP, Password: "abc123", ConfirmPassword: "abc123"}
		require.NoError(t, p.Validate())
	})

	t.Run("mismatch is a confirmation-field error", func(t *testing.T) {
		p := server.ResetPasswordPayload{OTP: testOTP, Password: "abc123", ConfirmPassword: "abc124"}
		fields := server.FormatValidationErrorToMap(p.Validate())
		require.Contains(t, fields, "confirm_password")
	})
}

func TestChangePasswordPayloadValidate(t *testing.T) {
	t.Run("old password required", func(t *testing.T) {
		p := server.ChangePasswordPayload{NewPassword: "abc123", ConfirmPassword: "abc123"}
		fields := server.FormatValidationErrorToMap(p.Validate())
		require.Contains(t, fields, "old_password")
	})

	t.Run("valid", func(t *testing.T) {
		p := server.ChangePasswordPayload{OldPassword: "old", NewPassword: "abc123", ConfirmPassword: "abc123"}
		require.NoError(t, p.Validate())
	})
}

func TestFormatValidationErrorToMap(t *testing.T) {
	t.Run("nil error gives empty map", func(t *testing.T) {
		require.Empty(t, server.FormatValidationErrorToMap(nil))
	})
}
