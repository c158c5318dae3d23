package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/i18n"
)

func TestBuildVerifyCodeContent(t *testing.T) {
	tests := []struct {
		name                string
		locale              string
		purpose             string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:    "register_es",
			locale:  i18n.LocaleES,
			purpose: constants.VerifyPurposeRegister,
			wantSubjectContains: []string{
				"Código de registro",
			},
			wantBodyContains: []string{
				"123456",
				"completar tu registro",
			},
		},
		{
			name:    "login_en",
			locale:  i18n.LocaleEN,
			purpose: constants.VerifyPurposeLogin,
			wantSubjectContains: []string{
				"Sign-in Code",
			},
			wantBodyContains: []string{
				"123456",
				"signing in",
			},
		},
		{
			name:    "unknown_purpose_falls_back",
			locale:  i18n.LocaleEN,
			purpose: "something-else",
			wantSubjectContains: []string{
				"Verification Code",
			},
			wantBodyContains: []string{
				"email verification",
			},
		},
		{
			name:    "unknown_locale_defaults_to_spanish",
			locale:  "fr-FR",
			purpose: constants.VerifyPurposeLogin,
			wantSubjectContains: []string{
				"Código de acceso",
			},
			wantBodyContains: []string{
				"iniciar sesión",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := buildVerifyCodeContent("123456", tt.purpose, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestSendVerifyCodeDisabled(t *testing.T) {
	svc := NewEmailService(nil)
	if err := svc.SendVerifyCode("user@example.com", "123456", constants.VerifyPurposeLogin, i18n.LocaleES); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
