package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/pmrathi94/VivahSetu/pkg/config"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service issues and verifies numeric one-time codes.
type Service interface {
	Issue(ctx context.Context, otpType enums.OTPType, identifier string) (string, error)
	Verify(ctx context.Context, otpType enums.OTPType, identifier, code string) error
}

type service struct {
	store CodeStore
	cfg   config.OTPConfig
}

// NewService wires the OTP dependencies.
func NewService(store CodeStore, cfg config.OTPConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "otp code store required")
	}
	if cfg.Length <= 0 || cfg.TTL <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "otp length and ttl must be positive")
	}
	return &service{store: store, cfg: cfg}, nil
}

// Issue generates a fresh code and stores it, replacing any outstanding code
// for the same flow and identifier.
func (s *service) Issue(ctx context.Context, otpType enums.OTPType, identifier string) (string, error) {
	if !otpType.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid otp type")
	}
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if identifier == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "identifier required")
	}

	code, err := generateCode(s.cfg.Length)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	if err := s.store.Put(ctx, otpType, identifier, code, s.cfg.TTL); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}
	return code, nil
}

// Verify consumes the stored code. Unknown, expired, and mismatched codes all
// fail with the same message.
func (s *service) Verify(ctx context.Context, otpType enums.OTPType, identifier, code string) error {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if identifier == "" || strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "identifier and code required")
	}

	ok, err := s.store.Consume(ctx, otpType, identifier, strings.TrimSpace(code))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify otp")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired code")
	}
	return nil
}

func generateCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("random digit: %w", err)
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}
