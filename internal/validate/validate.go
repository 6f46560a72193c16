// Package validate implements client-side pre-validation mirroring
// server-enforced constraints. A failed validation never reaches the
// network; the server remains the source of truth for everything that does.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

// MinPasswordLength matches the registration form constraint.
const MinPasswordLength = 6

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Validation failures surfaced inline on forms.
var (
	ErrPasswordTooShort    = fmt.Errorf("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	ErrPasswordMismatch    = errors.New("las contraseñas no coinciden")
	ErrInvalidPhone        = errors.New("por favor ingresa un número de teléfono válido")
	ErrInvalidEmail        = errors.New("por favor ingresa un email válido")
	ErrInsufficientBalance = errors.New("no tienes suficiente saldo para esta inversión")
)

// DepositAmount checks the configured deposit band.
func DepositAmount(amount decimal.Decimal) error {
	if amount.LessThan(models.MinDeposit) {
		return fmt.Errorf("el monto mínimo de depósito es $%s COP", models.FormatCOP(models.MinDeposit))
	}
	if amount.GreaterThan(models.MaxDeposit) {
		return fmt.Errorf("el monto máximo de depósito es $%s COP", models.FormatCOP(models.MaxDeposit))
	}
	return nil
}

// SubscriptionAmount checks the fund minimum and the user's available balance.
func SubscriptionAmount(amount, minimum, balance decimal.Decimal) error {
	if amount.LessThan(minimum) {
		return fmt.Errorf("el monto mínimo para este fondo es $%s COP", models.FormatCOP(minimum))
	}
	if amount.GreaterThan(balance) {
		return ErrInsufficientBalance
	}
	return nil
}

// Password checks length and confirmation match.
func Password(password, confirmation string) error {
	if password != confirmation {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Phone checks an E.164-shaped number, ignoring embedded spaces.
func Phone(phone string) error {
	compact := strings.ReplaceAll(phone, " ", "")
	if !phonePattern.MatchString(compact) {
		return ErrInvalidPhone
	}
	return nil
}

// Email checks the minimal shape the original form enforced.
func Email(email string) error {
	trimmed := strings.TrimSpace(email)
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 {
		return ErrInvalidEmail
	}
	return nil
}
