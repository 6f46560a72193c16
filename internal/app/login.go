package app

import (
	"context"
	"strings"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
	"gitlab.com/yelinaung/invierte-cli/internal/validate"
)

func (a *App) loginScreen(ctx context.Context) screen {
	a.printf("\n📈 Invierte Ya\n")
	a.printf("[1] Iniciar sesión  [2] Crear cuenta  [q] Salir\n")

	choice, ok := a.prompt("> ")
	if !ok {
		return screenQuit
	}
	switch strings.ToLower(choice) {
	case "2":
		return screenRegister
	case "q", "quit", "salir":
		return screenQuit
	case "1", "":
		// fall through to the form
	default:
		return screenLogin
	}

	email, ok := a.prompt("📧 Correo electrónico: ")
	if !ok {
		return screenQuit
	}
	password, ok := a.prompt("🔒 Contraseña: ")
	if !ok {
		return screenQuit
	}

	if err := a.sessions.Login(ctx, email, password); err != nil {
		a.printf("⚠️  %s\n", api.ErrorMessage(err, "Error al iniciar sesión. Verifica tus credenciales."))
		return screenLogin
	}
	return screenDashboard
}

func (a *App) registerScreen(ctx context.Context) screen {
	a.printf("\n📈 Invierte Ya — Crear Cuenta\n")

	email, ok := a.prompt("📧 Correo electrónico: ")
	if !ok {
		return screenQuit
	}
	phone, ok := a.prompt("📱 Teléfono (+57...): ")
	if !ok {
		return screenQuit
	}
	password, ok := a.prompt("🔒 Contraseña (mínimo 6 caracteres): ")
	if !ok {
		return screenQuit
	}
	confirmation, ok := a.prompt("🔒 Confirmar contraseña: ")
	if !ok {
		return screenQuit
	}
	preference, ok := a.prompt("🔔 Notificaciones [email/sms]: ")
	if !ok {
		return screenQuit
	}

	req, err := buildRegisterRequest(email, phone, password, confirmation, preference)
	if err != nil {
		a.printf("⚠️  %s\n", err)
		return screenRegister
	}

	if err := a.sessions.Register(ctx, req); err != nil {
		a.printf("⚠️  %s\n", api.ErrorMessage(err, "Error al crear la cuenta. Inténtalo de nuevo."))
		return screenRegister
	}
	return screenDashboard
}

// buildRegisterRequest validates the form locally; nothing reaches the
// network when it fails.
func buildRegisterRequest(email, phone, password, confirmation, preference string) (api.RegisterRequest, error) {
	if err := validate.Email(email); err != nil {
		return api.RegisterRequest{}, err
	}
	if err := validate.Phone(phone); err != nil {
		return api.RegisterRequest{}, err
	}
	if err := validate.Password(password, confirmation); err != nil {
		return api.RegisterRequest{}, err
	}

	return api.RegisterRequest{
		Email:                  strings.TrimSpace(email),
		Password:               password,
		Phone:                  strings.ReplaceAll(phone, " ", ""),
		NotificationPreference: parseNotificationPreference(preference),
	}, nil
}

// parseNotificationPreference defaults to EMAIL, matching the original form.
func parseNotificationPreference(raw string) models.NotificationPreference {
	if strings.EqualFold(strings.TrimSpace(raw), "sms") {
		return models.NotifySMS
	}
	return models.NotifyEmail
}
