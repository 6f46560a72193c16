package app

import (
	"context"
	"strings"

	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
	"gitlab.com/yelinaung/invierte-cli/internal/validate"
)

func (a *App) profileScreen(ctx context.Context) screen {
	if err := a.sessions.RefreshProfile(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Profile refresh failed")
		a.printf("\n⚠️  Error al cargar el perfil\n")
		if a.confirm("¿Reintentar?") {
			return screenProfile
		}
		return a.navPrompt(screenProfile)
	}

	user, _ := a.sessions.CurrentUser()

	a.printf("\n⚙️  Mi Perfil\n")
	a.printf("  📧 Email:          %s\n", user.Email)
	a.printf("  📱 Teléfono:       %s\n", user.Phone)
	a.printf("  🔔 Notificaciones: %s\n", notificationLabel(user.NotificationPreference))
	a.printf("  💰 Saldo:          $%s COP\n", models.FormatCOP(user.Balance))
	a.printf("  📅 Miembro desde:  %s\n", formatDate(user.CreatedAt))

	answer, ok := a.prompt("\n[e]ditar [v]olver > ")
	if !ok {
		return screenQuit
	}
	if strings.ToLower(answer) != "e" {
		return a.navPrompt(screenProfile)
	}

	return a.editProfile(ctx, user)
}

// editProfile validates the form locally and refreshes the profile. The
// service does not expose a profile-update endpoint yet, so like the original
// client this is validation plus a re-fetch, not a mutation.
func (a *App) editProfile(ctx context.Context, user models.User) screen {
	email, ok := a.prompt("📧 Email [" + user.Email + "]: ")
	if !ok {
		return screenQuit
	}
	phone, ok := a.prompt("📱 Teléfono [" + user.Phone + "]: ")
	if !ok {
		return screenQuit
	}

	if email != "" {
		if err := validate.Email(email); err != nil {
			a.printf("⚠️  %s\n", err)
			return screenProfile
		}
	}
	if phone != "" {
		if err := validate.Phone(phone); err != nil {
			a.printf("⚠️  %s\n", err)
			return screenProfile
		}
	}

	if err := a.sessions.RefreshProfile(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Profile refresh failed after edit")
	}
	a.printf("✅ Perfil actualizado exitosamente\n")
	return screenProfile
}

func notificationLabel(pref models.NotificationPreference) string {
	switch pref {
	case models.NotifySMS:
		return "📱 SMS"
	case models.NotifyEmail:
		return "📧 Email"
	default:
		return string(pref)
	}
}
