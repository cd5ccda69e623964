package handlers

import (
	"noticias-cms/pkg/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionKeyForm    = "form"
	sessionKeyVisitor = "visitor"
	sessionKeyToken   = "access_token"
	sessionKeyState   = "oauth_state"
)

func toastFlashKey(kind string) string {
	return "_toast_" + kind
}

func loadForm(s sessions.Session) models.FormState {
	raw, _ := s.Get(sessionKeyForm).(string)
	return models.DecodeFormState(raw)
}

func storeForm(s sessions.Session, st models.FormState) {
	s.Set(sessionKeyForm, st.Encode())
}

// visitorID returns the per-visitor key, minting one on first use.
func visitorID(s sessions.Session) string {
	if id, ok := s.Get(sessionKeyVisitor).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.Set(sessionKeyVisitor, id)
	return id
}

func addToast(s sessions.Session, kind, message string) {
	s.AddFlash(message, toastFlashKey(kind))
}

// popToasts drains the pending notifications.
func popToasts(s sessions.Session) []models.Toast {
	var toasts []models.Toast
	for _, kind := range []string{models.ToastSuccess, models.ToastError} {
		for _, f := range s.Flashes(toastFlashKey(kind)) {
			if msg, ok := f.(string); ok {
				toasts = append(toasts, models.Toast{Kind: kind, Message: msg})
			}
		}
	}
	return toasts
}

func (h *Handler) save(c *gin.Context, s sessions.Session) {
	if err := s.Save(); err != nil {
		h.logger.Error("saving session", zap.Error(err), zap.String("request_id", requestID(c)))
	}
}
