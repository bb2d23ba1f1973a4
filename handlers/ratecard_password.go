package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
)

const rateCardUnlockCookie = "rate_card_unlocked"

// rateCardSettings returns the singleton settings record, creating it on
// first use.
func rateCardSettings(app *pocketbase.PocketBase) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("rate_card_settings")
	if err != nil {
		return nil, err
	}
	records, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0, map[string]any{})
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records[0], nil
	}
	return core.NewRecord(col), nil
}

// rateCardProtected reports whether a password has been set.
func rateCardProtected(app *pocketbase.PocketBase) bool {
	settings, err := rateCardSettings(app)
	if err != nil {
		log.Printf("rate_card_protected: %v", err)
		return false
	}
	return settings.GetString("password_hash") != ""
}

// rateCardUnlockedCookie reports whether this browser has unlocked editing.
func rateCardUnlockedCookie(r *http.Request) bool {
	c, err := r.Cookie(rateCardUnlockCookie)
	return err == nil && c.Value == "1"
}

// requireRateCardUnlocked guards mutating rate card handlers. It returns a
// non-nil error response when the card is protected and the session has not
// unlocked it.
func requireRateCardUnlocked(app *pocketbase.PocketBase, e *core.RequestEvent) error {
	if rateCardProtected(app) && !rateCardUnlockedCookie(e.Request) {
		return ErrorToast(e, http.StatusForbidden, "Rate card is locked. Unlock it first.")
	}
	return nil
}

// HandleRateCardProtect sets or changes the rate card password. Changing an
// existing password requires the current one.
func HandleRateCardProtect(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		password := e.Request.FormValue("password")
		if strings.TrimSpace(password) == "" {
			return ErrorToast(e, http.StatusBadRequest, "Password cannot be empty")
		}

		settings, err := rateCardSettings(app)
		if err != nil {
			log.Printf("rate_card_protect: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if settings.GetString("password_hash") != "" {
			current := e.Request.FormValue("current_password")
			if !services.VerifyPassword(current, settings.GetString("password_salt"), settings.GetString("password_hash")) {
				return ErrorToast(e, http.StatusForbidden, "Current password is incorrect")
			}
		}

		hash, salt, err := services.HashPassword(password)
		if err != nil {
			log.Printf("rate_card_protect: hash: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		settings.Set("password_hash", hash)
		settings.Set("password_salt", salt)
		if err := app.Save(settings); err != nil {
			log.Printf("rate_card_protect: save: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Setting a password locks everyone out until they unlock, including
		// the browser that set it.
		http.SetCookie(e.Response, &http.Cookie{
			Name:     rateCardUnlockCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, "success", "Rate card password set")
		return redirectTo(e, "/rate-card")
	}
}

// HandleRateCardUnlock verifies the password and marks this browser as
// allowed to edit.
func HandleRateCardUnlock(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		settings, err := rateCardSettings(app)
		if err != nil {
			log.Printf("rate_card_unlock: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		password := e.Request.FormValue("password")
		if !services.VerifyPassword(password, settings.GetString("password_salt"), settings.GetString("password_hash")) {
			return ErrorToast(e, http.StatusForbidden, "Incorrect password")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     rateCardUnlockCookie,
			Value:    "1",
			Path:     "/",
			MaxAge:   60 * 60 * 8,
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, "success", "Rate card unlocked")
		return redirectTo(e, "/rate-card")
	}
}
