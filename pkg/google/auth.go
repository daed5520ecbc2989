package google

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hireflow/hireflow/internal/config"
	"github.com/hireflow/hireflow/internal/rest"
	"github.com/hireflow/hireflow/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

var ErrUnauthenticated = errors.New("user is unauthenticated, authentication is required")

type authRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// Auth handles the OAuth flow and stores the per-user token.
type Auth struct {
	db          *sql.DB
	oauthConfig *oauth2.Config
}

func NewAuth(db *sql.DB, cfg config.Application) *Auth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/integrations/google/auth/callback",
		Scopes:       []string{gcal.CalendarReadonlyScope},
	}
	return &Auth{db: db, oauthConfig: oauthConfig}
}

func (a *Auth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentID(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		http.Error(w, "unable to retrieve current user", http.StatusInternalServerError)
		return
	}

	if _, err := a.db.Exec("DELETE FROM google_calendar_auth WHERE user_id = ?", userId); err != nil {
		log.Errorf("failed to delete old Google auth row for user %s: %v", userId, err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication", "")
		return
	}

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	// store nonce for later use in the callback
	if _, err := a.db.Exec("INSERT INTO google_calendar_auth (user_id, nonce) VALUES (?, ?)", userId, stateNonce); err != nil {
		log.Errorf("failed to store Google auth nonce for user %s: %v", userId, err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication", "")
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := a.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	rest.WriteJSON(w, http.StatusOK, authRedirect{RedirectUrl: u})
}

func (a *Auth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	token, err := a.oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	_, err = a.db.Exec("UPDATE google_calendar_auth SET access_token = ?, refresh_token = ?, expiry = ? WHERE nonce = ?",
		token.AccessToken, token.RefreshToken, token.Expiry.Unix(), nonce)
	if err != nil {
		log.Errorf("unable to store Google auth token for nonce: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	log.Debug("Successfully stored Google auth token for nonce: ", nonce)
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

func (a *Auth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentID(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		http.Error(w, "unable to retrieve current user", http.StatusInternalServerError)
		return
	}
	if _, err := a.db.Exec("DELETE FROM google_calendar_auth WHERE user_id = ?", userId); err != nil {
		log.Errorf("failed to delete Google auth row for user %s: %v", userId, err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Auth) getToken(ctx context.Context, userId string) (*oauth2.Token, error) {
	var token oauth2.Token
	var expiryTimestamp sql.NullInt64
	err := a.db.QueryRowContext(ctx, "SELECT access_token, refresh_token, expiry FROM google_calendar_auth WHERE user_id = ?", userId).
		Scan(&token.AccessToken, &token.RefreshToken, &expiryTimestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth token: %v", err)
	}

	if expiryTimestamp.Valid {
		token.Expiry = time.Unix(expiryTimestamp.Int64, 0)
	}
	return &token, nil
}

func (a *Auth) getClient(ctx context.Context, userId string) (*http.Client, error) {
	token, err := a.getToken(ctx, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	return a.oauthConfig.Client(context.Background(), token), nil
}
