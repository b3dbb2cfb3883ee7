// Package auth resolves an app-data request to a Telegram user id. The
// signed-payload and debug strategies live behind one interface; the debug
// strategy is only constructed when deployment configuration allows it.
package auth

import (
	"errors"
	"strconv"

	"github.com/avigeya/projectboard/internal/dto"
	"github.com/avigeya/projectboard/internal/telegram"
)

var (
	// ErrInvalidSignature means the payload failed the platform signature check.
	ErrInvalidSignature = errors.New("init data failed signature verification")
	// ErrNoIdentity means the request carried nothing the authenticator can use.
	ErrNoIdentity = errors.New("no usable identity in request")
)

// Authenticator resolves a request body to the Telegram user id it proves.
type Authenticator interface {
	Authenticate(req dto.AppDataRequest) (int64, error)
}

// TelegramAuthenticator accepts requests carrying initData with a valid
// platform signature.
type TelegramAuthenticator struct {
	botToken string
}

// NewTelegramAuthenticator creates an authenticator bound to the bot token
// the signatures are derived from.
func NewTelegramAuthenticator(botToken string) *TelegramAuthenticator {
	return &TelegramAuthenticator{botToken: botToken}
}

// Authenticate verifies the initData signature and extracts the user id from
// the signed fields.
func (a *TelegramAuthenticator) Authenticate(req dto.AppDataRequest) (int64, error) {
	if req.InitData == "" {
		return 0, ErrNoIdentity
	}
	if !telegram.VerifyInitData(req.InitData, a.botToken) {
		return 0, ErrInvalidSignature
	}

	params := telegram.ParseInitData(req.InitData)
	idStr, ok := params["id"]
	if !ok {
		return 0, ErrNoIdentity
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, ErrNoIdentity
	}
	return id, nil
}

// DebugAuthenticator trusts a caller-supplied user id without any signature
// check. It must never be wired into a production-configured build.
type DebugAuthenticator struct{}

// Authenticate returns the debug user id verbatim.
func (DebugAuthenticator) Authenticate(req dto.AppDataRequest) (int64, error) {
	if req.DebugUserID == nil {
		return 0, ErrNoIdentity
	}
	return *req.DebugUserID, nil
}

// Chain tries each authenticator in order; the first that finds a usable
// identity decides the outcome. Errors other than ErrNoIdentity stop the
// chain so a bad signature is never papered over.
type Chain []Authenticator

// Authenticate implements Authenticator.
func (c Chain) Authenticate(req dto.AppDataRequest) (int64, error) {
	for _, a := range c {
		id, err := a.Authenticate(req)
		if errors.Is(err, ErrNoIdentity) {
			continue
		}
		return id, err
	}
	return 0, ErrNoIdentity
}

// New assembles the authenticator chain for the given deployment settings.
// The debug path sits in front so an explicit debugUserId bypasses the
// signature check, matching the mini-app client's development mode.
func New(botToken string, debugEnabled bool) Authenticator {
	chain := Chain{}
	if debugEnabled {
		chain = append(chain, DebugAuthenticator{})
	}
	return append(chain, NewTelegramAuthenticator(botToken))
}
