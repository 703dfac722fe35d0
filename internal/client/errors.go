package client

import (
	"errors"

	"github.com/YabaiTech/YAPM/internal/adapter"
	"github.com/YabaiTech/YAPM/internal/app"
	"github.com/YabaiTech/YAPM/internal/service"
	"github.com/YabaiTech/YAPM/internal/validators"
	"github.com/YabaiTech/YAPM/internal/vault"
)

var (
	errUsage                = errors.New("usage error")
	errCanceled             = errors.New("canceled by the user")
	errPasswordsDoNotMatch  = errors.New("passwords do not match")
	errUnknownEntry         = errors.New("no entry matches the id")
	errAmbiguousEntry       = errors.New("more than one entry matches the id")
	errEntryExists          = errors.New("entry already exists")
	errClipboardUnsupported = errors.New("clipboard is not supported on this system")
)

type errorMessage struct {
	target  error
	message string
}

// errorMessages is ordered, the first match wins.
var errorMessages = []errorMessage{
	{errCanceled, app.MsgCanceled},
	{errPasswordsDoNotMatch, app.MsgPasswordsDoNotMatch},
	{errUnknownEntry, app.MsgUnknownEntry},
	{errAmbiguousEntry, app.MsgAmbiguousEntry},
	{errEntryExists, app.MsgEntryExists},

	{service.ErrNoSuchAccount, app.MsgNoSuchAccount},
	{service.ErrInvalidCredentials, app.MsgInvalidCredentials},
	{vault.ErrWrongMasterPassword, app.MsgInvalidCredentials},
	{service.ErrUserDoesNotExist, app.MsgVaultMissing},
	{vault.ErrVaultLocked, app.MsgVaultLocked},
	{service.ErrUsernameAlreadyExists, app.MsgUsernameTaken},
	{service.ErrEmailAlreadyExists, app.MsgEmailTaken},
	{service.ErrFailedToMergeFiles, app.MsgMergeFailed},
	{service.ErrFailedToDownload, app.MsgCloudUnavailable},
	{service.ErrFailedToUpload, app.MsgCloudUnavailable},
	{adapter.ErrTransport, app.MsgCloudUnavailable},
	{service.ErrFailedToSyncWithCloud, app.MsgDirectoryUnavailable},
	{service.ErrFailedToRemoveConflict, app.MsgLocalDirectoryFailure},
	{service.ErrFailedToSyncWithLocal, app.MsgLocalDirectoryFailure},
	{service.ErrFailedToOpenVault, app.MsgVaultUnreadable},
	{vault.ErrEmptyField, app.MsgEmptyField},
	{vault.ErrDuplicateID, app.MsgDuplicateEntry},
	{vault.ErrInvalidID, app.MsgUnknownEntry},
}

// validationErrors are already phrased for the user.
var validationErrors = []error{
	validators.ErrInvalidUsername,
	validators.ErrInvalidEmail,
	validators.ErrPasswordTooShort,
	validators.ErrPasswordUnallowedChars,
	validators.ErrPasswordNeedsLowercase,
	validators.ErrPasswordNeedsUppercase,
	validators.ErrPasswordNeedsDigit,
	validators.ErrPasswordNeedsSpecial,
}

// userMessage turns err into the sentence printed on the terminal.
func userMessage(err error) string {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return capitalize(target.Error()) + "."
		}
	}
	for _, m := range errorMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}
	return app.MsgInternalError
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
