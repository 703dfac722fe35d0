// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing copy of the YAPM command line client.
//
// All Msg* constants are complete sentences printed to the terminal. Errors
// themselves go to the log file; the CLI maps them to one of these messages
// so that wording stays consistent between commands.
package app

const (
	// MsgNoSuchAccount is shown when neither directory knows the username
	// or email the user typed.
	MsgNoSuchAccount = "No account with that username or email. Run `yapm register` first."

	// MsgInvalidCredentials is shown when the master password (or the email
	// belonging to the username) does not match.
	MsgInvalidCredentials = "Username/email or master password is incorrect."

	// MsgVaultMissing is shown when this device knows the account but its
	// vault file is gone and there is no remote copy to restore it from.
	MsgVaultMissing = "The vault file of this account is missing on this device."

	MsgVaultLocked = "The vault is open in another YAPM process. Log out there first."

	// MsgCloudUnavailable is shown when a vault upload or download fails.
	MsgCloudUnavailable = "Could not reach the cloud storage. Check your connection and blob settings."

	// MsgDirectoryUnavailable is shown when the remote account directory
	// cannot be read or written.
	MsgDirectoryUnavailable = "Could not reach the account directory. Check DIRECTORY_DATABASE_URI."

	MsgLocalDirectoryFailure = "Could not update the local account directory."
	MsgMergeFailed           = "Could not merge the cloud copy into your vault. Your local vault is unchanged."
	MsgVaultUnreadable       = "The vault could not be opened. It may be damaged."

	// MsgUsernameTaken and MsgEmailTaken are shown by register.
	MsgUsernameTaken = "This username is already taken."
	MsgEmailTaken    = "An account with this email already exists."

	MsgRegistered            = "Account %q registered. Vault: %s"
	MsgRegisteredNotUploaded = "Account %q registered, but the vault could not be uploaded yet. It will be uploaded on your next login."
	MsgPasswordsDoNotMatch   = "Passwords do not match."

	MsgLoggedIn  = "Logged in as %s."
	MsgLoggedOut = "Logged out."
	MsgSynced    = "Vault synced."

	MsgEntryAdded   = "Entry added: %s"
	MsgEntryUpdated = "Entry updated: %s"
	MsgEntryDeleted = "Entry deleted."
	MsgCopied       = "Password copied to clipboard."
	MsgNoEntries    = "The vault is empty. Press a or run `yapm add` to store a password."
	MsgLoading      = "Loading..."
	MsgLoggingIn    = "Logging in..."
	MsgCanceled     = "Canceled."

	// MsgConfirmDelete takes the URL and username of the entry.
	MsgConfirmDelete = "Delete %s (%s)?"

	// MsgEmptyField is shown by add and edit when a field is left empty.
	MsgEmptyField = "URL, username and password must not be empty."

	MsgUnknownEntry   = "No entry matches that id."
	MsgAmbiguousEntry = "More than one entry matches that id. Type more characters."
	MsgEntryExists    = "An entry for this URL and username already exists. Log in and press e to edit it."

	// MsgDuplicateEntry is shown when an edit would give an entry the URL
	// and username of another one.
	MsgDuplicateEntry = "Another entry already uses this URL and username."

	MsgUnknownCommand = "Unknown command %q. Type `help` for the list of commands."
	MsgUsage          = "Usage: %s"

	// MsgInternalError is the fallback for anything unexpected.
	MsgInternalError = "Something went wrong. Details are in the log file."
)
