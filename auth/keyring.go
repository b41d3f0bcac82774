// Package auth keeps the site password in the system keyring, one entry per username.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/key"
)

const service = constant.Zalukaj + "-cli"

// ErrNoUsername is returned when no account is configured.
var ErrNoUsername = errors.New("no username configured, run the login command first")

// ErrNoPassword is returned when the keyring holds no password for the account.
var ErrNoPassword = errors.New("no password stored for this account")

func account(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrNoUsername
	}
	return username, nil
}

// SetPassword stores the password of username.
func SetPassword(username, password string) error {
	user, err := account(username)
	if err != nil {
		return err
	}
	return keyring.Set(service, user, password)
}

// GetPassword returns the stored password of username.
func GetPassword(username string) (string, error) {
	user, err := account(username)
	if err != nil {
		return "", err
	}

	password, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoPassword
	}
	return password, err
}

// DeletePassword removes the stored password of username. A missing entry is not an error.
func DeletePassword(username string) error {
	user, err := account(username)
	if err != nil {
		return err
	}

	if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// Credentials returns the configured username and its stored password.
func Credentials() (username, password string, err error) {
	username = viper.GetString(key.ZalukajUsername)
	password, err = GetPassword(username)
	if err != nil {
		return "", "", fmt.Errorf("credentials for %q: %w", username, err)
	}
	return username, password, nil
}
