package zalukaj

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/log"
)

const (
	loginSuccessMarker = "Zalogowano!"
	userDataPath       = "/libs/ajax/login.php?login=1&x=2043"
)

// User is the account the session belongs to. The zero value is an anonymous visitor.
type User struct {
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
}

func (u *User) IsLogged() bool {
	return u != nil && u.Name != ""
}

// IsPremium reports whether the account is a paid (VIP) one.
func (u *User) IsPremium() bool {
	return u.IsLogged() && strings.Contains(strings.ToLower(u.AccountType), "vip")
}

func (u *User) String() string {
	return fmt.Sprintf("User<%s, %s>", u.Name, u.AccountType)
}

// Login signs in with the given credentials.
//
// When the site accepts the credentials but does not start a session the
// returned user is anonymous. Cookies are saved only when a session starts.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	resp, err := c.direct.R().SetContext(ctx).Get(c.base)
	if err != nil {
		return nil, newError("request failed", err)
	}

	// the hash is absent when the session is already signed in
	doc, err := parse(resp)
	if err != nil {
		return nil, err
	}
	hash := doc.Find("input[name=hash]").First().AttrOr("value", "")

	form := url.Values{
		"username": {username},
		"password": {password},
		"hash":     {hash},
	}

	resp, err = c.direct.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetBody(form.Encode()).
		Post(c.absolute("/ajax/login"))
	if err != nil {
		return nil, newError("request failed", err)
	}

	if !strings.Contains(resp.String(), loginSuccessMarker) {
		return nil, newLoginError("Wystąpił problem z logowaniem.")
	}

	started := lo.ContainsBy(resp.Cookies(), func(cookie *http.Cookie) bool {
		return cookie.Name == SessionCookieName
	})

	if !started {
		log.Warn("login accepted without a session cookie")
		return &User{}, nil
	}

	if err := c.jar.Save(); err != nil {
		return nil, newError("could not save cookies", err)
	}

	return c.FetchUserData(ctx)
}

// Logout forgets the session by dropping every cookie, on disk too.
func (c *Client) Logout() error {
	c.jar.Clear()
	if err := c.jar.Save(); err != nil {
		return newError("could not save cookies", err)
	}
	return nil
}

// FetchUserData reads the account summary of the current session.
func (c *Client) FetchUserData(ctx context.Context) (*User, error) {
	doc, err := c.get(ctx, userDataPath)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(doc.Find(`a[href="#"][style="text-decoration:underline;"]`).First().Text())
	if name == "" {
		return &User{}, nil
	}

	return &User{
		Name:        name,
		AccountType: accountType(strings.TrimSpace(doc.Find("div:nth-of-type(3) > p:nth-of-type(1) a").First().Text())),
	}, nil
}

// accountType shortens the free-account label, which carries a registration pitch.
func accountType(text string) string {
	if strings.Contains(text, "Darmowe") {
		return "konto darmowe"
	}
	return strings.ToLower(text)
}
