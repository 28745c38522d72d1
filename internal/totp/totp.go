// Package totp keeps a list of authenticator accounts loaded from otpauth:// URIs and produces
// their current codes.
package totp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// DefaultIcon is shown for every account.
const DefaultIcon = "/icons/default.svg"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidURI      = errors.New("invalid otpauth uri")
	ErrMissingSecret   = errors.New("missing secret")
	ErrInvalidSecret   = errors.New("invalid base32 secret")
	ErrIssuerMismatch  = errors.New("issuer mismatch between label and parameter")
)

// Entry is one account with its code at the time it was produced.
type Entry struct {
	ID       uint32 `json:"id"`
	Icon     string `json:"icon"`
	Account  string `json:"account"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

type account struct {
	id       uint32
	icon     string
	issuer   string
	username string
	secret   string
	opts     totp.ValidateOpts
}

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	nextID   uint32
	accounts []account
}

// NewRegistry returns an empty registry. Ids start at 0.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add parses an otpauth://totp URI and stores the account. The returned entry has no code.
func (r *Registry) Add(uri string) (Entry, error) {
	acc, err := parse(uri)
	if err != nil {
		return Entry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc.id = r.nextID
	r.nextID++
	r.accounts = append(r.accounts, acc)
	return acc.entry(""), nil
}

// Remove drops the account with the given id.
func (r *Registry) Remove(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, acc := range r.accounts {
		if acc.id == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrAccountNotFound, id)
}

// Len returns the number of accounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// Codes returns every account, in insertion order, with its code at the given time. A code that
// cannot be generated is left empty.
func (r *Registry) Codes(at time.Time) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, 0, len(r.accounts))
	for _, acc := range r.accounts {
		code, err := totp.GenerateCodeCustom(acc.secret, at, acc.opts)
		if err != nil {
			code = ""
		}
		entries = append(entries, acc.entry(code))
	}
	return entries
}

func (a account) entry(code string) Entry {
	return Entry{ID: a.id, Icon: a.icon, Account: a.issuer, Username: a.username, Code: code}
}

func parse(uri string) (account, error) {
	u, err := url.Parse(uri)
	if err != nil {
		// url.Error quotes the whole URI, secret included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return account{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme != "otpauth" || u.Host != "totp" {
		return account{}, fmt.Errorf("%w: want otpauth://totp/, got %s://%s/", ErrInvalidURI, u.Scheme, u.Host)
	}

	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return account{}, ErrInvalidURI
	}

	secret := key.Secret()
	if secret == "" {
		return account{}, ErrMissingSecret
	}

	opts := totp.ValidateOpts{
		Period:    uint(key.Period()),
		Digits:    key.Digits(),
		Algorithm: key.Algorithm(),
	}
	if _, err := totp.GenerateCodeCustom(secret, time.Now(), opts); err != nil {
		return account{}, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}

	issuer := u.Query().Get("issuer")
	label := strings.TrimPrefix(u.Path, "/")

	var acc account
	if name, user, ok := strings.Cut(label, ":"); ok {
		acc.issuer, acc.username = name, user
	} else {
		acc.issuer, acc.username = issuer, label
	}
	if issuer != "" && acc.issuer != issuer {
		return account{}, fmt.Errorf("%w: label %q, parameter %q", ErrIssuerMismatch, acc.issuer, issuer)
	}

	acc.icon = DefaultIcon
	acc.secret = secret
	acc.opts = opts
	return acc, nil
}
