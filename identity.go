package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

type Identity struct {
	UserId     string
	FirstName  string
	StartParam string
}

type IdentityProvider interface {
	Identify(r *http.Request) (Identity, error)
}

// telegramIdentity trusts signed Telegram Mini App init data sent as "Authorization: tma <data>".
type telegramIdentity struct {
	botToken string
	expIn    time.Duration
}

func NewTelegramIdentity(botToken string, expIn time.Duration) IdentityProvider {
	return telegramIdentity{botToken: botToken, expIn: expIn}
}

func (t telegramIdentity) Identify(r *http.Request) (Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "tma ") {
		return Identity{}, ErrUnauthenticated
	}

	raw := authHeader[4:]
	if err := initdata.Validate(raw, t.botToken, t.expIn); err != nil {
		return Identity{}, errors.Join(ErrUnauthenticated, err)
	}

	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		return Identity{}, errors.Join(ErrUnauthenticated, err)
	}
	data, err := initdata.Parse(unescaped)
	if err != nil {
		return Identity{}, errors.Join(ErrUnauthenticated, err)
	}
	if data.User.ID == 0 {
		return Identity{}, ErrUnauthenticated
	}

	return Identity{
		UserId:     strconv.FormatInt(data.User.ID, 10),
		FirstName:  data.User.FirstName,
		StartParam: data.StartParam,
	}, nil
}
