package xmpp

import (
	"crypto/tls"
	"errors"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

var ErrMissingConfig = errors.New("missing xmpp config")

type (
	// Config of the account the walks are reported from.
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

func serverName(jid string) string {
	i := strings.LastIndex(jid, "@")
	if i < 0 {
		return jid
	}
	host := jid[i+1:]
	if j := strings.Index(host, "/"); j >= 0 {
		host = host[:j]
	}
	return host
}

func (x Xmpp) Enabled() bool {
	return len(x.Config.Jid) > 0 && len(x.Config.Password) > 0 && len(x.Config.To) > 0
}

func (x Xmpp) options() xmpp.Options {
	host := x.Config.Host
	if len(host) == 0 {
		host = serverName(x.Config.Jid)
	}
	if !strings.Contains(host, ":") {
		host += ":5222"
	}

	return xmpp.Options{
		Host:          host,
		User:          x.Config.Jid,
		Password:      x.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		TLSConfig:     &tls.Config{ServerName: serverName(x.Config.Jid)},
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "Walking around the globe",
	}
}

// Send delivers message as a chat to the configured recipient.
func (x Xmpp) Send(message string) error {
	if !x.Enabled() {
		return ErrMissingConfig
	}

	options := x.options()
	logger := log.WithFields(log.Fields{"host": options.Host, "to": x.Config.To})

	logger.Debug("Create xmpp client")
	talk, err := options.NewClient()
	if err != nil {
		logger.WithError(err).Error("Unable to connect")
		return err
	}
	defer talk.Close()

	logger.Debug("Send message")
	if _, err := talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message}); err != nil {
		logger.WithError(err).Error("Unable to send message")
		return err
	}

	return nil
}
