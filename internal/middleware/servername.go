package middleware

import (
	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"
)

const NameServer = "Server"

type ServerName struct {
	name string
}

func NewServerName(name string) *ServerName {
	return &ServerName{name: name}
}

func (s *ServerName) HandleResponse(resp *message.Response) error {
	resp.Headers.Add(header.NewRaw(NameServer, s.name))
	return nil
}
