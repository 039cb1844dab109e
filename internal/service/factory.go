package service

import (
	"solarbookers.com/relay/common/backoff"
	"solarbookers.com/relay/internal/assistant"
	"solarbookers.com/relay/internal/store"
)

type ServicesConfig struct {
	Stores          *store.Stores
	Assistant       assistant.Client
	DemoBaseURL     string
	CalendarBaseURL string
	ChatPoll        backoff.Policy
}

type Services struct {
	cfg ServicesConfig
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{cfg: cfg}
}

func (s *Services) Directory() DirectoryService {
	return NewDirectoryService(s.cfg.Stores.Companies())
}

func (s *Services) Demo() DemoService {
	return NewDemoService(s.cfg.Assistant, s.Directory(), s.cfg.DemoBaseURL, s.cfg.CalendarBaseURL)
}

func (s *Services) Relay() RelayService {
	return NewRelayService(s.cfg.Assistant, s.Directory(), s.cfg.ChatPoll)
}
