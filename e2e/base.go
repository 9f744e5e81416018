package e2e

import (
	"fmt"
	"log/slog"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"chat-relay/ai"
)

type BaseProviderSuite struct {
	suite.Suite
	Config   Config
	Provider *ai.Provider
}

// SetupSuite loads the environment configuration and skips the whole
// suite when no live API key is configured.
func (s *BaseProviderSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.APIKey == "" {
		s.T().Skip("E2E_API_KEY not set, skipping live provider tests")
	}

	client := ai.NewAnthropicClient(s.Config.APIURL, s.Config.APIKey, s.Config.APIVersion)
	s.Provider = ai.NewProvider(client, ai.Config{
		Model:        s.Config.Model,
		SystemPrompt: "You are a terse assistant. Answer with the bare result only.",
		MaxTokens:    256,
	}, slog.Default())
}

// Step prints a colorized header so live runs read as a scenario log.
func (s *BaseProviderSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}
