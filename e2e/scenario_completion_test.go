package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"chat-relay/conversation"
)

type testCompletionSuite struct {
	BaseProviderSuite
}

func TestCompletionSuite(t *testing.T) {
	suite.Run(t, &testCompletionSuite{})
}

func (s *testCompletionSuite) TestQuestionWithFollowUp() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var first string

	// --- STEP 1: COLD QUESTION ---
	s.Run("Step 1: Question without prior context", func() {
		s.Step("Asking a cold question")
		var err error
		first, err = s.Provider.Complete(ctx, conversation.Exchange{}, "What is 2+2? Reply with the number only.")
		s.Require().NoError(err)
		s.Require().Contains(first, "4")
	})

	// --- STEP 2: FOLLOW-UP THROUGH THE STORED EXCHANGE ---
	// The follow-up only makes sense if the prior exchange actually
	// reached the model, which is the continuity property we care about.
	s.Run("Step 2: Follow-up resolves through prior exchange", func() {
		s.Step("Asking a follow-up that depends on the previous answer")
		prior := conversation.Exchange{
			UserText:  "What is 2+2? Reply with the number only.",
			ModelText: first,
			At:        time.Now(),
		}
		answer, err := s.Provider.Complete(ctx, prior, "Multiply that result by 3. Reply with the number only.")
		s.Require().NoError(err)
		s.Require().Contains(answer, "12")
	})
}

func (s *testCompletionSuite) TestResponseStaysWithinCap() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s.Step("Verifying the configured response cap holds against a live model")
	answer, err := s.Provider.Complete(ctx, conversation.Exchange{}, "Write a short sentence about rivers.")
	s.Require().NoError(err)
	s.Require().NotEmpty(answer)
	// MaxResponseLength is unset in the base config, so nothing should
	// carry the truncation marker.
	s.Require().NotContains(answer, "(response truncated)")
}
