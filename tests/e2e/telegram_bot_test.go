// +build e2e

package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TelegramBotE2ETestSuite contains end-to-end tests for the Telegram bot
type TelegramBotE2ETestSuite struct {
	suite.Suite
	ctx       context.Context
	botToken  string
	testChatID int64
}

// SetupSuite runs before all tests in the suite
func (suite *TelegramBotE2ETestSuite) SetupSuite() {
	// Skip if not running E2E tests
	if testing.Short() {
		suite.T().Skip("Skipping E2E tests")
	}

	suite.ctx = context.Background()
	
	// Get bot token from environment
	suite.botToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if suite.botToken == "" {
		suite.T().Skip("TELEGRAM_BOT_TOKEN not set, skipping E2E tests")
	}

	// For now, we'll skip actual bot testing since it requires a real bot
	// In a real scenario, you'd set up a test bot and test chat
	suite.T().Skip("E2E bot testing requires real Telegram bot setup")
}

// TearDownSuite runs after all tests in the suite
func (suite *TelegramBotE2ETestSuite) TearDownSuite() {
	// Cleanup if needed
}

// TestBotStartup tests that the bot can start up successfully
func (suite *TelegramBotE2ETestSuite) TestBotStartup() {
	// This would test actual bot startup
	// For now, just verify environment is set up
	assert.NotEmpty(suite.T(), suite.botToken, "Bot token should be available")
}

// TestBotCommands tests basic bot commands
func (suite *TelegramBotE2ETestSuite) TestBotCommands() {
	// This would test sending commands to the bot
	// and verifying responses
	suite.T().Skip("Bot command testing requires real bot interaction")
}

// TestWalletIntegration tests wallet-related bot functionality
func (suite *TelegramBotE2ETestSuite) TestWalletIntegration() {
	// This would test wallet creation and management through the bot
	suite.T().Skip("Wallet integration testing requires real bot interaction")
}

// TestCoffeeOrdering tests coffee ordering through the bot
func (suite *TelegramBotE2ETestSuite) TestCoffeeOrdering() {
	// This would test the coffee ordering flow
	suite.T().Skip("Coffee ordering testing requires real bot interaction")
}

// TestPaymentFlow tests payment processing through the bot
func (suite *TelegramBotE2ETestSuite) TestPaymentFlow() {
	// This would test crypto payment processing
	suite.T().Skip("Payment flow testing requires real bot interaction")
}

// TestAIIntegration tests AI assistant functionality
func (suite *TelegramBotE2ETestSuite) TestAIIntegration() {
	// This would test AI responses and interactions
	suite.T().Skip("AI integration testing requires real bot interaction")
}

// Helper functions for E2E testing

func (suite *TelegramBotE2ETestSuite) waitForBotResponse(timeout time.Duration) {
	// Wait for bot to respond to a message
	time.Sleep(timeout)
}

func (suite *TelegramBotE2ETestSuite) sendTestMessage(message string) error {
	// Send a test message to the bot
	// This would use the Telegram Bot API
	return nil
}

func (suite *TelegramBotE2ETestSuite) verifyBotResponse(expectedResponse string) bool {
	// Verify the bot responded with expected message
	return true
}

// TestTelegramBotE2E runs the E2E test suite
func TestTelegramBotE2E(t *testing.T) {
	suite.Run(t, new(TelegramBotE2ETestSuite))
}
