package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const AccountIDHeader = "X-Account-ID"

// AccountIDKey is the fiber locals key carrying the authenticated account id.
const AccountIDKey = "accountID"

// RequireAccount trusts the upstream auth layer to have resolved the caller
// into an account id header. Token verification happens before traffic
// reaches this service.
func RequireAccount(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(AccountIDHeader)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "missing account identity",
			})
		}

		accountID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || accountID <= 0 {
			logger.Warn("Rejected request with malformed account id", zap.String("header", raw))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid account identity",
			})
		}

		c.Locals(AccountIDKey, accountID)
		return c.Next()
	}
}

// AccountID reads the authenticated account id set by RequireAccount.
func AccountID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(AccountIDKey).(int64)
	return id
}
