package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// GetIPAddress prefers the proxy-forwarded address over the socket peer.
func GetIPAddress(c *fiber.Ctx) *string {
	ip := c.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.Get("X-Real-IP")
	}
	if ip == "" {
		ip = c.IP()
	}
	if ip == "" {
		return nil
	}
	return &ip
}

func GetUserAgent(c *fiber.Ctx) *string {
	ua := c.Get("User-Agent")
	if ua == "" {
		return nil
	}
	return &ua
}
