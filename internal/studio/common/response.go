package common

import "github.com/gofiber/fiber/v2"

// JSON sends a success response with data
func JSON(c *fiber.Ctx, data any) error {
	return c.JSON(Response{Success: true, Data: data})
}

// JSONParse sends a parse result with its diagnostics
func JSONParse(c *fiber.Ctx, result ParseResult) error {
	if result.Cached {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	c.Set("ETag", `"`+result.Checksum+`"`)
	return c.JSON(Response{
		Success:     true,
		Data:        result.Document,
		Diagnostics: result.Diagnostics,
	})
}

// JSONError sends an error response
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}
