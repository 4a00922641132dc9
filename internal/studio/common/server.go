package common

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp creates a Fiber app with panic recovery, request IDs and, when
// accessLog is non-nil, an access log.
func NewApp(appName string, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return JSONError(c, code, err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	if accessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
			Output: accessLog,
		}))
	}
	return app
}

// StartServer finds an available port, prints the URL, optionally opens a browser, and starts listening
func StartServer(app *fiber.App, port *int, name string, openBrowser bool) error {
	available := FindAvailablePort(*port)
	if available != *port {
		fmt.Printf("Port %d is in use, using port %d instead\n", *port, available)
		*port = available
	}

	url := fmt.Sprintf("http://localhost:%d", *port)
	fmt.Printf("🚀 ddlview %s starting on %s\n", name, url)

	if openBrowser {
		go OpenBrowser(url)
	}

	return app.Listen(fmt.Sprintf(":%d", *port))
}
