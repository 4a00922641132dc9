package studio

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Rana718/ddlview/internal/studio/common"
)

type Server struct {
	app     *fiber.App
	service *Service
	port    int
}

type Options struct {
	Port       int
	SchemaPath string
	Store      ParseStore
	AccessLog  io.Writer // nil disables the access log
}

func NewServer(opts Options) *Server {
	store := opts.Store
	if store == nil {
		store = NewMemoryStore(0)
	}

	server := &Server{
		app:     common.NewApp("ddlview studio", opts.AccessLog),
		service: NewService(store, opts.SchemaPath),
		port:    opts.Port,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/api/schema")
	})

	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/parse", s.handleParse)
	api.Get("/schema", s.handleGetSchema)
	api.Get("/schema.sql", s.handleGetSchemaSQL)
	api.Get("/tables", s.handleGetTables)
	api.Get("/tables/:name", s.handleGetTable)
}

// App exposes the underlying Fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Port() int {
	return s.port
}

func (s *Server) Start(openBrowser bool) error {
	return common.StartServer(s.app, &s.port, "Studio", openBrowser)
}

// Shutdown stops the app and releases the parse store if it holds a connection.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	if closer, ok := s.service.store.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
