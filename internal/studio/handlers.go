package studio

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rana718/ddlview/internal/studio/common"
)

// handleParse accepts raw SQL or {"sql": "..."} and returns the parsed document
func (s *Server) handleParse(c *fiber.Ctx) error {
	sql := string(c.Body())
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		var req common.ParseRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
		}
		sql = req.SQL
	}

	if strings.TrimSpace(sql) == "" {
		return common.JSONError(c, fiber.StatusBadRequest, "Request body must contain SQL")
	}

	result, err := s.service.Parse(c.UserContext(), sql)
	if err != nil {
		return common.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return common.JSONParse(c, result)
}

func (s *Server) handleGetSchema(c *fiber.Ctx) error {
	result, err := s.service.Schema(c.UserContext())
	if err != nil {
		return common.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return common.JSONParse(c, result)
}

// handleGetSchemaSQL downloads the schema re-rendered as SQL
func (s *Server) handleGetSchemaSQL(c *fiber.Ctx) error {
	text, err := s.service.SchemaSQL(c.UserContext())
	if err != nil {
		return common.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Attachment("schema.sql")
	c.Set(fiber.HeaderContentType, "application/sql; charset=utf-8")
	return c.SendString(text)
}

func (s *Server) handleGetTables(c *fiber.Ctx) error {
	tables, err := s.service.Tables(c.UserContext())
	if err != nil {
		return common.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return common.JSON(c, tables)
}

func (s *Server) handleGetTable(c *fiber.Ctx) error {
	name := c.Params("name")

	table, ok, err := s.service.Table(c.UserContext(), name)
	if err != nil {
		return common.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return common.JSONError(c, fiber.StatusNotFound, "Table not found: "+name)
	}
	return common.JSON(c, table)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return common.JSON(c, common.Health{Status: "ok", Cache: s.service.StoreName()})
}
