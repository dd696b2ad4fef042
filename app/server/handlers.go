package server

import (
	"errors"
	"strings"
	"time"

	"brandichat/app/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type chatMessageRequest struct {
	Message        string      `json:"message"`
	ConversationID string      `json:"conversationId"`
	Context        chatContext `json:"context"`
}

type chatContext struct {
	UserAgent string `json:"userAgent"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

type clearRequest struct {
	ConversationID string `json:"conversationId"`
}

func (s *Server) handleChatMessage(c *fiber.Ctx) error {
	var req chatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "Message is required and must be a string")
	}
	if len(req.Message) > 1000 {
		return badRequest(c, "Message too long. Please keep it under 1000 characters.")
	}
	if strings.TrimSpace(req.ConversationID) == "" {
		return badRequest(c, "Conversation ID is required")
	}

	response := s.chatSvc.ProcessMessage(c.Context(), req.Message, req.ConversationID, c.IP())

	return c.JSON(response)
}

func (s *Server) handleChatClear(c *fiber.Ctx) error {
	var req clearRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if strings.TrimSpace(req.ConversationID) == "" {
		return badRequest(c, "Conversation ID is required")
	}

	s.chatSvc.ClearConversation(req.ConversationID)

	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) handleBookingSchedule(c *fiber.Ctx) error {
	var req booking.Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && vErrs[0].Field() == "Email" {
			return badRequest(c, "Valid email address is required")
		}

		return badRequest(c, "Valid name is required (minimum 2 characters)")
	}

	return c.JSON(s.bookingSvc.ScheduleConsultation(req))
}

func (s *Server) handleBookingAvailability(c *fiber.Ctx) error {
	return c.JSON(s.bookingSvc.GetAvailability())
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Seconds(),
		"features": fiber.Map{
			"openaiConfigured": s.chatSvc.UpstreamConfigured(),
		},
		"conversationsActive": s.historySvc.Len(),
		"cacheSize":           s.cacheSvc.Len(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
