package handlers

import (
	"fmt"
	"log"
	"strings"

	"app/config"
	"app/database"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const chatbotInstruction = `You are StockBot, a friendly multilingual assistant for a stock-management application.
Respond in the same language the user writes in. Be warm and conversational.
Only talk about inventory, products or orders when the user clearly asks about them.`

// inventoryKeywords flag a message as inventory-related rather than casual
// conversation.
var inventoryKeywords = []string{
	"order", "buy", "purchase", "stock", "price", "cost",
	"inventory", "product", "available", "demand", "reorder",
}

// minSimilarity is the fuzzy-match cutoff for product name lookups.
const minSimilarity = 60

// HandleChatbotMessage answers a chat message. Inventory questions are
// answered from the catalog via fuzzy product lookup; everything else goes to
// Gemini for a free-form reply.
// POST /api/chatbot/message
func HandleChatbotMessage(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if strings.TrimSpace(body.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Message is required"})
	}

	if isInventoryIntent(body.Message) {
		reply, found, err := answerFromCatalog(c, body.Message)
		if err != nil {
			log.Printf("Error answering from catalog: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to answer message"})
		}
		if found {
			return c.JSON(fiber.Map{"success": true, "reply": reply, "mode": "inventory"})
		}
	}

	reply, err := generateReply(c, body.Message)
	if err != nil {
		log.Printf("Error generating chatbot reply: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate reply"})
	}

	return c.JSON(fiber.Map{"success": true, "reply": reply, "mode": "conversation"})
}

// isInventoryIntent reports whether the message clearly asks about products,
// orders or stock.
func isInventoryIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range inventoryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// answerFromCatalog fuzzy-matches the message words against product names and
// renders a stock/price answer for the best match.
func answerFromCatalog(c *fiber.Ctx, message string) (string, bool, error) {
	rows, err := database.GetDB().Query(c.Context(),
		"SELECT id, name, price, stock FROM products WHERE is_deleted = false")
	if err != nil {
		return "", false, err
	}
	defer rows.Close()

	type candidate struct {
		id    string
		name  string
		price float64
		stock int
	}
	var best candidate
	bestScore := 0

	words := strings.Fields(strings.ToLower(message))
	for rows.Next() {
		var cand candidate
		if err := rows.Scan(&cand.id, &cand.name, &cand.price, &cand.stock); err != nil {
			return "", false, err
		}
		for _, w := range words {
			if score := utils.Similarity(w, cand.name); score > bestScore {
				bestScore = score
				best = cand
			}
		}
	}
	if err := rows.Err(); err != nil {
		return "", false, err
	}

	if bestScore < minSimilarity {
		return "", false, nil
	}

	// Asking the bot about a product is a demand signal too.
	bumpDemand(c.Context(), []string{best.id}, 1)

	if best.stock == 0 {
		return fmt.Sprintf("%s is currently out of stock.", best.name), true, nil
	}
	return fmt.Sprintf("%s is available: %d in stock at %.2f each.", best.name, best.stock, best.price), true, nil
}

// generateReply asks Gemini for a conversational answer.
func generateReply(c *fiber.Ctx, message string) (string, error) {
	ctx := c.Context()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro-latest")
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(chatbotInstruction)}}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	if sb.Len() == 0 {
		return "Sorry, I could not come up with a reply.", nil
	}
	return sb.String(), nil
}
