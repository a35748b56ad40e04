package conversation

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
)

// Verbosity selects how much product detail a routine request carries.
type Verbosity string

const (
	// VerbosityDetailed lists name, brand, category and description per product.
	VerbosityDetailed Verbosity = "detailed"
	// VerbosityBrief lists product names only.
	VerbosityBrief Verbosity = "brief"
)

// DefaultSystemPrompt is the advisor persona used when none is configured.
const DefaultSystemPrompt = `You are Scott, a warm, friendly, and enthusiastic L'Oréal beauty advisor chatbot. When someone tells you their name, greet them warmly using their name and introduce yourself as Scott. Remember their name throughout the conversation and use it occasionally to personalize responses. Your ONLY role is to help customers with L'Oréal products, skincare routines, makeup tips, and haircare recommendations. If someone asks about ANY topic unrelated to L'Oréal or beauty, politely refuse by saying: 'I'm here to help with L'Oréal products and beauty advice. How can I assist you with your beauty needs today?' Keep all responses helpful, friendly, and under 100 words. When providing lists or recommendations, use clear formatting with bullet points. Use emojis to make responses engaging.`

// routineGuide is appended to detailed routine requests so the reply
// follows the structure the response formatter understands.
const routineGuide = `Build a step-by-step daily routine using ONLY these products. Use this structure:

## 🧼 Step 1: Cleanse
## 💧 Step 2: Tone (Optional)
## 🧴 Step 3: Treat
## 🧽 Step 4: Moisturize
## 🔆 Step 5: SPF (AM only)

Under each step use short bullet points with the product name and brand. Skip steps no selected product covers. Keep language at an 8th-grade reading level. End with a "Quick Highlights" summary and a follow-up question related to the products selected.`

// RoutinePrompt builds the user turn text for a routine request.
func RoutinePrompt(items []catalog.Item, verbosity Verbosity) string {
	if verbosity == VerbosityBrief {
		names := make([]string, len(items))
		for i, it := range items {
			names[i] = it.Name
		}
		return "Create a beauty routine with these products: " + strings.Join(names, ", ")
	}

	entries := make([]string, len(items))
	for i, it := range items {
		entries[i] = fmt.Sprintf("%d. **%s** by %s\n   - Category: %s\n   - Description: %s",
			i+1, it.Name, it.Brand, it.Category, it.Description)
	}

	var b strings.Builder
	b.WriteString("Create a daily beauty routine using these products:\n\n")
	b.WriteString(strings.Join(entries, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(routineGuide)
	return b.String()
}
