package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// maxPromptTransactions caps the transaction lines sent in a prompt.
const maxPromptTransactions = 100

// localeNames maps locale prefixes to the language the answer must be written in.
var localeNames = map[string]string{
	"en": "English",
	"pt": "Brazilian Portuguese",
	"es": "Spanish",
}

func languageFor(locale string) string {
	base, _, _ := strings.Cut(strings.ToLower(locale), "-")
	if name, ok := localeNames[base]; ok {
		return name
	}
	return localeNames["en"]
}

// buildAdvicePrompt renders the advice context into a provider prompt.
func buildAdvicePrompt(adviceCtx *adapter.AdviceContext) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal finance advisor. Review the user's recent transactions, budgets and saving goals
and give practical, specific advice.

RULES:
- Write every title, content and action item in ` + languageFor(adviceCtx.Locale) + `
- Give between 1 and 5 items
- priority is one of "high", "medium", "low"
- confidence is a number between 0.0 and 1.0
- category is a short label such as "spending", "saving", "debt", "budgeting"
- Do not invent transactions that are not listed

`)

	sb.WriteString("BUDGETS:\n")
	if len(adviceCtx.Budgets) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, b := range adviceCtx.Budgets {
		fmt.Fprintf(&sb, "- Category: %s, Limit: %s, Period: %s, Alert at: %d%%\n",
			adviceCtx.Categories.Name(b.CategoryID, "Uncategorized"), b.Amount.StringFixed(2), b.Period, b.AlertThreshold)
	}

	sb.WriteString("\nSAVING GOALS:\n")
	if len(adviceCtx.Goals) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, g := range adviceCtx.Goals {
		fmt.Fprintf(&sb, "- Name: %s, Target: %s, Saved: %s, Completion: %.1f%%\n",
			g.Name, g.TargetAmount.StringFixed(2), g.CurrentAmount.StringFixed(2), g.CompletionPercent())
	}

	sb.WriteString("\nRECENT TRANSACTIONS:\n")
	txs := adviceCtx.RecentTransactions
	if len(txs) > maxPromptTransactions {
		txs = txs[len(txs)-maxPromptTransactions:]
	}
	if len(txs) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, tx := range txs {
		fmt.Fprintf(&sb, "- Date: %s, Type: %s, Amount: %s, Category: %s, Description: %q\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2),
			adviceCtx.Categories.Name(tx.CategoryID, "Uncategorized"), tx.Description)
	}

	sb.WriteString(`
Respond with a JSON object of the form:
{
  "advice": [
    {
      "title": "short headline",
      "content": "one or two sentences",
      "category": "spending",
      "priority": "high",
      "confidence": 0.8,
      "action_items": ["concrete step"],
      "tags": ["keyword"]
    }
  ]
}

RESPONSE FORMAT: Return only the JSON object, without additional text.
`)

	return sb.String()
}

// adviceAnswer is the raw JSON answer of a provider.
type adviceAnswer struct {
	Advice []adviceAnswerItem `json:"advice"`
}

type adviceAnswerItem struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Confidence  float64  `json:"confidence"`
	ActionItems []string `json:"action_items"`
	Tags        []string `json:"tags"`
}

// parseAdviceAnswer decodes a provider answer. Both the wrapped object and a bare array are accepted.
// Normalization of the items is left to the aggregator.
func parseAdviceAnswer(text string) ([]*entity.AdviceItem, error) {
	text = cleanJSON(text)
	if text == "" {
		return nil, errors.New("malformed answer: empty response")
	}

	var raw []adviceAnswerItem
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
	} else {
		var answer adviceAnswer
		if err := json.Unmarshal([]byte(text), &answer); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		if answer.Advice == nil {
			return nil, errors.New("malformed answer: missing advice list")
		}
		raw = answer.Advice
	}

	items := make([]*entity.AdviceItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, &entity.AdviceItem{
			Title:       r.Title,
			Content:     r.Content,
			Category:    r.Category,
			Priority:    entity.AdvicePriority(r.Priority),
			Confidence:  r.Confidence,
			ActionItems: r.ActionItems,
			Tags:        r.Tags,
		})
	}
	return items, nil
}

// buildElaborationPrompt asks for one rephrased sentence per recommendation.
func buildElaborationPrompt(recommendations []string, locale string) string {
	var sb strings.Builder
	sb.WriteString("Rewrite each financial recommendation below as a friendly, specific sentence in " +
		languageFor(locale) + ". Keep the meaning and the order.\n\n")
	for i, r := range recommendations {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r)
	}
	sb.WriteString(`
Respond with a JSON object {"items": ["..."]} with exactly one string per recommendation.
RESPONSE FORMAT: Return only the JSON object, without additional text.
`)
	return sb.String()
}

func parseElaboration(text string, expected int) ([]string, error) {
	var answer struct {
		Items []string `json:"items"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(text)), &answer); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if len(answer.Items) != expected {
		return nil, fmt.Errorf("malformed answer: expected %d items, got %d", expected, len(answer.Items))
	}
	return answer.Items, nil
}

// cleanJSON strips markdown code fences some models wrap around JSON.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
