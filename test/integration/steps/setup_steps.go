package steps

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/integration/entrypoint/middleware"
)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.suite.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) iAmANewProfile() error {
	t.profileID = uuid.New()
	t.headers[middleware.ProfileIDHeader] = t.profileID.String()
	return nil
}

func (t *testContext) theCurrentDateIs(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	t.suite.timeMock.SetCurrentTime(parsed.Add(12 * time.Hour))
	return nil
}

// aCategoryOfTypeExists creates a category through the API and remembers its ID by name.
func (t *testContext) aCategoryOfTypeExists(name, categoryType string) error {
	payload, _ := json.Marshal(map[string]string{"name": name, "type": categoryType})
	if err := t.executeRequest(http.MethodPost, "/api/v1/categories", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to create category %q: %d %v", name, t.response.status, t.response.body)
	}
	id, ok := getFieldValue(t.response.body, "id").(string)
	if !ok {
		return fmt.Errorf("category response has no id: %v", t.response.body)
	}
	t.categories[name] = id
	return nil
}

// theFollowingTransactionsExist posts one transaction per table row.
// Columns: date, description, amount, type, category.
func (t *testContext) theFollowingTransactionsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("transaction table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i]] = cell.Value
		}

		categoryID, ok := t.categories[values["category"]]
		if !ok {
			return fmt.Errorf("unknown category %q", values["category"])
		}

		payload, _ := json.Marshal(map[string]any{
			"date":        values["date"],
			"description": values["description"],
			"amount":      values["amount"],
			"type":        values["type"],
			"category_id": categoryID,
		})
		if err := t.executeRequest(http.MethodPost, "/api/v1/transactions", payload); err != nil {
			return err
		}
		if t.response.status != http.StatusCreated {
			return fmt.Errorf("failed to create transaction %v: %d %v", values, t.response.status, t.response.body)
		}
	}
	return nil
}

func (t *testContext) aMonthlyBudgetExistsForCategory(amount, categoryName string) error {
	categoryID, ok := t.categories[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}

	payload, _ := json.Marshal(map[string]any{
		"category_id": categoryID,
		"amount":      amount,
		"period":      "monthly",
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/budgets", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to create budget: %d %v", t.response.status, t.response.body)
	}
	return nil
}

// theOpenAIProviderAnswersWith wraps the doc string as the assistant message of a chat completion.
func (t *testContext) theOpenAIProviderAnswersWith(content *godog.DocString) error {
	t.suite.openAI.SetResponse(http.MethodPost, "/chat/completions", http.StatusOK, map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content.Content}},
		},
	})
	return nil
}

func (t *testContext) theOpenAIProviderFailsWithStatus(status int) error {
	t.suite.openAI.SetResponse(http.MethodPost, "/chat/completions", status, map[string]any{
		"error": map[string]string{"message": "upstream failure"},
	})
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}
