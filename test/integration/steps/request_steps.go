package steps

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/cucumber/godog"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)(?::([^}]+))?\}\}`)

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, t.replacePlaceholders(path), []byte(t.replacePlaceholders(body.Content)))
}

// replacePlaceholders expands {{profile}}, {{category:Name}} and {{advice:N}}.
func (t *testContext) replacePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		switch parts[1] {
		case "profile":
			return t.profileID.String()
		case "category":
			if id, ok := t.categories[parts[2]]; ok {
				return id
			}
		case "advice":
			if i, err := strconv.Atoi(parts[2]); err == nil && i < len(t.adviceIDs) {
				return t.adviceIDs[i]
			}
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.suite.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureAdviceIDs(responseBody)
	return nil
}

// captureAdviceIDs remembers the item IDs of the last advice feed in display order.
func (t *testContext) captureAdviceIDs(body map[string]any) {
	items, ok := body["items"].([]any)
	if !ok {
		return
	}
	ids := make([]string, 0, len(items))
	for _, raw := range items {
		if item, ok := raw.(map[string]any); ok {
			if id, ok := item["id"].(string); ok {
				ids = append(ids, id)
			}
		}
	}
	t.adviceIDs = ids
}
