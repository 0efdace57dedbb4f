package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/finance-tracker/analytics/test/integration/mock"
)

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	list, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(list) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(list), list)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.suite.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entitySlicePtr := reflect.New(reflect.SliceOf(reflect.TypeOf(entity).Elem()))
	if err := t.suite.db.DbConn.Unscoped().Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theOpenAIProviderShouldHaveReceivedRequests(count int) error {
	received := t.suite.openAI.RequestCount("POST", "/chat/completions")
	if received != count {
		return fmt.Errorf("expected %d requests to the openai provider, got %d", count, received)
	}
	if count > 0 {
		auth := t.suite.openAI.GetRequestHeaders("POST", "/chat/completions", 0).Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return fmt.Errorf("openai request carried no bearer token: %q", auth)
		}
	}
	return nil
}

func (t *testContext) theAdviceSequenceShouldBe(expected string) error {
	value, err := mock.RedisValue("advice:sequence:" + t.profileID.String())
	if err != nil {
		return fmt.Errorf("failed to read advice sequence: %w", err)
	}
	if value != expected {
		return fmt.Errorf("advice sequence expected %s, got %s", expected, value)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

// getFieldValue walks a dot-separated path; numeric segments index into lists.
func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any
	switch v := object.(type) {
	case map[string]any:
		field = v
	default:
		objectJSON, _ := json.Marshal(object)
		var objectMap map[string]any
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
		field = objectMap
	}

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
