package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/finance-tracker/coach/internal/domain/entity"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/middleware"
)

var daysAgoPattern = regexp.MustCompile(`\{\{days_ago:(\d+)\}\}`)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Given(`^I am the user "([^"]*)"$`, iAmTheUser)
	ctx.Given(`^the header is empty$`, theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, theHeaderContainsTheKeyWith)

	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.When(`^I upload the receipt "([^"]*)" to "([^"]*)"$`, iUploadTheReceiptTo)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Then(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

// iAmTheUser derives a stable user id from a name.
func iAmTheUser(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	tc.currentUserID = userIDFor(name)
	tc.headers[middleware.UserIDHeader] = tc.currentUserID.String()
	return nil
}

func userIDFor(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("coach-user:"+name))
}

func theHeaderIsEmpty(ctx context.Context) error {
	tc := GetTestContext(ctx)
	tc.headers = make(map[string]string)
	return nil
}

func theHeaderContainsTheKeyWith(ctx context.Context, key, value string) error {
	tc := GetTestContext(ctx)
	tc.headers[key] = value
	return nil
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	tc := GetTestContext(ctx)
	return tc.executeRequest(method, tc.replacePlaceholders(path), nil, "application/json")
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	payload := []byte(tc.replacePlaceholders(body.Content))
	return tc.executeRequest(method, tc.replacePlaceholders(path), payload, "application/json")
}

func iUploadTheReceiptTo(ctx context.Context, fileName, path string) error {
	tc := GetTestContext(ctx)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	header.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(pngHeader); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return tc.executeRequest(http.MethodPost, path, buf.Bytes(), writer.FormDataContentType())
}

func (tc *TestContext) replacePlaceholders(content string) string {
	today := entity.CalendarDate(tc.clock.Now())

	content = strings.ReplaceAll(content, "{{user_id}}", tc.currentUserID.String())
	content = strings.ReplaceAll(content, "{{goal_id}}", tc.currentGoalID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", tc.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{today}}", today.Format("2006-01-02"))

	return daysAgoPattern.ReplaceAllStringFunc(content, func(match string) string {
		days, _ := strconv.Atoi(daysAgoPattern.FindStringSubmatch(match)[1])
		return today.AddDate(0, 0, -days).Format("2006-01-02")
	})
}

func (tc *TestContext) executeRequest(method, path string, payload []byte, contentType string) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	for key, value := range tc.headers {
		req.Header.Set(key, value)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.response = &response{status: resp.StatusCode, raw: raw}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		tc.response.body = string(raw)
		return nil
	}
	tc.response.body = decoded
	tc.captureIDs(method, path, decoded)
	return nil
}

// captureIDs remembers the goal and transaction created by the last request.
func (tc *TestContext) captureIDs(method, path string, body map[string]any) {
	if method != http.MethodPost {
		return
	}
	switch {
	case path == "/api/v1/goals":
		if id, ok := parseID(body["id"]); ok {
			tc.currentGoalID = id
		}
	case path == "/api/v1/transactions":
		if id, ok := parseID(getFieldValue(body, "transaction.id")); ok {
			tc.lastTransactionID = id
		}
	}
}

func parseID(value any) (uuid.UUID, bool) {
	s, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}

func (tc *TestContext) jsonBody() (map[string]any, error) {
	if tc.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := tc.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", tc.response.body)
	}
	return body, nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, tc.response.status, string(tc.response.raw))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	_, err := GetTestContext(ctx).jsonBody()
	return err
}

func theResponseShouldContain(ctx context.Context, field string) error {
	body, err := GetTestContext(ctx).jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expectedValue string) error {
	body, err := GetTestContext(ctx).jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	body, err := GetTestContext(ctx).jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	body, err := GetTestContext(ctx).jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

// getFieldValue walks a dot separated path; numeric segments index lists.
func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(segment); err == nil {
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
		field = m[segment]
	}
	return field
}
