// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizledger/backend/config"
	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/infra/dependency"
	"github.com/bizledger/backend/internal/integration/adapters"
	"github.com/bizledger/backend/internal/integration/persistence/model"
	"github.com/bizledger/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var placeholder = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// TestContext holds the test state for each scenario.
type TestContext struct {
	server   *httptest.Server
	client   *http.Client
	db       *mock.Db
	redis    *mock.Redis
	response *response

	headers     map[string]string
	accessToken string
	users       map[string]uuid.UUID
	saved       map[string]string
}

type response struct {
	status  int
	headers http.Header
	body    any
	raw     []byte
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			client:  &http.Client{Timeout: 10 * time.Second},
			db:      mock.NewDb(model.LedgerModels()),
			headers: make(map[string]string),
			users:   make(map[string]uuid.UUID),
			saved:   make(map[string]string),
		}
		if err := tc.db.ClearDB(); err != nil {
			return ctx, err
		}
		tc.redis = mock.SharedRedis()
		tc.redis.Reset()

		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret
		cfg.Idempotency.Enabled = true
		cfg.RateLimit.Enabled = false

		injector := dependency.NewInjector(cfg, tc.db.DbConn, tc.redis.Client)
		tc.server = httptest.NewServer(injector.Router.Setup("test"))

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Given(`^I am authenticated as "([^"]*)"$`, iAmAuthenticatedAs)
	ctx.Given(`^(\d+) hours have passed$`, hoursHavePassed)

	// Header steps
	ctx.Given(`^the header is empty$`, theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, iSaveTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, theResponseHeaderShouldBe)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, theDbShouldContainObjectsInWithTheValues)
}

func scenario(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, errors.New("test context not found")
	}
	return tc, nil
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	resp, err := tc.client.Get(tc.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("test server is not running: %w", err)
	}
	resp.Body.Close()
	return nil
}

// hoursHavePassed moves the replay store's clock forward. Ledger documents are
// unaffected.
func hoursHavePassed(ctx context.Context, hours int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.redis.Elapse(time.Duration(hours) * time.Hour)
	return nil
}

// iAmAuthenticatedAs signs a token for a user identified by email. The same email
// always maps to the same user within a scenario.
func iAmAuthenticatedAs(ctx context.Context, email string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}

	userID, ok := tc.users[email]
	if !ok {
		userID = uuid.New()
		tc.users[email] = userID
	}

	token, err := adapters.NewTokenService(testJWTSecret).IssueAccessToken(ctx, adapter.Principal{UserID: userID, Email: email}, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	tc.accessToken = token
	return nil
}

func theHeaderIsEmpty(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.headers = make(map[string]string)
	tc.accessToken = ""
	return nil
}

func theHeaderContainsTheKeyWith(ctx context.Context, key, value string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.headers[key] = value
	return nil
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return tc.executeRequest(method, tc.expand(path), nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(tc.expand(body.Content))
	}
	return tc.executeRequest(method, tc.expand(path), payload)
}

// iSaveTheResponseFieldAs stores a response value for later {{name}} placeholders.
func iSaveTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	tc.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

func (tc *TestContext) expand(content string) string {
	return placeholder.ReplaceAllStringFunc(content, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if value, ok := tc.saved[name]; ok {
			return value
		}
		return match
	})
}

func (tc *TestContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
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

	tc.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     raw,
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		tc.response.body = string(raw)
	} else {
		tc.response.body = decoded
	}
	return nil
}

func (tc *TestContext) field(field string) (any, error) {
	if tc.response == nil {
		return nil, errors.New("no response received")
	}
	value := getFieldValue(tc.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %s", field, tc.response.raw)
	}
	return value, nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, tc.response.status, tc.response.raw)
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if _, ok := tc.response.body.(string); ok {
		return fmt.Errorf("response is not JSON: %s", tc.response.raw)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, field string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	body, ok := tc.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %s", tc.response.raw)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %s", field, tc.response.raw)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expectedValue string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", value); actual != tc.expand(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	_, err = tc.field(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func theResponseHeaderShouldBe(ctx context.Context, header, expected string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if actual := tc.response.headers.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if _, ok := tc.db.GetModel(table); !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	var count int64
	if err := tc.db.DbConn.Table(table).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func theDbShouldContainObjectsInWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}

	var criteria map[string]any
	if err := json.Unmarshal([]byte(tc.expand(content.Content)), &criteria); err != nil {
		return err
	}

	entity, ok := tc.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := tc.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field = object
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
