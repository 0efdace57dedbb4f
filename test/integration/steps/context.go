// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/config"
	"github.com/finance-tracker/analytics/internal/infra/dependency"
	"github.com/finance-tracker/analytics/internal/integration/persistence/model"
	"github.com/finance-tracker/analytics/test/integration/mock"
)

// suite holds the resources shared by every scenario.
type suite struct {
	server   *httptest.Server
	db       *mock.Db
	timeMock *mock.Time
	openAI   *mock.ApiMock
}

var (
	suiteOnce   sync.Once
	sharedSuite *suite
)

// startSuite wires the real application against SQLite, miniredis and a mocked
// OpenAI-compatible endpoint. Gemini stays unconfigured so its fallback set is served.
func startSuite() *suite {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		openAI := mock.NewApiServer()
		openAI.Start()

		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("OPENAI_API_KEY", "test-openai-key")
		_ = os.Setenv("OPENAI_BASE_URL", openAI.GetUrl())
		_ = os.Setenv("AI_PROVIDER_TIMEOUT", "2s")
		_ = os.Setenv("SCHEDULER_ENABLED", "false")
		_ = os.Unsetenv("GEMINI_API_KEY")
		_ = os.Unsetenv("RESEND_API_KEY")

		database := mock.NewDb(map[string]any{
			"categories":             &model.CategoryModel{},
			"transactions":           &model.TransactionModel{},
			"budgets":                &model.BudgetModel{},
			"recurring_transactions": &model.RecurringModel{},
			"saving_goals":           &model.GoalModel{},
			"predictions":            &model.PredictionModel{},
			"health_scores":          &model.HealthScoreModel{},
			"advice_items":           &model.AdviceItemModel{},
			"advice_feeds":           &model.AdviceFeedModel{},
		})
		timeMock := mock.NewTime()

		injector, err := dependency.NewInjectorWithClock(
			config.Load(),
			database.DbConn,
			mock.NewRedis(),
			func() bool { return database.DbConn != nil },
			timeMock,
		)
		if err != nil {
			panic("failed to wire application: " + err.Error())
		}

		sharedSuite = &suite{
			server:   httptest.NewServer(injector.Router.Setup("test")),
			db:       database,
			timeMock: timeMock,
			openAI:   openAI,
		}
		slog.Info("Integration suite started", "url", sharedSuite.server.URL)
	})
	return sharedSuite
}

type testContext struct {
	suite      *suite
	client     *http.Client
	headers    map[string]string
	profileID  uuid.UUID
	categories map[string]string
	adviceIDs  []string
	response   *response
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		startSuite()
	})

	ctx.AfterSuite(func() {
		if sharedSuite != nil {
			sharedSuite.server.Close()
			sharedSuite.openAI.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^I am a new profile$`, test.iAmANewProfile)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// Data setup steps
	ctx.Given(`^a category "([^"]*)" of type "([^"]*)" exists$`, test.aCategoryOfTypeExists)
	ctx.Given(`^the following transactions exist:$`, test.theFollowingTransactionsExist)
	ctx.Given(`^a monthly budget of "([^"]*)" exists for category "([^"]*)"$`, test.aMonthlyBudgetExistsForCategory)

	// Provider steps
	ctx.Given(`^the openai provider answers with:$`, test.theOpenAIProviderAnswersWith)
	ctx.Given(`^the openai provider fails with status (\d+)$`, test.theOpenAIProviderFailsWithStatus)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Side effect assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the openai provider should have received (\d+) requests?$`, test.theOpenAIProviderShouldHaveReceivedRequests)
	ctx.Then(`^the advice sequence of the current profile should be "([^"]*)"$`, test.theAdviceSequenceShouldBe)
}

func (t *testContext) before() error {
	t.suite = startSuite()
	t.headers = make(map[string]string)
	t.profileID = uuid.Nil
	t.categories = make(map[string]string)
	t.adviceIDs = nil
	t.response = nil

	t.suite.openAI.Reset()
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.suite.db.ClearDB()
}
