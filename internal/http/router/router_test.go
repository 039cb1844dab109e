package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"solarbookers.com/relay/common/backoff"
	"solarbookers.com/relay/internal/http/router"
	"solarbookers.com/relay/internal/service"
	"solarbookers.com/relay/internal/store"
)

var _ = Describe("Routes", func() {
	var (
		engine    *gin.Engine
		companies *memoryCompanyStore
		api       *scriptedAssistantClient
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		companies = newMemoryCompanyStore()
		api = newScriptedAssistantClient("Yes, this is Sarah. Did you still want that quote?")

		stores := store.NewStoresFrom(companies)
		services := service.NewServices(service.ServicesConfig{
			Stores:          stores,
			Assistant:       api,
			DemoBaseURL:     "https://solarbookers.com",
			CalendarBaseURL: "https://calendly.com",
			ChatPoll: backoff.Policy{
				Initial:     time.Millisecond,
				Max:         2 * time.Millisecond,
				MaxAttempts: 5,
				MaxElapsed:  time.Second,
			},
		})

		router.SetupRoutes(engine, services, stores, api, router.RouterConfig{
			Env:              "development",
			DemoBaseURL:      "https://solarbookers.com",
			OpenAIConfigured: true,
			RedisConfigured:  true,
		})
	})

	do := func(method, path string, body map[string]string) (*httptest.ResponseRecorder, map[string]any) {
		var buf *bytes.Buffer
		if body != nil {
			payload, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			buf = bytes.NewBuffer(payload)
		} else {
			buf = bytes.NewBuffer(nil)
		}

		req := httptest.NewRequest(method, path, buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		resp := map[string]any{}
		if w.Body.Len() > 0 {
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		}
		return w, resp
	}

	It("reports healthy", func() {
		w, resp := do(http.MethodGet, "/health", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp["status"]).To(Equal("ok"))
	})

	It("carries a demo from provisioning through a two-turn conversation", func() {
		// Provision the company demo.
		w, created := do(http.MethodPost, "/assistants", map[string]string{
			"companyName":  "Test Solar Company",
			"contactName":  "Jane Smith",
			"contactEmail": "jane@testsolar.com",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(created["slug"]).To(Equal("test-solar-company"))
		Expect(created["demoUrl"]).To(Equal("https://solarbookers.com/test-solar-company"))

		assistantID := created["assistantId"].(string)
		Expect(api.assistantInstructions(assistantID)).To(ContainSubstring("Jane Smith"))

		// The directory resolves the slug to the same assistant.
		w, lookedUp := do(http.MethodGet, "/assistants?company=test-solar-company", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(lookedUp["assistantId"]).To(Equal(assistantID))

		// First turn: initialize by slug, no user message appended.
		w, first := do(http.MethodPost, "/chat", map[string]string{
			"message":     "START_CONVERSATION",
			"companySlug": "test-solar-company",
		})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(first["reply"]).To(ContainSubstring("Sarah"))

		threadID := first["threadId"].(string)
		Expect(threadID).NotTo(BeEmpty())
		Expect(api.userMessages(threadID)).To(BeEmpty())

		// Second turn reuses the thread and appends the user message.
		w, second := do(http.MethodPost, "/chat", map[string]string{
			"message":     "Yes, that's me",
			"companySlug": "test-solar-company",
			"threadId":    threadID,
		})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(second["threadId"]).To(Equal(threadID))
		Expect(second["runId"]).NotTo(Equal(first["runId"]))
		Expect(api.userMessages(threadID)).To(Equal([]string{"Yes, that's me"}))
	})

	It("stops serving a demo once its mapping is removed", func() {
		w, _ := do(http.MethodPost, "/assistants", map[string]string{
			"companyName":  "Acme Solar LLC",
			"contactName":  "Jim Bean",
			"contactEmail": "jim@acmesolar.com",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))

		w, listed := do(http.MethodGet, "/assistants/all", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(listed["companies"]).To(ContainElement("acme-solar"))

		w, removed := do(http.MethodDelete, "/assistants?company=acme-solar", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(removed["removed"]).To(BeTrue())

		w, _ = do(http.MethodPost, "/chat", map[string]string{
			"message":     "hello",
			"companySlug": "acme-solar",
		})
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("answers the debug checks against the live wiring", func() {
		w, resp := do(http.MethodGet, "/debug", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		checks := resp["checks"].(map[string]any)
		Expect(checks["openai_key"].(map[string]any)["status"]).To(Equal("configured"))
		Expect(checks["directory"].(map[string]any)["status"]).To(Equal("success"))
		Expect(checks["thread_creation"].(map[string]any)["status"]).To(Equal("success"))
	})
})
