package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"solarbookers.com/relay/internal/http/handler"
	"solarbookers.com/relay/internal/model"
	"solarbookers.com/relay/internal/service"
	"solarbookers.com/relay/internal/store"
)

var _ = Describe("AssistantHandler", func() {
	var (
		router    *gin.Engine
		demo      *mockDemoService
		directory *mockDirectoryService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		demo = &mockDemoService{}
		directory = &mockDirectoryService{}
		h := handler.NewAssistantHandler(demo, directory)

		router.POST("/assistants", h.Create)
		router.GET("/assistants", h.Lookup)
		router.DELETE("/assistants", h.Delete)
		router.GET("/assistants/all", h.List)
	})

	Describe("Create", func() {
		It("returns 201 with the demo links on success", func() {
			demo.provisionFn = func(_ context.Context, req service.ProvisionRequest) (*service.ProvisionResult, error) {
				Expect(req.CompanyName).To(Equal("Test Solar Company"))
				Expect(req.ContactName).To(Equal("Jane Smith"))
				Expect(req.ContactEmail).To(Equal("jane@testsolar.com"))
				return &service.ProvisionResult{
					AssistantID:  "asst_123",
					Slug:         "test-solar-company",
					DemoURL:      "https://solarbookers.com/test-solar-company",
					CalendarLink: "https://calendly.com/test-solar-company",
				}, nil
			}

			body, _ := json.Marshal(map[string]string{
				"companyName":  "Test Solar Company",
				"contactName":  "Jane Smith",
				"contactEmail": "jane@testsolar.com",
			})

			req := httptest.NewRequest(http.MethodPost, "/assistants", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["assistantId"]).To(Equal("asst_123"))
			Expect(resp["slug"]).To(Equal("test-solar-company"))
			Expect(resp["demoUrl"]).To(ContainSubstring("/test-solar-company"))
			Expect(resp["calendarLink"]).To(ContainSubstring("calendly.com"))
		})

		It("returns 400 when required fields are missing", func() {
			body, _ := json.Marshal(map[string]string{
				"companyName": "Test Solar Company",
			})

			req := httptest.NewRequest(http.MethodPost, "/assistants", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on a malformed contact email", func() {
			body, _ := json.Marshal(map[string]string{
				"companyName":  "Test Solar Company",
				"contactName":  "Jane Smith",
				"contactEmail": "not-an-email",
			})

			req := httptest.NewRequest(http.MethodPost, "/assistants", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 503 when the directory store is unavailable", func() {
			demo.provisionFn = func(_ context.Context, _ service.ProvisionRequest) (*service.ProvisionResult, error) {
				return nil, fmt.Errorf("registering company: %w", store.ErrUnavailable)
			}

			body, _ := json.Marshal(map[string]string{
				"companyName":  "Test Solar Company",
				"contactName":  "Jane Smith",
				"contactEmail": "jane@testsolar.com",
			})

			req := httptest.NewRequest(http.MethodPost, "/assistants", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("returns 502 when upstream provisioning fails", func() {
			demo.provisionFn = func(_ context.Context, _ service.ProvisionRequest) (*service.ProvisionResult, error) {
				return nil, errors.New("creating assistant: 401 invalid api key")
			}

			body, _ := json.Marshal(map[string]string{
				"companyName":  "Test Solar Company",
				"contactName":  "Jane Smith",
				"contactEmail": "jane@testsolar.com",
			})

			req := httptest.NewRequest(http.MethodPost, "/assistants", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("Lookup", func() {
		It("returns the mapped assistant for a known slug", func() {
			directory.resolveFn = func(_ context.Context, slug string) (*model.Company, error) {
				Expect(slug).To(Equal("test-solar-company"))
				return &model.Company{Slug: slug, AssistantID: "asst_123"}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/assistants?company=test-solar-company", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["assistantId"]).To(Equal("asst_123"))
			Expect(resp["slug"]).To(Equal("test-solar-company"))
		})

		It("returns 400 when the company parameter is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/assistants", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown slug", func() {
			directory.resolveFn = func(_ context.Context, _ string) (*model.Company, error) {
				return nil, service.ErrCompanyNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/assistants?company=nobody", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("no assistant found for this company"))
		})

		It("returns 503 when the store is down, not 404", func() {
			directory.resolveFn = func(_ context.Context, _ string) (*model.Company, error) {
				return nil, fmt.Errorf("%w: dial tcp refused", store.ErrUnavailable)
			}

			req := httptest.NewRequest(http.MethodGet, "/assistants?company=test-solar-company", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("Delete", func() {
		It("reports whether a mapping was removed", func() {
			demo.teardownFn = func(_ context.Context, slug string) (bool, error) {
				Expect(slug).To(Equal("test-solar-company"))
				return true, nil
			}

			req := httptest.NewRequest(http.MethodDelete, "/assistants?company=test-solar-company", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["removed"]).To(BeTrue())
			Expect(resp["slug"]).To(Equal("test-solar-company"))
		})

		It("returns removed=false when no mapping existed", func() {
			demo.teardownFn = func(_ context.Context, _ string) (bool, error) {
				return false, nil
			}

			req := httptest.NewRequest(http.MethodDelete, "/assistants?company=ghost", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["removed"]).To(BeFalse())
		})

		It("returns 400 when the company parameter is missing", func() {
			req := httptest.NewRequest(http.MethodDelete, "/assistants", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("List", func() {
		It("returns all registered slugs", func() {
			directory.listFn = func(_ context.Context) ([]string, error) {
				return []string{"acme-solar", "test-solar-company"}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/assistants/all", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			companies := resp["companies"].([]any)
			Expect(companies).To(HaveLen(2))
		})

		It("returns an empty array rather than null", func() {
			req := httptest.NewRequest(http.MethodGet, "/assistants/all", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"companies":[]`))
		})
	})
})
