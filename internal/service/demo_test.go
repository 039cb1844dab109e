package service_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"solarbookers.com/relay/internal/assistant"
	"solarbookers.com/relay/internal/model"
	"solarbookers.com/relay/internal/service"
	"solarbookers.com/relay/internal/store"
)

var _ = Describe("DemoService", func() {
	var (
		api  *mockAssistantClient
		dir  *mockDirectoryService
		demo service.DemoService
		ctx  context.Context
	)

	BeforeEach(func() {
		api = &mockAssistantClient{}
		dir = &mockDirectoryService{}
		demo = service.NewDemoService(api, dir, "https://solarbookers.com", "https://calendly.com")
		ctx = context.Background()
	})

	Describe("Provision", func() {
		It("creates the assistant and registers the slug mapping", func() {
			var createReq assistant.CreateAssistantRequest
			api.createAssistantFn = func(_ context.Context, req assistant.CreateAssistantRequest) (string, error) {
				createReq = req
				return "asst_new", nil
			}

			var registered *model.Company
			dir.registerFn = func(_ context.Context, company *model.Company) error {
				registered = company
				return nil
			}

			result, err := demo.Provision(ctx, service.ProvisionRequest{
				CompanyName: "Test Solar Company",
				ContactName: "Jordan Smith",
				Location:    "Austin, TX",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Slug).To(Equal("test-solar-company"))
			Expect(result.AssistantID).To(Equal("asst_new"))
			Expect(result.DemoURL).To(Equal("https://solarbookers.com/test-solar-company"))
			Expect(result.CalendarLink).To(Equal("https://calendly.com/test-solar-company"))

			Expect(registered).NotTo(BeNil())
			Expect(registered.Slug).To(Equal("test-solar-company"))
			Expect(registered.AssistantID).To(Equal("asst_new"))
			Expect(registered.ID).NotTo(BeZero())

			Expect(createReq.Name).To(ContainSubstring("Test Solar Company"))
			Expect(createReq.Instructions).To(ContainSubstring("Jordan Smith"))
			Expect(createReq.Instructions).To(ContainSubstring("https://calendly.com/test-solar-company"))
		})

		It("strips business suffixes from the demo URL", func() {
			result, err := demo.Provision(ctx, service.ProvisionRequest{
				CompanyName: "Acme Solar LLC",
				ContactName: "Jordan Smith",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Slug).To(Equal("acme-solar"))
			Expect(strings.HasSuffix(result.DemoURL, "/acme-solar")).To(BeTrue())
		})

		It("fails and cleans up the assistant when registration fails", func() {
			dir.registerFn = func(context.Context, *model.Company) error {
				return store.ErrUnavailable
			}
			deleted := ""
			api.deleteAssistantFn = func(_ context.Context, assistantID string) error {
				deleted = assistantID
				return nil
			}

			_, err := demo.Provision(ctx, service.ProvisionRequest{
				CompanyName: "Acme Solar",
				ContactName: "Jordan Smith",
			})
			Expect(errors.Is(err, store.ErrUnavailable)).To(BeTrue())
			Expect(deleted).To(Equal("asst_mock"))
		})

		It("does not touch the directory when assistant creation fails", func() {
			api.createAssistantFn = func(context.Context, assistant.CreateAssistantRequest) (string, error) {
				return "", errors.New("upstream down")
			}
			registered := 0
			dir.registerFn = func(context.Context, *model.Company) error {
				registered++
				return nil
			}

			_, err := demo.Provision(ctx, service.ProvisionRequest{
				CompanyName: "Acme Solar",
				ContactName: "Jordan Smith",
			})
			Expect(err).To(HaveOccurred())
			Expect(registered).To(BeZero())
		})
	})

	Describe("Teardown", func() {
		It("removes the mapping and reports the outcome", func() {
			dir.removeFn = func(_ context.Context, slug string) (bool, error) {
				return slug == "acme-solar", nil
			}

			removed, err := demo.Teardown(ctx, "acme-solar")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeTrue())

			removed, err = demo.Teardown(ctx, "never-stored")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeFalse())
		})
	})
})
