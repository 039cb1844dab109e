package dto

import "solarbookers.com/relay/internal/service"

// Field names follow the external contract (camelCase JSON bodies) the
// demo frontend and provisioning automation already speak.

type CreateAssistantRequest struct {
	CompanyName        string `json:"companyName" binding:"required,min=1,max=255"`
	ContactName        string `json:"contactName" binding:"required,min=1,max=255"`
	ContactEmail       string `json:"contactEmail" binding:"required,email,max=255"`
	Location           string `json:"location,omitempty" binding:"omitempty,max=255"`
	Title              string `json:"title,omitempty" binding:"omitempty,max=255"`
	Industry           string `json:"industry,omitempty" binding:"omitempty,max=255"`
	CompanyDescription string `json:"companyDescription,omitempty" binding:"omitempty,max=2048"`
	ServiceType        string `json:"serviceType,omitempty" binding:"omitempty,max=255"`
	Website            string `json:"website,omitempty" binding:"omitempty,url,max=2048"`
}

func (r CreateAssistantRequest) ToProvisionRequest() service.ProvisionRequest {
	return service.ProvisionRequest{
		CompanyName:  r.CompanyName,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		Location:     r.Location,
		Title:        r.Title,
		Industry:     r.Industry,
		Description:  r.CompanyDescription,
		ServiceType:  r.ServiceType,
		Website:      r.Website,
	}
}

type CreateAssistantResponse struct {
	AssistantID  string `json:"assistantId"`
	Slug         string `json:"slug"`
	DemoURL      string `json:"demoUrl"`
	CalendarLink string `json:"calendarLink"`
}

func ToCreateAssistantResponse(result *service.ProvisionResult) CreateAssistantResponse {
	return CreateAssistantResponse{
		AssistantID:  result.AssistantID,
		Slug:         result.Slug,
		DemoURL:      result.DemoURL,
		CalendarLink: result.CalendarLink,
	}
}

type LookupAssistantResponse struct {
	AssistantID string `json:"assistantId"`
	Slug        string `json:"slug"`
}

type DeleteAssistantResponse struct {
	Removed bool   `json:"removed"`
	Slug    string `json:"slug"`
}

type ListAssistantsResponse struct {
	Companies []string `json:"companies"`
}
