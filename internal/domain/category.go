package domain

// Category names a fixed ticket classification.
type Category string

const (
	CategoryAuthentication Category = "Authentication"
	CategoryHRServices     Category = "HR_Services"
	CategoryITSupport      Category = "IT_Support"
	CategorySystemIssues   Category = "System_Issues"
	CategoryGeneralInquiry Category = "General_Inquiry"
)

// CategoryAll is the wildcard category selector used by filters.
const CategoryAll = "All"

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)
