package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in-progress"
	StageDone       StageStatus = "done"
)

func (s StageStatus) Valid() bool {
	switch s {
	case StagePending, StageInProgress, StageDone:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPartiallyPaid PaymentStatus = "partially-paid"
	PaymentPaid          PaymentStatus = "paid"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPartiallyPaid, PaymentPaid:
		return true
	}
	return false
}

// TeamMember is display data only; insertion order is display order and
// duplicates are allowed.
type TeamMember struct {
	Name  string `bson:"name" json:"name"`
	Role  string `bson:"role" json:"role"`
	Email string `bson:"email" json:"email"`
}

// Stage is embedded in its project and never exists on its own. The id,
// name, output and approvalRequired fields come from the fixed template
// and are immutable after creation.
type Stage struct {
	ID               int           `bson:"id" json:"id"`
	Name             string        `bson:"name" json:"name"`
	Output           string        `bson:"output" json:"output"`
	Status           StageStatus   `bson:"status" json:"status"`
	PaymentStatus    PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	CompletionDate   string        `bson:"completionDate,omitempty" json:"completionDate,omitempty"`
	AssignedMember   string        `bson:"assignedMember,omitempty" json:"assignedMember,omitempty"`
	Notes            string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Payment          float64       `bson:"payment" json:"payment"`
	ApprovalRequired bool          `bson:"approvalRequired" json:"approvalRequired"`
	Approved         bool          `bson:"approved" json:"approved"`
}

type OnboardingProject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	ClientName  string             `bson:"clientName" json:"clientName"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	ProjectName string             `bson:"projectName" json:"projectName"`
	TechStack   string             `bson:"techStack" json:"techStack"`
	ProjectType string             `bson:"projectType" json:"projectType"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	PaidAmount  float64            `bson:"paidAmount" json:"paidAmount"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	Deadline    time.Time          `bson:"deadline" json:"deadline"`
	TeamMembers []TeamMember       `bson:"teamMembers" json:"teamMembers"`
	Stages      []Stage            `bson:"stages" json:"stages"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// stageTemplate defines the ten fixed onboarding phases. Stage ids are the
// 1-based template positions and never change for the life of a project.
var stageTemplate = []struct {
	Name             string
	Output           string
	ApprovalRequired bool
}{
	{"Requirement Gathering", "Signed-off requirements document", true},
	{"Branding & Wireframe", "Brand kit and low-fidelity wireframes", true},
	{"UI/UX Design", "High-fidelity screens and clickable prototype", true},
	{"Frontend Development", "Responsive client application", false},
	{"Backend Development", "API and data layer", false},
	{"Integrations", "Third-party services connected and verified", false},
	{"Content Upload", "Production content in place", false},
	{"Testing & QA", "Test report with fixes applied", false},
	{"Deployment & Hosting", "Live environment with monitoring", false},
	{"Final Delivery & Training", "Handover session and documentation", true},
}

// StageCount is the fixed number of onboarding stages per project.
const StageCount = 10

// SplitPayment returns the default per-stage payment for a project total:
// an equal tenth, rounded half away from zero. The split is a creation-time
// default only; editing the total later does not touch existing stages.
func SplitPayment(totalAmount float64) float64 {
	return math.Round(totalAmount / StageCount)
}

// NewStageSet builds the ten template stages for a new project.
func NewStageSet(totalAmount float64) []Stage {
	payment := SplitPayment(totalAmount)
	stages := make([]Stage, 0, StageCount)
	for i, t := range stageTemplate {
		stages = append(stages, Stage{
			ID:               i + 1,
			Name:             t.Name,
			Output:           t.Output,
			Status:           StagePending,
			PaymentStatus:    PaymentPending,
			Payment:          payment,
			ApprovalRequired: t.ApprovalRequired,
		})
	}
	return stages
}

// Stage returns the stage with the given template id, or nil.
func (p *OnboardingProject) Stage(id int) *Stage {
	for i := range p.Stages {
		if p.Stages[i].ID == id {
			return &p.Stages[i]
		}
	}
	return nil
}

// StageFieldError names the stage field that failed validation so the
// response can carry a field-level message.
type StageFieldError struct {
	Field   string
	Message string
}

func (e *StageFieldError) Error() string { return e.Field + ": " + e.Message }

// StageUpdate carries the mutable stage fields of a PATCH request. Nil
// pointers mean "leave as is".
type StageUpdate struct {
	Status         *StageStatus   `json:"status,omitempty"`
	PaymentStatus  *PaymentStatus `json:"paymentStatus,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	AssignedMember *string        `json:"assignedMember,omitempty"`
	Approved       *bool          `json:"approved,omitempty"`
}

// Apply overwrites the stage's mutable fields from u. Transitions between
// statuses are unrestricted; stages may complete in any order. The first
// transition to done stamps CompletionDate with today (YYYY-MM-DD) and the
// stamp is never reset, even if the stage later leaves done and returns.
func (s *Stage) Apply(u StageUpdate, today string) error {
	if u.Status != nil {
		if !u.Status.Valid() {
			return &StageFieldError{Field: "status", Message: fmt.Sprintf("invalid stage status: %q", *u.Status)}
		}
		s.Status = *u.Status
		if s.Status == StageDone && s.CompletionDate == "" {
			s.CompletionDate = today
		}
	}
	if u.PaymentStatus != nil {
		if !u.PaymentStatus.Valid() {
			return &StageFieldError{Field: "paymentStatus", Message: fmt.Sprintf("invalid payment status: %q", *u.PaymentStatus)}
		}
		s.PaymentStatus = *u.PaymentStatus
	}
	if u.Notes != nil {
		s.Notes = *u.Notes
	}
	if u.AssignedMember != nil {
		s.AssignedMember = *u.AssignedMember
	}
	if u.Approved != nil {
		s.Approved = *u.Approved
	}
	return nil
}

// OnboardingStats is the admin reporting view, recomputed from scratch on
// every request.
type OnboardingStats struct {
	TotalProjects int                 `json:"totalProjects"`
	TotalRevenue  float64             `json:"totalRevenue"`
	TotalPaid     float64             `json:"totalPaid"`
	PendingAmount float64             `json:"pendingAmount"`
	StageCounts   map[StageStatus]int `json:"stageCounts"`
}

// ComputeOnboardingStats folds project totals and per-status stage counts
// across all projects.
func ComputeOnboardingStats(projects []OnboardingProject) OnboardingStats {
	stats := OnboardingStats{
		StageCounts: map[StageStatus]int{
			StagePending:    0,
			StageInProgress: 0,
			StageDone:       0,
		},
	}
	for i := range projects {
		p := &projects[i]
		stats.TotalProjects++
		stats.TotalRevenue += p.TotalAmount
		stats.TotalPaid += p.PaidAmount
		for j := range p.Stages {
			stats.StageCounts[p.Stages[j].Status]++
		}
	}
	stats.PendingAmount = stats.TotalRevenue - stats.TotalPaid
	return stats
}
