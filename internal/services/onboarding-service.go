package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/events"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
)

// ProjectStore is the persistence the onboarding service needs.
type ProjectStore interface {
	Insert(ctx context.Context, p *models.OnboardingProject) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.OnboardingProject, error)
	List(ctx context.Context, filter repository.ProjectFilter, page, limit int) ([]models.OnboardingProject, repository.Pagination, error)
	Replace(ctx context.Context, p *models.OnboardingProject) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	All(ctx context.Context) ([]models.OnboardingProject, error)
}

// OnboardingService owns the client-onboarding project lifecycle: the
// ten-stage template, free stage transitions, project-level payment and
// the admin report.
type OnboardingService struct {
	store     ProjectStore
	publisher events.Publisher
	now       func() time.Time
}

func NewOnboardingService(store ProjectStore, publisher events.Publisher) *OnboardingService {
	return &OnboardingService{store: store, publisher: publisher, now: time.Now}
}

// ProjectInput carries the caller-settable project fields. Stages are
// never part of the input; they always come from the template.
type ProjectInput struct {
	ClientName  string              `json:"clientName"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	CompanyName string              `json:"companyName"`
	ProjectName string              `json:"projectName"`
	TechStack   string              `json:"techStack"`
	ProjectType string              `json:"projectType"`
	TotalAmount float64             `json:"totalAmount"`
	PaidAmount  float64             `json:"paidAmount"`
	StartDate   time.Time           `json:"startDate"`
	Deadline    time.Time           `json:"deadline"`
	TeamMembers []models.TeamMember `json:"teamMembers"`
}

func (in *ProjectInput) validate() error {
	v := &validator{}
	v.requireString("clientName", in.ClientName)
	v.requireString("email", in.Email)
	v.requireString("phone", in.Phone)
	v.requireString("companyName", in.CompanyName)
	v.requireString("projectName", in.ProjectName)
	v.requireString("techStack", in.TechStack)
	v.requireString("projectType", in.ProjectType)
	if in.TotalAmount < 0 {
		v.addError("totalAmount", "totalAmount must not be negative")
	}
	if in.PaidAmount < 0 {
		v.addError("paidAmount", "paidAmount must not be negative")
	}
	return v.err()
}

// Create builds the ten-stage project for the caller. Each stage's default
// payment is an equal tenth of the total.
func (s *OnboardingService) Create(ctx context.Context, creator primitive.ObjectID, in ProjectInput) (*models.OnboardingProject, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	project := &models.OnboardingProject{
		CreatedBy:   creator,
		ClientName:  in.ClientName,
		Email:       in.Email,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		ProjectName: in.ProjectName,
		TechStack:   in.TechStack,
		ProjectType: in.ProjectType,
		TotalAmount: in.TotalAmount,
		PaidAmount:  in.PaidAmount,
		StartDate:   in.StartDate,
		Deadline:    in.Deadline,
		TeamMembers: in.TeamMembers,
		Stages:      models.NewStageSet(in.TotalAmount),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if project.TeamMembers == nil {
		project.TeamMembers = []models.TeamMember{}
	}

	if err := s.store.Insert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the caller's projects. Admins may request the unrestricted
// listing with an optional text search.
func (s *OnboardingService) List(ctx context.Context, ident auth.Identity, page, limit int, all bool, search string) ([]models.OnboardingProject, repository.Pagination, error) {
	filter := repository.ProjectFilter{Owner: ident.UserID}
	if all && ident.IsAdmin() {
		filter.Owner = primitive.NilObjectID
		filter.Search = search
	}
	return s.store.List(ctx, filter, page, limit)
}

// Get returns the project if the caller owns it or is an admin. Foreign
// projects report not-found, never forbidden.
func (s *OnboardingService) Get(ctx context.Context, ident auth.Identity, id primitive.ObjectID) (*models.OnboardingProject, error) {
	project, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.CreatedBy != ident.UserID && !ident.IsAdmin() {
		return nil, repository.ErrNotFound
	}
	return project, nil
}

// Update overwrites the descriptive, commercial and temporal fields.
// Stages are untouched: changing totalAmount does not redistribute the
// per-stage payment defaults.
func (s *OnboardingService) Update(ctx context.Context, ident auth.Identity, id primitive.ObjectID, in ProjectInput) (*models.OnboardingProject, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}

	project.ClientName = in.ClientName
	project.Email = in.Email
	project.Phone = in.Phone
	project.CompanyName = in.CompanyName
	project.ProjectName = in.ProjectName
	project.TechStack = in.TechStack
	project.ProjectType = in.ProjectType
	project.TotalAmount = in.TotalAmount
	project.StartDate = in.StartDate
	project.Deadline = in.Deadline
	if in.TeamMembers != nil {
		project.TeamMembers = in.TeamMembers
	}
	project.UpdatedAt = s.now()

	if err := s.store.Replace(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *OnboardingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}

// UpdateStage applies a partial update to one stage and broadcasts the
// full updated document. Transitions are unrestricted: any stage may move
// to any status regardless of its neighbours.
func (s *OnboardingService) UpdateStage(ctx context.Context, ident auth.Identity, projectID primitive.ObjectID, stageID int, upd models.StageUpdate) (*models.OnboardingProject, error) {
	project, err := s.Get(ctx, ident, projectID)
	if err != nil {
		return nil, err
	}

	stage := project.Stage(stageID)
	if stage == nil {
		return nil, ErrStageNotFound
	}

	today := s.now().Format("2006-01-02")
	if err := stage.Apply(upd, today); err != nil {
		var fieldErr *models.StageFieldError
		if errors.As(err, &fieldErr) {
			return nil, &ValidationError{Fields: []FieldError{{Field: fieldErr.Field, Message: fieldErr.Message}}}
		}
		return nil, err
	}
	project.UpdatedAt = s.now()

	if err := s.store.Replace(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, project)
	return project, nil
}

// UpdatePayment overwrites the project-level paid amount. There is no
// invariant tying it to totalAmount or to any stage's payment fields; the
// two ledgers are tracked in parallel and may diverge.
func (s *OnboardingService) UpdatePayment(ctx context.Context, ident auth.Identity, projectID primitive.ObjectID, paidAmount float64) (*models.OnboardingProject, error) {
	if paidAmount < 0 {
		return nil, &ValidationError{Fields: []FieldError{{Field: "paidAmount", Message: "paidAmount must not be negative"}}}
	}

	project, err := s.Get(ctx, ident, projectID)
	if err != nil {
		return nil, err
	}

	project.PaidAmount = paidAmount
	project.UpdatedAt = s.now()

	if err := s.store.Replace(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Stats recomputes the admin report from every project on each call.
func (s *OnboardingService) Stats(ctx context.Context) (models.OnboardingStats, error) {
	projects, err := s.store.All(ctx)
	if err != nil {
		return models.OnboardingStats{}, err
	}
	return models.ComputeOnboardingStats(projects), nil
}

func (s *OnboardingService) publish(ctx context.Context, project *models.OnboardingProject) {
	if s.publisher == nil {
		return
	}
	s.publisher.ProjectUpdated(ctx, project)
	logging.Logger.Infof("Event ID: PROJECT_UPDATE_BROADCAST, Description: Broadcast update for project %s", project.ID.Hex())
}
