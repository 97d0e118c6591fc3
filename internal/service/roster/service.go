package roster_service

import (
	"context"
	"fmt"
	"strings"

	"care-compliance/internal/models"
	"care-compliance/internal/repository"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type rosterService struct {
	orgRepo       repository.OrganizationRepository
	staffRepo     repository.StaffRepository
	studentRepo   repository.StudentRepository
	classroomRepo repository.ClassroomRepository
	log           *zap.Logger
}

func NewRosterService(
	orgRepo repository.OrganizationRepository,
	staffRepo repository.StaffRepository,
	studentRepo repository.StudentRepository,
	classroomRepo repository.ClassroomRepository,
	log *zap.Logger,
) service.RosterService {
	return &rosterService{
		orgRepo:       orgRepo,
		staffRepo:     staffRepo,
		studentRepo:   studentRepo,
		classroomRepo: classroomRepo,
		log:           log.Named("roster"),
	}
}

func (s *rosterService) CreateOrganization(ctx context.Context, in service.CreateOrganizationInput) (*models.Organization, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := service.Validate(in); err != nil {
		return nil, err
	}

	org := &models.Organization{Name: in.Name, Kind: in.Kind}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	s.log.Info("organization created",
		zap.Stringer("organization_id", org.ID),
		zap.String("kind", org.Kind),
	)
	return org, nil
}

func (s *rosterService) GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, orgID)
}

func (s *rosterService) CreateStaff(ctx context.Context, orgID uuid.UUID, in service.CreateStaffInput) (*models.Staff, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if err := service.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return nil, fmt.Errorf("organization: %w", err)
	}

	staff := &models.Staff{
		OrganizationID: orgID,
		FullName:       in.FullName,
		Role:           in.Role,
		Discipline:     in.Discipline,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	s.log.Info("staff created",
		zap.Stringer("organization_id", orgID),
		zap.Stringer("staff_id", staff.ID),
		zap.String("role", staff.Role),
	)
	return staff, nil
}

func (s *rosterService) ListStaff(ctx context.Context, orgID uuid.UUID) ([]models.Staff, error) {
	return s.staffRepo.GetAll(ctx, orgID)
}

func (s *rosterService) CreateStudent(ctx context.Context, orgID uuid.UUID, in service.CreateStudentInput) (*models.Student, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := service.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return nil, fmt.Errorf("organization: %w", err)
	}

	// Assignments must stay inside the organization.
	discipline := in.Discipline
	if in.TherapistID != nil {
		therapist, err := s.staffRepo.GetByID(ctx, orgID, *in.TherapistID)
		if err != nil {
			return nil, fmt.Errorf("therapist: %w", err)
		}
		if discipline == "" {
			discipline = therapist.Discipline
		}
	}
	if in.ClassroomID != nil {
		if _, err := s.classroomRepo.GetByID(ctx, orgID, *in.ClassroomID); err != nil {
			return nil, fmt.Errorf("classroom: %w", err)
		}
	}

	student := &models.Student{
		OrganizationID: orgID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Discipline:     discipline,
		TherapistID:    in.TherapistID,
		ClassroomID:    in.ClassroomID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	s.log.Info("student created",
		zap.Stringer("organization_id", orgID),
		zap.Stringer("student_id", student.ID),
	)
	return student, nil
}

func (s *rosterService) ListStudents(ctx context.Context, orgID uuid.UUID) ([]models.Student, error) {
	return s.studentRepo.GetAll(ctx, orgID)
}
