package daycare_service

import (
	"context"
	"fmt"
	"time"

	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"
	"care-compliance/internal/repository"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type daycareService struct {
	classroomRepo  repository.ClassroomRepository
	credentialRepo repository.CredentialRepository
	complianceRepo repository.ComplianceRepository
	staffRepo      repository.StaffRepository
	clock          service.Clock
	log            *zap.Logger
}

func NewDaycareService(
	classroomRepo repository.ClassroomRepository,
	credentialRepo repository.CredentialRepository,
	complianceRepo repository.ComplianceRepository,
	staffRepo repository.StaffRepository,
	clock service.Clock,
	log *zap.Logger,
) service.DaycareService {
	return &daycareService{
		classroomRepo:  classroomRepo,
		credentialRepo: credentialRepo,
		complianceRepo: complianceRepo,
		staffRepo:      staffRepo,
		clock:          clock,
		log:            log.Named("daycare"),
	}
}

func (s *daycareService) CreateClassroom(ctx context.Context, orgID uuid.UUID, in service.CreateClassroomInput) (*models.Classroom, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}

	classroom := &models.Classroom{
		OrganizationID:   orgID,
		Name:             in.Name,
		AgeGroup:         in.AgeGroup,
		RatioRequirement: in.RatioRequirement,
		Capacity:         in.Capacity,
	}
	if err := s.classroomRepo.Create(ctx, classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *daycareService) RecordHeadcount(ctx context.Context, orgID, classroomID uuid.UUID, in service.RecordHeadcountInput) (*models.Headcount, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}
	classroom, err := s.classroomRepo.GetByID(ctx, orgID, classroomID)
	if err != nil {
		return nil, fmt.Errorf("classroom: %w", err)
	}
	if err := s.checkStaff(ctx, orgID, in.RecordedBy, "recorded_by"); err != nil {
		return nil, err
	}

	headcount := &models.Headcount{
		ClassroomID:  classroomID,
		StaffCount:   in.StaffCount,
		StudentCount: in.StudentCount,
		RecordedAt:   s.clock(),
		RecordedBy:   in.RecordedBy,
	}
	if err := s.classroomRepo.RecordHeadcount(ctx, headcount); err != nil {
		return nil, err
	}

	if !evaluator.RatioMet(in.StaffCount, in.StudentCount, classroom.RatioRequirement) {
		s.log.Warn("ratio not met",
			zap.Stringer("organization_id", orgID),
			zap.String("classroom", classroom.Name),
			zap.Int("staff", in.StaffCount),
			zap.Int("students", in.StudentCount),
		)
	}
	return headcount, nil
}

func (s *daycareService) CreateCredential(ctx context.Context, orgID uuid.UUID, in service.CreateCredentialInput) (*models.Credential, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}
	member, err := s.staffRepo.GetByID(ctx, orgID, in.StaffID)
	if err != nil {
		return nil, fmt.Errorf("staff: %w", err)
	}

	credential := &models.Credential{
		OrganizationID: orgID,
		StaffID:        in.StaffID,
		Name:           in.Name,
		CredentialType: in.CredentialType,
		IssuedOn:       in.IssuedOn,
		ExpirationDate: in.ExpirationDate,
		StaffName:      member.FullName,
	}
	if err := s.credentialRepo.Create(ctx, credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (s *daycareService) CreateComplianceItem(ctx context.Context, orgID uuid.UUID, in service.CreateComplianceItemInput) (*models.ComplianceItem, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}

	item := &models.ComplianceItem{
		OrganizationID: orgID,
		Category:       in.Category,
		Title:          in.Title,
		Description:    in.Description,
	}
	if err := s.complianceRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *daycareService) AddEvidence(ctx context.Context, orgID, itemID uuid.UUID, in service.AddEvidenceInput) (*models.ComplianceEvidence, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.complianceRepo.GetItem(ctx, orgID, itemID); err != nil {
		return nil, fmt.Errorf("compliance item: %w", err)
	}
	if err := s.checkStaff(ctx, orgID, in.ReviewedBy, "reviewed_by"); err != nil {
		return nil, err
	}

	evidence := &models.ComplianceEvidence{
		ItemID:         itemID,
		Status:         in.Status,
		DocumentURL:    in.DocumentURL,
		ExpirationDate: in.ExpirationDate,
		ReviewedBy:     in.ReviewedBy,
	}
	if err := s.complianceRepo.AddEvidence(ctx, evidence); err != nil {
		return nil, err
	}
	return evidence, nil
}

// checkStaff verifies an optional staff reference belongs to the organization.
func (s *daycareService) checkStaff(ctx context.Context, orgID uuid.UUID, id *uuid.UUID, field string) error {
	if id == nil {
		return nil
	}
	if _, err := s.staffRepo.GetByID(ctx, orgID, *id); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func (s *daycareService) Dashboard(ctx context.Context, orgID uuid.UUID) (*service.DaycareDashboard, error) {
	var (
		classrooms  []models.Classroom
		headcounts  []models.Headcount
		credentials []models.Credential
		items       []models.ComplianceItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		classrooms, err = s.classroomRepo.GetAll(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		headcounts, err = s.classroomRepo.LatestHeadcounts(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		credentials, err = s.credentialRepo.GetAll(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		items, err = s.complianceRepo.GetItems(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	evidence, err := s.complianceRepo.GetEvidence(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	ratios := EvaluateRatios(classrooms, headcounts)
	met := 0
	for _, r := range ratios {
		if r.Met {
			met++
		}
	}
	summary, views := EvaluateCompliance(items, evidence, now)

	return &service.DaycareDashboard{
		GeneratedAt:     now,
		Ratios:          ratios,
		RatiosMet:       met,
		Credentials:     evaluator.BucketExpirations(credentials, credentialExpiry, now),
		Compliance:      summary,
		ComplianceItems: views,
	}, nil
}

func credentialExpiry(c models.Credential) *time.Time {
	return c.ExpirationDate
}

// EvaluateRatios pairs each classroom with its latest headcount. A classroom
// without a headcount is reported as not met.
func EvaluateRatios(classrooms []models.Classroom, headcounts []models.Headcount) []service.ClassroomRatio {
	latest := make(map[uuid.UUID]models.Headcount, len(headcounts))
	for _, h := range headcounts {
		if prev, ok := latest[h.ClassroomID]; !ok || h.RecordedAt.After(prev.RecordedAt) {
			latest[h.ClassroomID] = h
		}
	}

	ratios := make([]service.ClassroomRatio, 0, len(classrooms))
	for _, c := range classrooms {
		r := service.ClassroomRatio{Classroom: c}
		if h, ok := latest[c.ID]; ok {
			recordedAt := h.RecordedAt
			r.HasHeadcount = true
			r.StaffCount = h.StaffCount
			r.StudentCount = h.StudentCount
			r.RecordedAt = &recordedAt
			r.Met = evaluator.RatioMet(h.StaffCount, h.StudentCount, c.RatioRequirement)
		}
		if c.RatioRequirement != nil {
			if parsed, ok := evaluator.ParseRatio(*c.RatioRequirement); ok {
				maxStudents := parsed.MaxStudents(r.StaffCount)
				r.MaxStudents = &maxStudents
			}
		}
		ratios = append(ratios, r)
	}
	return ratios
}

// EvaluateCompliance scores items against their evidence and returns a view
// per item with the evidence record that decided its status.
func EvaluateCompliance(items []models.ComplianceItem, evidence []models.ComplianceEvidence, now time.Time) (evaluator.ComplianceSummary, []service.ComplianceItemView) {
	byItem := make(map[uuid.UUID][]models.ComplianceEvidence, len(items))
	for _, e := range evidence {
		byItem[e.ItemID] = append(byItem[e.ItemID], e)
	}

	inputs := make([]evaluator.ItemInput, len(items))
	for i, item := range items {
		records := byItem[item.ID]
		in := evaluator.ItemInput{
			ID:       item.ID.String(),
			Category: item.Category,
			Evidence: make([]evaluator.EvidenceInput, len(records)),
		}
		for j, e := range records {
			in.Evidence[j] = evaluator.EvidenceInput{
				Status:         evaluator.EvidenceStatus(e.Status),
				ExpirationDate: e.ExpirationDate,
				CreatedAt:      e.CreatedAt,
			}
		}
		inputs[i] = in
	}

	summary := evaluator.ScoreCategories(inputs, now)

	views := make([]service.ComplianceItemView, len(items))
	for i, item := range items {
		views[i] = service.ComplianceItemView{
			Item:           item,
			Status:         summary.Statuses[item.ID.String()],
			LatestEvidence: latestRecord(byItem[item.ID]),
		}
	}
	return summary, views
}

// latestRecord mirrors evaluator.LatestEvidence on full rows.
func latestRecord(records []models.ComplianceEvidence) *models.ComplianceEvidence {
	if len(records) == 0 {
		return nil
	}
	latest := records[0]
	for _, e := range records[1:] {
		if e.CreatedAt.After(latest.CreatedAt) {
			latest = e
		}
	}
	return &latest
}
