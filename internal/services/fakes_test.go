package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop-server/internal/models"
	"feedloop-server/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeProjectRepo struct {
	projects map[uuid.UUID]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*models.Project)}
}

func (f *fakeProjectRepo) Create(p *models.Project) error {
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) GetByID(id uuid.UUID) (*models.Project, error) {
	if p, ok := f.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectRepo) GetByIntegrationKey(key string) (*models.Project, error) {
	for _, p := range f.projects {
		if p.IntegrationKey == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectRepo) ListForUser(userID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.OwnerID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Delete(id uuid.UUID) error {
	delete(f.projects, id)
	return nil
}

type fakeInvitationRepo struct {
	active  []models.Invitation
	pending []models.PendingInvitation
}

func (f *fakeInvitationRepo) Create(inv *models.Invitation) error {
	f.active = append(f.active, *inv)
	return nil
}

func (f *fakeInvitationRepo) GetByProjectAndUser(projectID uuid.UUID, userID string) (*models.Invitation, error) {
	for i := range f.active {
		if f.active[i].ProjectID == projectID && f.active[i].UserID == userID {
			cp := f.active[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) GetByProjectAndEmail(projectID uuid.UUID, email string) (*models.Invitation, error) {
	for i := range f.active {
		if f.active[i].ProjectID == projectID && f.active[i].Email == email {
			cp := f.active[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) ListByProject(projectID uuid.UUID) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range f.active {
		if inv.ProjectID == projectID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) DeleteByProjectAndEmail(projectID uuid.UUID, email string) (int64, error) {
	var kept []models.Invitation
	var deleted int64
	for _, inv := range f.active {
		if inv.ProjectID == projectID && inv.Email == email {
			deleted++
			continue
		}
		kept = append(kept, inv)
	}
	f.active = kept
	return deleted, nil
}

func (f *fakeInvitationRepo) CreatePending(inv *models.PendingInvitation) error {
	f.pending = append(f.pending, *inv)
	return nil
}

func (f *fakeInvitationRepo) GetPendingByProjectAndEmail(projectID uuid.UUID, email string, now time.Time) (*models.PendingInvitation, error) {
	for i := range f.pending {
		p := f.pending[i]
		if p.ProjectID == projectID && p.Email == email && p.ExpiresAt.After(now) {
			cp := p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) ListPendingByEmail(email string, now time.Time) ([]models.PendingInvitation, error) {
	var out []models.PendingInvitation
	for _, p := range f.pending {
		if p.Email == email && p.ExpiresAt.After(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) ListPendingByProject(projectID uuid.UUID, now time.Time) ([]models.PendingInvitation, error) {
	var out []models.PendingInvitation
	for _, p := range f.pending {
		if p.ProjectID == projectID && p.ExpiresAt.After(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) DeletePending(id uuid.UUID) error {
	var kept []models.PendingInvitation
	for _, p := range f.pending {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.pending = kept
	return nil
}

func (f *fakeInvitationRepo) DeletePendingByProjectAndEmail(projectID uuid.UUID, email string) (int64, error) {
	var kept []models.PendingInvitation
	var deleted int64
	for _, p := range f.pending {
		if p.ProjectID == projectID && p.Email == email {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	f.pending = kept
	return deleted, nil
}

func (f *fakeInvitationRepo) DeleteExpiredPending(now time.Time) (int64, error) {
	var kept []models.PendingInvitation
	var deleted int64
	for _, p := range f.pending {
		if !p.ExpiresAt.After(now) {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	f.pending = kept
	return deleted, nil
}

type fakeReportRepo struct {
	reports map[uuid.UUID]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*models.Report)}
}

func (f *fakeReportRepo) Create(r *models.Report) error {
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeReportRepo) GetByID(projectID, id uuid.UUID) (*models.Report, error) {
	if r, ok := f.reports[id]; ok && r.ProjectID == projectID {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) Update(r *models.Report) error {
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeReportRepo) List(projectID uuid.UUID, filter repository.ReportFilter, sort repository.ReportSort, page repository.Pagination) ([]models.Report, int64, error) {
	reports, err := f.ListForExport(projectID, filter)
	return reports, int64(len(reports)), err
}

func (f *fakeReportRepo) ListForExport(projectID uuid.UUID, filter repository.ReportFilter) ([]models.Report, error) {
	var out []models.Report
	for _, r := range f.reports {
		if r.ProjectID != projectID {
			continue
		}
		if filter.Type != "" && string(r.Type) != filter.Type {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(r.Priority) != filter.Priority {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

type fakeAttachmentRepo struct {
	attachments map[uuid.UUID]*models.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[uuid.UUID]*models.Attachment)}
}

func (f *fakeAttachmentRepo) Create(a *models.Attachment) error {
	cp := *a
	f.attachments[a.ID] = &cp
	return nil
}

func (f *fakeAttachmentRepo) GetByID(id uuid.UUID) (*models.Attachment, error) {
	if a, ok := f.attachments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttachmentRepo) GetByIDs(ids []uuid.UUID) ([]models.Attachment, error) {
	var out []models.Attachment
	for _, id := range ids {
		if a, ok := f.attachments[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttachmentRepo) Update(a *models.Attachment) error {
	cp := *a
	f.attachments[a.ID] = &cp
	return nil
}

func (f *fakeAttachmentRepo) ListByReport(reportID uuid.UUID) ([]models.Attachment, error) {
	var out []models.Attachment
	for _, a := range f.attachments {
		if a.ReportID != nil && *a.ReportID == reportID {
			out = append(out, *a)
		}
	}
	return out, nil
}
