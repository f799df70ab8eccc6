package mock

import (
	"context"

	"github.com/newwork/workforce/internal/models"
)

// Test helpers and mocks
type Mocks struct {
	Users     *UserRepo
	Profiles  *ProfileRepo
	Absences  *AbsenceRepo
	DataItems *DataItemRepo
	Feedback  *FeedbackRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:     &UserRepo{},
		Profiles:  &ProfileRepo{},
		Absences:  &AbsenceRepo{},
		DataItems: &DataItemRepo{},
		Feedback:  &FeedbackRepo{},
	}
}

type UserRepo struct {
	Stored    []models.User
	CreateErr error
	DeleteErr error
	nextID    int64
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range m.Stored {
		if m.Stored[i].Email == email {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, len(m.Stored))
	copy(out, m.Stored)
	return out, nil
}

func (m *UserRepo) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type ProfileRepo struct {
	Stored    []models.EmployeeProfile
	UpdateErr error
	nextID    int64
}

func (m *ProfileRepo) CreateProfile(ctx context.Context, p *models.EmployeeProfile) (int64, error) {
	m.nextID++
	stored := *p
	stored.ID = m.nextID
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *ProfileRepo) GetProfileByID(ctx context.Context, id int64) (*models.EmployeeProfile, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			p := m.Stored[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *ProfileRepo) GetProfileByUserID(ctx context.Context, userID int64) (*models.EmployeeProfile, error) {
	for i := range m.Stored {
		if m.Stored[i].UserID == userID {
			p := m.Stored[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *ProfileRepo) ListProfiles(ctx context.Context) ([]models.EmployeeProfile, error) {
	out := make([]models.EmployeeProfile, len(m.Stored))
	copy(out, m.Stored)
	return out, nil
}

func (m *ProfileRepo) UpdateProfile(ctx context.Context, p *models.EmployeeProfile) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == p.ID {
			m.Stored[i] = *p
			return nil
		}
	}
	return nil
}

type AbsenceRepo struct {
	Stored    []models.AbsenceRequest
	CreateErr error
	nextID    int64
}

func (m *AbsenceRepo) CreateAbsence(ctx context.Context, a *models.AbsenceRequest) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *a
	stored.ID = m.nextID
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *AbsenceRepo) GetAbsenceByID(ctx context.Context, id int64) (*models.AbsenceRequest, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			a := m.Stored[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *AbsenceRepo) ListAbsences(ctx context.Context) ([]models.AbsenceRequest, error) {
	out := make([]models.AbsenceRequest, len(m.Stored))
	copy(out, m.Stored)
	return out, nil
}

func (m *AbsenceRepo) Advance(ctx context.Context, id int64, from, to models.AbsenceStatus) (bool, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id && m.Stored[i].Status == from {
			m.Stored[i].Status = to
			return true, nil
		}
	}
	return false, nil
}

type DataItemRepo struct {
	Stored    []models.DataItem
	CreateErr error
	nextID    int64
}

func (m *DataItemRepo) CreateDataItem(ctx context.Context, d *models.DataItem) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *d
	stored.ID = m.nextID
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *DataItemRepo) GetDataItemByID(ctx context.Context, id int64) (*models.DataItem, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			d := m.Stored[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (m *DataItemRepo) ListDataItems(ctx context.Context) ([]models.DataItem, error) {
	out := make([]models.DataItem, len(m.Stored))
	copy(out, m.Stored)
	return out, nil
}

func (m *DataItemRepo) UpdateDataItem(ctx context.Context, d *models.DataItem) error {
	for i := range m.Stored {
		if m.Stored[i].ID == d.ID {
			m.Stored[i].Title = d.Title
			m.Stored[i].Description = d.Description
			m.Stored[i].Updated++
			return nil
		}
	}
	return nil
}

func (m *DataItemRepo) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].IsDeleted = deleted
			m.Stored[i].Updated++
			return nil
		}
	}
	return nil
}

type FeedbackRepo struct {
	Stored    []models.Feedback
	CreateErr error
	nextID    int64
}

func (m *FeedbackRepo) CreateFeedback(ctx context.Context, f *models.Feedback) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *f
	stored.ID = m.nextID
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *FeedbackRepo) ListFeedbackByDataItem(ctx context.Context, dataItemID int64) ([]models.Feedback, error) {
	var out []models.Feedback
	for i := range m.Stored {
		if m.Stored[i].DataItemID == dataItemID {
			out = append(out, m.Stored[i])
		}
	}
	return out, nil
}
