package repository

import (
	"context"

	"github.com/newwork/workforce/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.EmployeeProfile) (int64, error)
	GetProfileByID(ctx context.Context, id int64) (*models.EmployeeProfile, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.EmployeeProfile, error)
	ListProfiles(ctx context.Context) ([]models.EmployeeProfile, error)
	UpdateProfile(ctx context.Context, p *models.EmployeeProfile) error
}

type AbsenceRepo interface {
	CreateAbsence(ctx context.Context, a *models.AbsenceRequest) (int64, error)
	GetAbsenceByID(ctx context.Context, id int64) (*models.AbsenceRequest, error)
	ListAbsences(ctx context.Context) ([]models.AbsenceRequest, error)

	// Advance moves the request from one status to another only if its
	// current status still matches, reporting whether the update applied.
	Advance(ctx context.Context, id int64, from, to models.AbsenceStatus) (bool, error)
}

type DataItemRepo interface {
	CreateDataItem(ctx context.Context, d *models.DataItem) (int64, error)
	GetDataItemByID(ctx context.Context, id int64) (*models.DataItem, error)
	ListDataItems(ctx context.Context) ([]models.DataItem, error)
	UpdateDataItem(ctx context.Context, d *models.DataItem) error

	// SetDeleted toggles the soft-delete flag and advances updated.
	SetDeleted(ctx context.Context, id int64, deleted bool) error
}

type FeedbackRepo interface {
	CreateFeedback(ctx context.Context, f *models.Feedback) (int64, error)
	ListFeedbackByDataItem(ctx context.Context, dataItemID int64) ([]models.Feedback, error)
}
