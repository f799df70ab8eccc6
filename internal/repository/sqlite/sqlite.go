package sqlite

import (
	"time"

	"github.com/newwork/workforce/internal/db"
	"github.com/newwork/workforce/pkg/repository"
)

// Repo implements the repository interfaces using the internal DB wrapper.
type Repo struct {
	conn *db.DB
}

// Ensure Repo implements the public interfaces.
var _ repository.UserRepo = (*Repo)(nil)
var _ repository.ProfileRepo = (*Repo)(nil)
var _ repository.AbsenceRepo = (*Repo)(nil)
var _ repository.DataItemRepo = (*Repo)(nil)
var _ repository.FeedbackRepo = (*Repo)(nil)

func New(conn *db.DB) *Repo {
	return &Repo{conn: conn}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
