package job

import (
	"context"
	"time"

	"github.com/inkpost/inkpost/internal/repo"
)

// RevocationCleanupJob prunes revocation rows whose token has expired
// on its own; the gate would reject those tokens anyway.
type RevocationCleanupJob struct {
	repo *repo.RevocationRepo
}

func NewRevocationCleanupJob(repo *repo.RevocationRepo) *RevocationCleanupJob {
	return &RevocationCleanupJob{repo: repo}
}

func (j *RevocationCleanupJob) Name() string {
	return "revocation_cleanup"
}

func (j *RevocationCleanupJob) Run(ctx context.Context) error {
	if j.repo == nil {
		return nil
	}
	_, err := j.repo.DeleteExpired(ctx, time.Now().Unix())
	return err
}
