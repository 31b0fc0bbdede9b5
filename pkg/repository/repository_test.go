package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/repository/firestore"
	"github.com/minesafe-lab/minesafe/pkg/repository/memory"
)

var testRunSeq atomic.Int64

func newMemoryRepo(t *testing.T) interfaces.Repository {
	return memory.New()
}

// newFirestoreRepo connects to a real Firestore project when
// FIRESTORE_PROJECT_ID is set; each call gets its own collection prefix so
// runs do not interfere.
func newFirestoreRepo(t *testing.T) interfaces.Repository {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	prefix := fmt.Sprintf("test_%d_%d", os.Getpid(), testRunSeq.Add(1))
	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"),
		firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}
