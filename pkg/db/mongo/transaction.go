package mongo

import (
	"context"
	"errors"

	"hackportal/pkg/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionFunc runs with a session-bound context; repository calls made
// with that context join the transaction.
type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) TransactionManager {
	return &mongoTransactionManager{client: client}
}

func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return apperr.Transient("failed to start database session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		// Aborts from concurrent writes land here; the caller may retry.
		return apperr.Transient("transaction failed", err)
	}
	return nil
}
