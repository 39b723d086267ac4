package subscriptionRepository

import (
	"SpendScan/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Subscriptions: &subscriptionRepository{q: sqlExecutor, log: r.log},
		Commit:        commitFunc,
		Rollback:      rollbackFunc,
	}, nil
}

type Client struct {
	Subscriptions interface {
		CreateRequest(c context.Context, request entity.SubscriptionRequest) error
		GetRequestByID(c context.Context, id string) (entity.SubscriptionRequest, error)
		GetRequestsByUserID(c context.Context, userID string) ([]entity.SubscriptionRequest, error)
		GetPendingRequests(c context.Context) ([]entity.SubscriptionRequest, error)
		HasPendingRequest(c context.Context, userID string) (bool, error)
		UpdateRequestStatus(c context.Context, id string, status string, reviewedBy string, reviewedAt time.Time) error
	}

	Commit   func() error
	Rollback func() error
}

type subscriptionRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
