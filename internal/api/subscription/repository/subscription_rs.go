package subscriptionRepository

import (
	"SpendScan/internal/api/subscription"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type SubscriptionRequestDB struct {
	ID                   sql.NullString  `db:"id"`
	UserID               sql.NullString  `db:"user_id"`
	PlanType             sql.NullString  `db:"plan_type"`
	Amount               sql.NullFloat64 `db:"amount"`
	InvoiceNumber        sql.NullString  `db:"invoice_number"`
	PaymentScreenshotURL sql.NullString  `db:"payment_screenshot_url"`
	Notes                sql.NullString  `db:"notes"`
	Status               sql.NullString  `db:"status"`
	ReviewedBy           sql.NullString  `db:"reviewed_by"`
	ReviewedAt           sql.NullTime    `db:"reviewed_at"`
	CreatedAt            time.Time       `db:"created_at"`
}

func (r *subscriptionRepository) CreateRequest(c context.Context, request entity.SubscriptionRequest) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":                     request.ID,
		"user_id":                request.UserID,
		"plan_type":              request.PlanType,
		"amount":                 request.Amount,
		"invoice_number":         request.InvoiceNumber,
		"payment_screenshot_url": request.PaymentScreenshotURL,
		"notes":                  request.Notes,
		"status":                 request.Status,
		"created_at":             time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateRequest, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateRequest")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating subscription request")

		return err
	}

	return nil
}

func (r *subscriptionRepository) GetRequestByID(c context.Context, id string) (entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(c)
	var request SubscriptionRequestDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetRequestByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRequestByID named query preparation err")

		return entity.SubscriptionRequest{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&request); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetRequestByID no rows found")
			return entity.SubscriptionRequest{}, subscription.ErrRequestNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRequestByID execution err")
		return entity.SubscriptionRequest{}, err
	}

	return r.makeSubscriptionRequest(request), nil
}

func (r *subscriptionRepository) GetRequestsByUserID(c context.Context, userID string) ([]entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(c)
	var requests []SubscriptionRequestDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetRequestsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRequestsByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &requests, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRequestsByUserID execution err")
		return nil, err
	}

	result := make([]entity.SubscriptionRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, r.makeSubscriptionRequest(request))
	}

	return result, nil
}

func (r *subscriptionRepository) GetPendingRequests(c context.Context) ([]entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(c)
	var requests []SubscriptionRequestDB

	query := r.q.Rebind(queryGetPendingRequests)

	if err := r.q.SelectContext(c, &requests, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPendingRequests execution err")
		return nil, err
	}

	result := make([]entity.SubscriptionRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, r.makeSubscriptionRequest(request))
	}

	return result, nil
}

func (r *subscriptionRepository) HasPendingRequest(c context.Context, userID string) (bool, error) {
	requestID := contextPkg.GetRequestID(c)
	var count int

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryCountPendingByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("HasPendingRequest named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&count); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("HasPendingRequest execution err")
		return false, err
	}

	return count > 0, nil
}

func (r *subscriptionRepository) UpdateRequestStatus(c context.Context, id string, status string, reviewedBy string, reviewedAt time.Time) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          id,
		"status":      status,
		"reviewed_by": reviewedBy,
		"reviewed_at": reviewedAt,
	}

	query, args, err := sqlx.Named(queryUpdateRequestStatus, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateRequestStatus named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateRequestStatus execution err")

		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateRequestStatus rows affected err")

		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("UpdateRequestStatus no rows affected")

		return subscription.ErrRequestAlreadyReviewed
	}

	return nil
}

func (r *subscriptionRepository) makeSubscriptionRequest(request SubscriptionRequestDB) entity.SubscriptionRequest {
	return entity.SubscriptionRequest{
		ID:                   request.ID.String,
		UserID:               request.UserID.String,
		PlanType:             request.PlanType.String,
		Amount:               request.Amount.Float64,
		InvoiceNumber:        request.InvoiceNumber.String,
		PaymentScreenshotURL: request.PaymentScreenshotURL.String,
		Notes:                request.Notes.String,
		Status:               request.Status.String,
		ReviewedBy:           request.ReviewedBy.String,
		ReviewedAt:           request.ReviewedAt.Time,
		CreatedAt:            request.CreatedAt,
	}
}
