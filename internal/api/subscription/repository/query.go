package subscriptionRepository

const (
	queryCreateRequest = `
		INSERT INTO subscription_requests (
			id,
			user_id,
			plan_type,
			amount,
			invoice_number,
			payment_screenshot_url,
			notes,
			status,
			created_at
		) VALUES (
			:id,
			:user_id,
			:plan_type,
			:amount,
			:invoice_number,
			:payment_screenshot_url,
			:notes,
			:status,
			:created_at
		)
	`

	queryGetRequestByID = `
		SELECT
			id,
			user_id,
			plan_type,
			amount,
			invoice_number,
			payment_screenshot_url,
			notes,
			status,
			reviewed_by,
			reviewed_at,
			created_at
		FROM subscription_requests
		WHERE id = :id
	`

	queryGetRequestsByUserID = `
		SELECT
			id,
			user_id,
			plan_type,
			amount,
			invoice_number,
			payment_screenshot_url,
			notes,
			status,
			reviewed_by,
			reviewed_at,
			created_at
		FROM subscription_requests
		WHERE user_id = :user_id
		ORDER BY created_at DESC
	`

	queryGetPendingRequests = `
		SELECT
			id,
			user_id,
			plan_type,
			amount,
			invoice_number,
			payment_screenshot_url,
			notes,
			status,
			reviewed_by,
			reviewed_at,
			created_at
		FROM subscription_requests
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`

	queryCountPendingByUserID = `
		SELECT COUNT(*)
		FROM subscription_requests
		WHERE user_id = :user_id AND status = 'pending'
	`

	queryUpdateRequestStatus = `
		UPDATE subscription_requests
		SET
			status = :status,
			reviewed_by = :reviewed_by,
			reviewed_at = :reviewed_at
		WHERE id = :id AND status = 'pending'
	`
)
