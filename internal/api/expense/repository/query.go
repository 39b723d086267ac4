package expenseRepository

const (
	queryCreateExpense = `
		INSERT INTO expenses (
			id,
			user_id,
			merchant,
			amount,
			date,
			category,
			notes,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:merchant,
			:amount,
			:date,
			:category,
			:notes,
			:created_at,
			:updated_at
		)
	`

	queryGetExpenseByID = `
		SELECT
			id,
			user_id,
			merchant,
			amount,
			date,
			category,
			notes,
			created_at,
			updated_at
		FROM expenses
		WHERE id = :id
	`

	queryGetExpensesByUserID = `
		SELECT
			id,
			user_id,
			merchant,
			amount,
			date,
			category,
			notes,
			created_at,
			updated_at
		FROM expenses
		WHERE user_id = :user_id
		ORDER BY date DESC, created_at DESC
	`

	queryGetExpensesByWindow = `
		SELECT
			id,
			user_id,
			merchant,
			amount,
			date,
			category,
			notes,
			created_at,
			updated_at
		FROM expenses
		WHERE
			user_id = :user_id
			AND date >= :window_start
			AND date < :window_end
		ORDER BY date ASC, created_at ASC
	`

	queryUpdateExpense = `
		UPDATE expenses
		SET
			merchant = :merchant,
			amount = :amount,
			date = :date,
			category = :category,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteExpense = `
		DELETE FROM expenses
		WHERE id = :id
	`
)
