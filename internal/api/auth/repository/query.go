package authRepository

const (
	queryCreateUser = `
INSERT INTO Users (id, email, name, password, role, plan, is_verified, created_at)
VALUES (:id, :email, :name, :password, :role, :plan, :is_verified, :created_at)`

	queryGetById = `
SELECT id, email, name, password, role, plan, premium_expires_at,
       profile_photo_url, is_verified, created_at, updated_at
FROM Users
    WHERE id = :id`

	queryGetByEmail = `
SELECT id, email, name, password, role, plan, premium_expires_at,
       profile_photo_url, is_verified, created_at, updated_at
FROM Users
    WHERE email = :email`

	queryUpdateUserName = `
UPDATE Users
SET name = :name,
    updated_at = :updated_at
WHERE id = :id`

	queryUpdateUserPassword = `
		UPDATE Users
SET password = :password
WHERE email = :email`

	queryUpdateUserPlan = `
UPDATE Users
SET plan = :plan,
    premium_expires_at = :premium_expires_at,
    updated_at = :updated_at
WHERE id = :id`

	queryUpdateProfilePhoto = `
		UPDATE Users
		SET profile_photo_url = :profile_photo_url,
			updated_at = :updated_at
		WHERE id = :id`

	queryDeleteUser = `
DELETE FROM Users
WHERE id = :id`
)
