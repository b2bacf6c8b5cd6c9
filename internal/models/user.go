package models

// User is a back-office account row.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}
