package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Account Operations
const (
	ErrMsgInvalidUserID         = "invalid user id"
	ErrMsgFailedToInsertAccount = "failed to insert account"
	ErrMsgFailedToGetAccount    = "failed to get account"
)

// Error Messages - Record Operations
const (
	ErrMsgFailedToInsertRecord    = "failed to insert user record"
	ErrMsgFailedToGetRecord       = "failed to get user record"
	ErrMsgFailedToUpdateRecord    = "failed to update user record"
	ErrMsgFailedToMarshalRecord   = "failed to marshal user record"
	ErrMsgFailedToUnmarshalRecord = "failed to unmarshal user record"
)

// Error Messages - Product Operations
const (
	ErrMsgFailedToListProducts  = "failed to list products"
	ErrMsgFailedToGetProduct    = "failed to get product"
	ErrMsgFailedToInsertProduct = "failed to insert product"
	ErrMsgFailedToUpdateProduct = "failed to update product"
	ErrMsgFailedToDeleteProduct = "failed to delete product"
	ErrMsgFailedToCountProducts = "failed to count products"
)

// Error Messages - Outbox Operations
const (
	ErrMsgFailedToAppendOutbox   = "failed to append outbox entry"
	ErrMsgFailedToListOutbox     = "failed to list pending outbox entries"
	ErrMsgFailedToMarkPublished  = "failed to mark outbox entry published"
	ErrMsgFailedToRecordFailure  = "failed to record outbox failure"
)
