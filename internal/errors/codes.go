package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL; the frontend maps codes to messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Applications (APPLICATION_) ====================
	ApplicationNotFound   = "APPLICATION_NOT_FOUND"
	ApplicationNotPending = "APPLICATION_NOT_PENDING"
	ApplicationDuplicate  = "APPLICATION_DUPLICATE"

	// ==================== Stalls (STALL_) ====================
	StallNotFound     = "STALL_NOT_FOUND"
	StallAlreadyOwned = "STALL_ALREADY_OWNED"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"

	// ==================== Moderation (MODERATION_) ====================
	ReportSelfReport      = "REPORT_SELF_REPORT"
	ReportDuplicate       = "REPORT_DUPLICATE"
	ReportInvalidReason   = "REPORT_INVALID_REASON"
	ModerationNoOpenCase  = "MODERATION_NO_OPEN_CASE"
	ModerationReasonEmpty = "MODERATION_REASON_EMPTY"

	// ==================== Admin (ADMIN_) ====================
	AdminAlreadyAdmin = "ADMIN_ALREADY_ADMIN"
	AdminUserNotFound = "ADMIN_USER_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
