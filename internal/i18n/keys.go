// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyForbidden         = "common.forbidden"
	KeyValidationInvalid = "validation.invalid"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthAccountDeleted     = "auth.account_deleted"

	// Users
	KeyUserNotFound = "user.not_found"

	// Listings
	KeyListingCreated  = "listing.created"
	KeyListingUpdated  = "listing.updated"
	KeyListingDeleted  = "listing.deleted"
	KeyListingNotFound = "listing.not_found"

	// Trade offers
	KeyOfferCreated   = "offer.created"
	KeyOfferAccepted  = "offer.accepted"
	KeyOfferDeclined  = "offer.declined"
	KeyOfferMarked    = "offer.marked"
	KeyOfferNotFound  = "offer.not_found"
	KeyMessagePosted  = "offer.message_posted"
	KeyItemsUpdated   = "offer.items_updated"
	KeyUploadComplete = "upload.complete"
)
