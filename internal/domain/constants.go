package domain

// Gameplay and validation constants.
const (
	// StartingCredits is the balance granted to every new account.
	StartingCredits = 50000

	// XPPerLevel is the XP required per derived level.
	XPPerLevel = 1000

	// MaxCartSize is the hard cap on pending cart entries. The legacy client
	// only displayed this limit; here it is enforced.
	MaxCartSize = 10

	// MaxBioLength is the character cap on profile bios. Enforced by the UI
	// and defensively truncated server-side.
	MaxBioLength = 200

	// MaxUploadBytes is the size cap on image uploads (2 MiB).
	MaxUploadBytes = 2 << 20

	// DefaultAvatar is the avatar id assigned to new users.
	DefaultAvatar = "netrunner"
)

// Fixed user-facing checkout messages, kept verbatim from the storefront.
const (
	MsgCheckoutComplete  = "TRANSACTION COMPLETE. ITEMS TRANSFERRED TO INVENTORY."
	MsgInsufficientFunds = "INSUFFICIENT FUNDS. TRANSACTION DENIED."
)

// AvatarIDs is the closed set of selectable avatars.
var AvatarIDs = []string{"netrunner", "corpo", "samurai", "techie", "nomad", "fixer"}

// ValidAvatar reports whether id is a known avatar.
func ValidAvatar(id string) bool {
	for _, a := range AvatarIDs {
		if a == id {
			return true
		}
	}
	return false
}
