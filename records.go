package spdb

// Ban expiration sentinels used across the API: BanNone means no active ban,
// BanPermanent a ban row with NULL expiration, and any positive value is the
// Unix epoch second the ban runs until.
const (
	BanNone      int64 = 0
	BanPermanent int64 = -1
)

// UserLoginInfo is what a login server needs to decide whether a login is
// permitted.
type UserLoginInfo struct {
	PasswordHash  string
	IsDeleted     bool
	BanExpiration int64
}

// IPBanInfo reports the ban status of a client address.
type IPBanInfo struct {
	BanExpiration int64
}

// UserPostLoginInfo is the profile state handed to the game server after a
// successful login.
type UserPostLoginInfo struct {
	IsMale           bool
	Auth             int
	DefaultCharacter int
	Rank             int
	RankRecord       int
	Points           int
	Code             int
}

// banState is the tagged form of the sentinel integer; operations convert it
// back to the int64 encoding at the API boundary.
type banState struct {
	permanent bool
	until     int64
}

func (b banState) expiration() int64 {
	if b.permanent {
		return BanPermanent
	}
	if b.until > 0 {
		return b.until
	}
	return BanNone
}
