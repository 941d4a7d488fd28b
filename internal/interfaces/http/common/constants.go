package common

const (
	// MaxPhotoBytes limits the decoded size of a single survey photo.
	MaxPhotoBytes = 10 << 20
	// MaxSubmitRequestBody limits the whole multipart submission body.
	MaxSubmitRequestBody = 12 << 20
	// MaxFreeTextRunes limits each free-text answer.
	MaxFreeTextRunes = 500
)
