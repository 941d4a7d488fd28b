package common

import (
	"strconv"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// TeamSizeLabel renders a stored team size for display. The slider caps at
// 100, which stands for "100 or more", so only the label carries the plus.
func TeamSizeLabel(size int) string {
	if size >= domain.MaxTeamSize {
		return strconv.Itoa(domain.MaxTeamSize) + "+"
	}
	return strconv.Itoa(size)
}
