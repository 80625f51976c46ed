package checkout

import (
	"fmt"
	"regexp"
	"time"
)

// also matches Unicode spaces such as NBSP
var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)

// FileName returns "order_<customer name, whitespace runs as _>_<epoch ms>.json".
func FileName(customerName string, placedAt time.Time) string {
	return fmt.Sprintf("order_%s_%d.json", whitespaceRun.ReplaceAllString(customerName, "_"), placedAt.UnixMilli())
}
