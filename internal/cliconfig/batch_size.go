package cliconfig

import (
	"strconv"
	"strings"
)

// BatchSizeEnv names the environment variable that overrides the batch size.
const BatchSizeEnv = "BATCH_SIZE"

// ResolveBatchSize picks the batch size from, in order: the explicit flag,
// the environment value, and def. A nil flag or an empty env value means
// the level is absent. Values that are not positive integers are treated as
// absent and fall through to the next level.
func ResolveBatchSize(flag *int, env string, def int) int {
	if flag != nil && *flag > 0 {
		return *flag
	}
	if n, err := strconv.Atoi(strings.TrimSpace(env)); err == nil && n > 0 {
		return n
	}
	return def
}
