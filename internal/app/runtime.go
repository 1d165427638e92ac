package app

import "os"

const testModeEnv = "SPORTSHOP_TEST_MODE"

// InTestMode reports whether runtime side effects should be skipped, used by
// the entrypoints to stay inert under test harnesses.
func InTestMode() bool {
	return os.Getenv(testModeEnv) == "1"
}
